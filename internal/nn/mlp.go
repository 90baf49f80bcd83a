package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/ntk/internal/tensor"
)

// MLPConfig describes a fully connected scalar-output network.
type MLPConfig struct {
	InputDim   int
	Hidden     []int  // widths of the hidden layers, may be empty
	Activation string // one of ActivationTanh, ActivationReLU, ActivationSigmoid
	Init       Init
	Bias       bool
}

// NewMLP builds Linear → activation → ... → Linear(·, 1) as a Sequential.
func NewMLP(cfg MLPConfig, backend tensor.Backend, rng *rand.Rand) (*Sequential, error) {
	if cfg.InputDim <= 0 {
		return nil, fmt.Errorf("mlp: input dimension must be > 0, got %d", cfg.InputDim)
	}
	scheme := cfg.Init
	if scheme == "" {
		scheme = InitXavier
	}
	opts := []LinearOption{WithInit(scheme)}
	if !cfg.Bias {
		opts = append(opts, WithoutBias())
	}

	model := NewSequential()
	in := cfg.InputDim
	for i, width := range cfg.Hidden {
		if width <= 0 {
			return nil, fmt.Errorf("mlp: hidden layer %d width must be > 0, got %d", i, width)
		}
		act, err := NewActivation(cfg.Activation, backend)
		if err != nil {
			return nil, fmt.Errorf("mlp: %w", err)
		}
		model.Add(NewLinear(in, width, backend, rng, opts...))
		model.Add(act)
		in = width
	}
	model.Add(NewLinear(in, 1, backend, rng, opts...))
	return model, nil
}
