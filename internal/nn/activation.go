package nn

import (
	"fmt"

	"github.com/born-ml/ntk/internal/tensor"
)

// Activation names accepted by NewActivation.
const (
	ActivationTanh    = "tanh"
	ActivationReLU    = "relu"
	ActivationSigmoid = "sigmoid"
)

// ReLU is a Rectified Linear Unit activation module: f(x) = max(0, x).
type ReLU struct {
	backend tensor.Backend
}

// NewReLU creates a new ReLU activation module.
func NewReLU(backend tensor.Backend) *ReLU {
	return &ReLU{backend: backend}
}

// Forward applies ReLU activation.
func (r *ReLU) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	return r.backend.ReLU(input), nil
}

// Parameters returns nil (ReLU has no trainable parameters).
func (r *ReLU) Parameters() []*Parameter {
	return nil
}

// Sigmoid is a sigmoid activation module: σ(x) = 1 / (1 + exp(-x)).
type Sigmoid struct {
	backend tensor.Backend
}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid(backend tensor.Backend) *Sigmoid {
	return &Sigmoid{backend: backend}
}

// Forward applies the sigmoid activation.
func (s *Sigmoid) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	return s.backend.Sigmoid(input), nil
}

// Parameters returns nil (Sigmoid has no trainable parameters).
func (s *Sigmoid) Parameters() []*Parameter {
	return nil
}

// Tanh is a hyperbolic tangent activation module.
type Tanh struct {
	backend tensor.Backend
}

// NewTanh creates a new Tanh activation module.
func NewTanh(backend tensor.Backend) *Tanh {
	return &Tanh{backend: backend}
}

// Forward applies tanh.
func (t *Tanh) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	return t.backend.Tanh(input), nil
}

// Parameters returns nil (Tanh has no trainable parameters).
func (t *Tanh) Parameters() []*Parameter {
	return nil
}

// NewActivation returns the activation module registered under name.
func NewActivation(name string, backend tensor.Backend) (Module, error) {
	switch name {
	case ActivationTanh:
		return NewTanh(backend), nil
	case ActivationReLU:
		return NewReLU(backend), nil
	case ActivationSigmoid:
		return NewSigmoid(backend), nil
	default:
		return nil, fmt.Errorf("unknown activation %q", name)
	}
}
