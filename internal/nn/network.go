package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/ntk/internal/autodiff"
	"github.com/born-ml/ntk/internal/tensor"
)

// Network evaluates a scalar-output Module one sample at a time and exposes
// the gradient of that scalar with respect to any subset of its parameters.
//
// The module must be built on the same autodiff backend passed here, so that
// its forward pass is recorded on the backend's tape. A Network shares that
// tape across calls and is not safe for concurrent use.
type Network[B tensor.Backend] struct {
	module  Module
	backend *autodiff.Backend[B]
}

// NewNetwork wraps module for per-sample differentiation.
func NewNetwork[B tensor.Backend](module Module, backend *autodiff.Backend[B]) *Network[B] {
	return &Network[B]{module: module, backend: backend}
}

// Parameters returns the module's parameters.
func (n *Network[B]) Parameters() []*Parameter {
	return n.module.Parameters()
}

// Module returns the wrapped module.
func (n *Network[B]) Module() Module {
	return n.module
}

// Forward evaluates the network on a single sample and returns the scalar output.
func (n *Network[B]) Forward(x *tensor.Tensor) (float64, error) {
	out, err := n.forward(x)
	if err != nil {
		return 0, err
	}
	return out.Item()
}

// Gradient evaluates the network on x (with a leading singleton batch
// dimension) and returns d f(x) / d params, flattened and concatenated in
// params order.
func (n *Network[B]) Gradient(x *tensor.Tensor, params []*Parameter) ([]float64, error) {
	tape := n.backend.Tape()
	tape.Clear()
	defer tape.Clear()

	tape.StartRecording()
	out, err := n.forward(x)
	tape.StopRecording()
	if err != nil {
		return nil, err
	}

	grad, err := n.backend.Gradient(out, Tensors(params))
	if err != nil {
		return nil, errors.WithMessage(err, "network gradient")
	}
	return grad, nil
}

func (n *Network[B]) forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	batched, err := x.Reshape(x.Shape().WithBatch())
	if err != nil {
		return nil, errors.Wrap(err, "adding batch dimension")
	}
	out, err := n.module.Forward(batched)
	if err != nil {
		return nil, errors.Wrap(err, "forward")
	}
	if out.Numel() != 1 {
		return nil, errors.Wrapf(autodiff.ErrNonScalarOutput, "network output shape %v", out.Shape())
	}
	return out, nil
}
