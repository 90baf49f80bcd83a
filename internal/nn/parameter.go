package nn

import (
	"github.com/born-ml/ntk/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are the leaf tensors the kernel builder differentiates with
// respect to. They typically represent weights and biases of layers.
//
// Example:
//
//	weight := nn.NewParameter("0.weight", weightTensor)
//	w := weight.Tensor()
type Parameter struct {
	name   string         // Parameter name (e.g., "0.weight", "2.bias")
	tensor *tensor.Tensor // The parameter tensor
}

// NewParameter creates a new trainable parameter.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return &Parameter{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.tensor
}

// Numel returns the number of elements in the parameter.
func (p *Parameter) Numel() int {
	return p.tensor.Numel()
}

// Tensors returns the tensors of params in order.
func Tensors(params []*Parameter) []*tensor.Tensor {
	out := make([]*tensor.Tensor, len(params))
	for i, p := range params {
		out[i] = p.tensor
	}
	return out
}
