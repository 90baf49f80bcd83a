package ops

import "github.com/born-ml/ntk/internal/tensor"

// TanhOp represents the hyperbolic tangent activation.
type TanhOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewTanhOp creates a new tanh operation.
func NewTanhOp(input, output *tensor.Tensor) *TanhOp {
	return &TanhOp{input: input, output: output}
}

// Inputs returns the input tensors.
func (op *TanhOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *TanhOp) Output() *tensor.Tensor { return op.output }

// Backward computes the gradient for tanh.
//
// d(tanh(x))/dx = 1 - tanh²(x), and tanh(x) is the recorded output.
func (op *TanhOp) Backward(outputGrad *tensor.Tensor, _ tensor.Backend) ([]*tensor.Tensor, error) {
	grad := mapWith(outputGrad, op.output, func(g, y float64) float64 {
		return g * (1 - y*y)
	})
	return []*tensor.Tensor{grad}, nil
}

// ReLUOp represents max(0, x).
type ReLUOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewReLUOp creates a new ReLU operation.
func NewReLUOp(input, output *tensor.Tensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

// Inputs returns the input tensors.
func (op *ReLUOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *ReLUOp) Output() *tensor.Tensor { return op.output }

// Backward passes the gradient where the input was positive.
func (op *ReLUOp) Backward(outputGrad *tensor.Tensor, _ tensor.Backend) ([]*tensor.Tensor, error) {
	grad := mapWith(outputGrad, op.input, func(g, x float64) float64 {
		if x > 0 {
			return g
		}
		return 0
	})
	return []*tensor.Tensor{grad}, nil
}

// SigmoidOp represents σ(x) = 1 / (1 + exp(-x)).
type SigmoidOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewSigmoidOp creates a new sigmoid operation.
func NewSigmoidOp(input, output *tensor.Tensor) *SigmoidOp {
	return &SigmoidOp{input: input, output: output}
}

// Inputs returns the input tensors.
func (op *SigmoidOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *SigmoidOp) Output() *tensor.Tensor { return op.output }

// Backward computes grad * σ(x) * (1 - σ(x)).
func (op *SigmoidOp) Backward(outputGrad *tensor.Tensor, _ tensor.Backend) ([]*tensor.Tensor, error) {
	grad := mapWith(outputGrad, op.output, func(g, y float64) float64 {
		return g * y * (1 - y)
	})
	return []*tensor.Tensor{grad}, nil
}
