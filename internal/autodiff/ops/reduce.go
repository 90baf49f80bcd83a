package ops

import "github.com/born-ml/ntk/internal/tensor"

// SumOp reduces a tensor to a scalar: output = Σ input.
//
// Backward: every input element receives the scalar output gradient.
type SumOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.Tensor) *SumOp {
	return &SumOp{input: input, output: output}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.Tensor, _ tensor.Backend) ([]*tensor.Tensor, error) {
	g, err := outputGrad.Item()
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{filled(op.input.Shape(), g)}, nil
}

// Inputs returns the input tensor.
func (op *SumOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the scalar sum.
func (op *SumOp) Output() *tensor.Tensor { return op.output }

// MulScalarOp scales a tensor by a constant: output = s * input.
type MulScalarOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
	scalar float64
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(input, output *tensor.Tensor, scalar float64) *MulScalarOp {
	return &MulScalarOp{input: input, output: output, scalar: scalar}
}

// Backward computes grad_input = s * outputGrad.
func (op *MulScalarOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error) {
	return []*tensor.Tensor{backend.MulScalar(outputGrad, op.scalar)}, nil
}

// Inputs returns the input tensor.
func (op *MulScalarOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the scaled tensor.
func (op *MulScalarOp) Output() *tensor.Tensor { return op.output }
