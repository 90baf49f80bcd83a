package ops

import "github.com/born-ml/ntk/internal/tensor"

// TransposeOp records a 2-D transpose so gradients reach the original tensor.
//
// The backend copies data on transpose, so without this op the gradient of
// W^T in a Linear layer would never be routed back to W.
type TransposeOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp(input, output *tensor.Tensor) *TransposeOp {
	return &TransposeOp{input: input, output: output}
}

// Backward transposes the output gradient back.
func (op *TransposeOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error) {
	grad, err := backend.Transpose(outputGrad)
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{grad}, nil
}

// Inputs returns the input tensor.
func (op *TransposeOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the transposed tensor.
func (op *TransposeOp) Output() *tensor.Tensor { return op.output }

// ReshapeOp records a reshape; the backward pass restores the input shape.
type ReshapeOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(input, output *tensor.Tensor) *ReshapeOp {
	return &ReshapeOp{input: input, output: output}
}

// Backward reshapes the output gradient to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error) {
	grad, err := backend.Reshape(outputGrad, op.input.Shape())
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{grad}, nil
}

// Inputs returns the input tensor.
func (op *ReshapeOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the reshaped tensor.
func (op *ReshapeOp) Output() *tensor.Tensor { return op.output }
