// Package autodiff implements reverse-mode differentiation using the decorator pattern.
//
// Backend wraps any tensor.Backend implementation and adds gradient tracking
// through a GradientTape. It covers the operations used by the networks in
// internal/nn and is the host differentiation primitive of the kernel builder:
// given a scalar output and an ordered list of parameter tensors, Gradient
// returns the flattened concatenated gradient vector.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	y, _ := backend.Mul(x, x) // y = x²
//	backend.Tape().StopRecording()
//	grad, _ := backend.Gradient(backend.Sum(y), []*tensor.Tensor{x}) // 2x
package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/ntk/internal/autodiff/ops"
	"github.com/born-ml/ntk/internal/tensor"
)

// ErrNonScalarOutput is returned by Gradient when the output has more than one element.
var ErrNonScalarOutput = errors.New("autodiff: gradient requires a scalar output")

// Backend wraps a tensor.Backend and records every operation in a GradientTape.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Backend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend[tensor.Backend])(nil)

// New creates a new autodiff Backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return &Backend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
func (b *Backend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *Backend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *Backend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Add performs element-wise addition and records the operation.
func (b *Backend[B]) Add(x, y *tensor.Tensor) (*tensor.Tensor, error) {
	result, err := b.inner.Add(x, y)
	if err != nil {
		return nil, err
	}
	b.tape.Record(ops.NewAddOp(x, y, result))
	return result, nil
}

// Sub performs element-wise subtraction and records the operation.
func (b *Backend[B]) Sub(x, y *tensor.Tensor) (*tensor.Tensor, error) {
	result, err := b.inner.Sub(x, y)
	if err != nil {
		return nil, err
	}
	b.tape.Record(ops.NewSubOp(x, y, result))
	return result, nil
}

// Mul performs element-wise multiplication and records the operation.
func (b *Backend[B]) Mul(x, y *tensor.Tensor) (*tensor.Tensor, error) {
	result, err := b.inner.Mul(x, y)
	if err != nil {
		return nil, err
	}
	b.tape.Record(ops.NewMulOp(x, y, result))
	return result, nil
}

// MatMul performs matrix multiplication and records the operation.
func (b *Backend[B]) MatMul(x, y *tensor.Tensor) (*tensor.Tensor, error) {
	result, err := b.inner.MatMul(x, y)
	if err != nil {
		return nil, err
	}
	b.tape.Record(ops.NewMatMulOp(x, y, result))
	return result, nil
}

// Reshape reshapes a tensor and records the operation.
//
// The inner backend returns a new tensor, so the op must be on the tape for
// gradients to reach the original (e.g. a bias reshaped for broadcasting).
func (b *Backend[B]) Reshape(t *tensor.Tensor, shape tensor.Shape) (*tensor.Tensor, error) {
	result, err := b.inner.Reshape(t, shape)
	if err != nil {
		return nil, err
	}
	b.tape.Record(ops.NewReshapeOp(t, result))
	return result, nil
}

// Transpose transposes a 2-D tensor and records the operation.
func (b *Backend[B]) Transpose(t *tensor.Tensor) (*tensor.Tensor, error) {
	result, err := b.inner.Transpose(t)
	if err != nil {
		return nil, err
	}
	b.tape.Record(ops.NewTransposeOp(t, result))
	return result, nil
}

// MulScalar scales a tensor and records the operation.
func (b *Backend[B]) MulScalar(x *tensor.Tensor, s float64) *tensor.Tensor {
	result := b.inner.MulScalar(x, s)
	b.tape.Record(ops.NewMulScalarOp(x, result, s))
	return result
}

// Sum reduces to a scalar and records the operation.
func (b *Backend[B]) Sum(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Sum(x)
	b.tape.Record(ops.NewSumOp(x, result))
	return result
}

// Tanh applies tanh and records the operation.
func (b *Backend[B]) Tanh(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Tanh(x)
	b.tape.Record(ops.NewTanhOp(x, result))
	return result
}

// ReLU applies ReLU and records the operation.
func (b *Backend[B]) ReLU(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.ReLU(x)
	b.tape.Record(ops.NewReLUOp(x, result))
	return result
}

// Sigmoid applies the logistic function and records the operation.
func (b *Backend[B]) Sigmoid(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Sigmoid(x)
	b.tape.Record(ops.NewSigmoidOp(x, result))
	return result
}

// Gradient returns d(output)/d(wrt) flattened and concatenated in wrt order.
//
// output must hold exactly one element. Tensors in wrt that output does not
// depend on contribute zeros. The tape is not cleared.
func (b *Backend[B]) Gradient(output *tensor.Tensor, wrt []*tensor.Tensor) ([]float64, error) {
	if output.Numel() != 1 {
		return nil, errors.Wrapf(ErrNonScalarOutput, "output shape %v", output.Shape())
	}

	seed, err := tensor.FromSlice([]float64{1}, output.Shape())
	if err != nil {
		return nil, err
	}
	grads, err := b.tape.Backward(output, seed, b.inner)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, p := range wrt {
		total += p.Numel()
	}
	flat := make([]float64, 0, total)
	for _, p := range wrt {
		g, ok := grads[p]
		if !ok {
			flat = append(flat, make([]float64, p.Numel())...)
			continue
		}
		if g.Numel() != p.Numel() {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch, "gradient %v for tensor %v", g.Shape(), p.Shape())
		}
		flat = append(flat, g.Data()...)
	}
	return flat, nil
}
