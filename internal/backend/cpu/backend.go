// Package cpu implements the CPU backend. Matrix products go through gonum BLAS.
package cpu

import (
	"fmt"

	"github.com/born-ml/ntk/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct{}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with row broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwise("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with row broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwise("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with row broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwise("mul", a, b, func(x, y float64) float64 { return x * y })
}

// IsRowBroadcast reports whether b is a row vector broadcast over 2-D a.
func IsRowBroadcast(a, b tensor.Shape) bool {
	if len(a) != 2 {
		return false
	}
	n := a[1]
	switch len(b) {
	case 1:
		return b[0] == n
	case 2:
		return b[0] == 1 && b[1] == n
	}
	return false
}

func elementwise(name string, a, b *tensor.Tensor, fn func(x, y float64) float64) (*tensor.Tensor, error) {
	aData, bData := a.Data(), b.Data()

	if a.Shape().Equal(b.Shape()) {
		out := make([]float64, len(aData))
		for i := range aData {
			out[i] = fn(aData[i], bData[i])
		}
		return tensor.FromSlice(out, a.Shape())
	}

	if !IsRowBroadcast(a.Shape(), b.Shape()) {
		return nil, fmt.Errorf("%s: %w: %v vs %v", name, tensor.ErrShapeMismatch, a.Shape(), b.Shape())
	}

	rows, cols := a.Shape()[0], a.Shape()[1]
	out := make([]float64, len(aData))
	for i := 0; i < rows; i++ {
		row := i * cols
		for j := 0; j < cols; j++ {
			out[row+j] = fn(aData[row+j], bData[j])
		}
	}
	return tensor.FromSlice(out, a.Shape())
}

// MulScalar multiplies every element by s.
func (cpu *CPUBackend) MulScalar(x *tensor.Tensor, s float64) *tensor.Tensor {
	return mapUnary(x, func(v float64) float64 { return v * s })
}

// Sum reduces all elements to a 0-D tensor.
func (cpu *CPUBackend) Sum(x *tensor.Tensor) *tensor.Tensor {
	var total float64
	for _, v := range x.Data() {
		total += v
	}
	return tensor.Scalar(total)
}

func mapUnary(x *tensor.Tensor, fn func(v float64) float64) *tensor.Tensor {
	src := x.Data()
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = fn(v)
	}
	t, err := tensor.FromSlice(out, x.Shape())
	if err != nil {
		// Same shape as a valid input.
		panic(err)
	}
	return t
}
