package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/ntk/internal/tensor"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N)
func (cpu *CPUBackend) MatMul(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		return nil, fmt.Errorf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]

	if k != kAlt {
		return nil, fmt.Errorf("matmul: %w [%d,%d] @ [%d,%d]", tensor.ErrShapeMismatch, m, k, kAlt, n)
	}

	out := make([]float64, m*n)
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		general(a.Data(), m, k),
		general(b.Data(), k, n),
		0,
		general(out, m, n),
	)
	return tensor.FromSlice(out, tensor.Shape{m, n})
}

// Transpose swaps the two axes of a 2-D tensor.
func (cpu *CPUBackend) Transpose(t *tensor.Tensor) (*tensor.Tensor, error) {
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("transpose: only 2D tensors supported, got %dD", len(shape))
	}
	rows, cols := shape[0], shape[1]
	src := t.Data()
	out := make([]float64, len(src))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = src[i*cols+j]
		}
	}
	return tensor.FromSlice(out, tensor.Shape{cols, rows})
}

// Reshape returns a copy of t with the new shape.
func (cpu *CPUBackend) Reshape(t *tensor.Tensor, shape tensor.Shape) (*tensor.Tensor, error) {
	view, err := t.Reshape(shape)
	if err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}
	return view.Clone(), nil
}

func general(data []float64, rows, cols int) blas64.General {
	return blas64.General{Rows: rows, Cols: cols, Stride: cols, Data: data}
}
