package ops

import (
	"fmt"

	"github.com/born-ml/ntk/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,4] + b[1,4] -> c[3,4]  (b was broadcast along dim 0)
//	Backward: grad_c[3,4] -> grad_b[1,4] (sum along dim 0)
func reduceBroadcast(grad *tensor.Tensor, targetShape tensor.Shape, _ tensor.Backend) (*tensor.Tensor, error) {
	gradShape := grad.Shape()

	// Clone so that accumulation never aliases a gradient shared with another input.
	if gradShape.Equal(targetShape) {
		return grad.Clone(), nil
	}

	if len(gradShape) != 2 || targetShape.NumElements() != gradShape[1] {
		return nil, fmt.Errorf("reduce broadcast: %w: %v to %v", tensor.ErrShapeMismatch, gradShape, targetShape)
	}

	rows, cols := gradShape[0], gradShape[1]
	src := grad.Data()
	out := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j] += src[i*cols+j]
		}
	}
	return tensor.FromSlice(out, targetShape)
}

// filled returns a tensor of the given shape with every element set to v.
func filled(shape tensor.Shape, v float64) *tensor.Tensor {
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = v
	}
	t, err := tensor.FromSlice(data, shape)
	if err != nil {
		panic(fmt.Sprintf("filled: %v", err))
	}
	return t
}

// mapWith combines two same-shape tensors element-wise.
func mapWith(a, b *tensor.Tensor, fn func(x, y float64) float64) *tensor.Tensor {
	aData, bData := a.Data(), b.Data()
	out := make([]float64, len(aData))
	for i := range aData {
		out[i] = fn(aData[i], bData[i])
	}
	t, err := tensor.FromSlice(out, a.Shape())
	if err != nil {
		panic(fmt.Sprintf("mapWith: %v", err))
	}
	return t
}
