package cpu

import (
	"math"

	"github.com/born-ml/ntk/internal/tensor"
)

// Tanh applies the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.Tensor) *tensor.Tensor {
	return mapUnary(x, math.Tanh)
}

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.Tensor) *tensor.Tensor {
	return mapUnary(x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Sigmoid applies σ(x) = 1 / (1 + exp(-x)) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.Tensor) *tensor.Tensor {
	return mapUnary(x, func(v float64) float64 {
		return 1.0 / (1.0 + math.Exp(-v))
	})
}
