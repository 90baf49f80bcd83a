package nn

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/born-ml/ntk/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros(shape)
	data := t.Data()
	for i := range data {
		//nolint:gosec // weight initialization is not security-critical
		data[i] = (rng.Float64()*2.0 - 1.0) * bound
	}
	return t
}

// Normal fills a tensor with N(0, std²) draws, the NTK parameterization init.
func Normal(shape tensor.Shape, std float64, rng *rand.Rand) *tensor.Tensor {
	t := tensor.Zeros(shape)
	data := t.Data()
	for i := range data {
		data[i] = rng.NormFloat64() * std
	}
	return t
}

// Init selects a weight initialization scheme.
type Init string

// Supported initialization schemes.
const (
	InitXavier Init = "xavier"
	InitNormal Init = "normal" // N(0, 1/fan_in)
)

// ParseInit parses an initialization name.
func ParseInit(s string) (Init, error) {
	switch Init(s) {
	case InitXavier, InitNormal:
		return Init(s), nil
	default:
		return "", fmt.Errorf("unknown init %q (want %q or %q)", s, InitXavier, InitNormal)
	}
}

func (i Init) weights(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor {
	if i == InitNormal {
		return Normal(shape, 1/math.Sqrt(float64(fanIn)), rng)
	}
	return Xavier(fanIn, fanOut, shape, rng)
}
