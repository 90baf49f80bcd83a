// Package dataset generates synthetic sample sets for kernel estimation.
package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/ntk/internal/tensor"
)

// Distribution names accepted by Generate.
const (
	DistUniform = "uniform"
	DistSphere  = "sphere"
)

// Generate draws n samples of dimension dim from the named distribution.
func Generate(dist string, rng *rand.Rand, n, dim int) ([]*tensor.Tensor, error) {
	switch dist {
	case DistUniform:
		return Uniform(rng, n, dim)
	case DistSphere:
		return Sphere(rng, n, dim)
	default:
		return nil, fmt.Errorf("unknown distribution %q", dist)
	}
}

// Uniform draws n samples uniformly from [-1, 1]^dim.
func Uniform(rng *rand.Rand, n, dim int) ([]*tensor.Tensor, error) {
	return draw(n, dim, func(v []float64) {
		for i := range v {
			v[i] = 2*rng.Float64() - 1
		}
	})
}

// Sphere draws n samples uniformly from the unit sphere in R^dim
// (normalised standard Gaussian vectors).
func Sphere(rng *rand.Rand, n, dim int) ([]*tensor.Tensor, error) {
	return draw(n, dim, func(v []float64) {
		for {
			for i := range v {
				v[i] = rng.NormFloat64()
			}
			if norm := floats.Norm(v, 2); norm > 0 {
				floats.Scale(1/norm, v)
				return
			}
		}
	})
}

func draw(n, dim int, fill func(v []float64)) ([]*tensor.Tensor, error) {
	if n < 0 || dim <= 0 {
		return nil, fmt.Errorf("dataset: invalid size n=%d dim=%d", n, dim)
	}
	out := make([]*tensor.Tensor, n)
	for i := range out {
		v := make([]float64, dim)
		fill(v)
		t, err := tensor.FromSlice(v, tensor.Shape{dim})
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Targets labels each sample with fn applied to its values.
func Targets(samples []*tensor.Tensor, fn func(x []float64) float64) []float64 {
	y := make([]float64, len(samples))
	for i, x := range samples {
		y[i] = fn(x.Data())
	}
	return y
}

// SinOfSum is a smooth default target: sin(π/2 · Σx).
func SinOfSum(x []float64) float64 {
	return math.Sin(math.Pi / 2 * floats.Sum(x))
}
