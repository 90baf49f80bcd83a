package ntk_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ntk/internal/ntk"
)

var logTwoPi = math.Log(2 * math.Pi)

func TestKernelLikelihood(t *testing.T) {
	tests := map[string]struct {
		k        *mat.SymDense
		y        []float64
		mu       []float64
		expected float64
	}{
		"identity": {
			k:        mat.NewSymDense(3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}),
			y:        []float64{1, 2, 3},
			expected: 0.5 * (math.Log(14.0/3) + 1 + logTwoPi),
		},
		"diagonal": {
			k:        mat.NewSymDense(2, []float64{2, 0, 0, 3}),
			y:        []float64{1, 1},
			expected: 0.5 * (math.Log((0.5+1.0/3)/2) + (math.Log(2)+math.Log(3))/2 + 1 + logTwoPi),
		},
		"scalar mean": {
			k:        mat.NewSymDense(2, []float64{1, 0, 0, 1}),
			y:        []float64{3, 5},
			mu:       []float64{1},
			expected: 0.5 * (math.Log((4.0+16.0)/2) + 1 + logTwoPi),
		},
		"per-target mean": {
			k:        mat.NewSymDense(2, []float64{1, 0, 0, 1}),
			y:        []float64{3, 5},
			mu:       []float64{2, 4},
			expected: 0.5 * (math.Log(1) + 1 + logTwoPi),
		},
		"dense kernel": {
			// eigenvalues 1 and 3; k⁻¹ = [[2,-1],[-1,2]]/3
			k:        mat.NewSymDense(2, []float64{2, 1, 1, 2}),
			y:        []float64{1, 0},
			expected: 0.5 * (math.Log(2.0/3/2) + math.Log(3)/2 + 1 + logTwoPi),
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			actual, err := ntk.KernelLikelihood(tc.k, tc.y, tc.mu)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, actual, 1e-12)
		})
	}
}

func TestKernelLikelihood_DoesNotMutateTargets(t *testing.T) {
	y := []float64{3, 5}
	_, err := ntk.KernelLikelihood(mat.NewSymDense(2, []float64{1, 0, 0, 1}), y, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 5}, y)
}

// Zero targets make log(mean(y∘u)) = log 0; the result is -Inf, not an error.
func TestKernelLikelihood_ZeroTargets(t *testing.T) {
	actual, err := ntk.KernelLikelihood(mat.NewSymDense(1, []float64{1}), []float64{0}, nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(actual, -1), "got %v", actual)
}

func TestKernelLikelihood_Errors(t *testing.T) {
	tests := map[string]struct {
		k  mat.Symmetric
		y  []float64
		mu []float64
	}{
		"empty kernel": {
			k: &mat.SymDense{},
		},
		"target length": {
			k: mat.NewSymDense(2, []float64{1, 0, 0, 1}),
			y: []float64{1, 2, 3},
		},
		"mean length": {
			k:  mat.NewSymDense(3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}),
			y:  []float64{1, 2, 3},
			mu: []float64{1, 2},
		},
		"singular kernel": {
			k: mat.NewSymDense(2, []float64{0, 0, 0, 0}),
			y: []float64{1, 2},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ntk.KernelLikelihood(tc.k, tc.y, tc.mu)
			assert.Error(t, err)
		})
	}
}

func TestSummarize(t *testing.T) {
	s, err := ntk.Summarize(mat.NewSymDense(2, []float64{2, 1, 1, 2}))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Rows)
	assert.InDelta(t, 4.0, s.Trace, 1e-12)
	assert.InDelta(t, 1.5, s.Mean, 1e-12)
	assert.InDelta(t, 1.0, s.MinEig, 1e-12)
	assert.InDelta(t, 3.0, s.MaxEig, 1e-12)

	s, err = ntk.Summarize(mat.NewDense(1, 2, []float64{1, 3}))
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Mean)
	assert.True(t, math.IsNaN(s.MinEig))

	s, err = ntk.Summarize(&mat.Dense{})
	require.NoError(t, err)
	assert.Zero(t, s.Rows)
}

func TestSymmetryError(t *testing.T) {
	assert.Equal(t, 0.5, ntk.SymmetryError(mat.NewDense(2, 2, []float64{1, 2, 2.5, 1})))
	assert.True(t, math.IsInf(ntk.SymmetryError(mat.NewDense(1, 2, []float64{1, 2})), 1))
}
