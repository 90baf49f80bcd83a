package ntk

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrEigenFailed is returned when the symmetric eigendecomposition does not converge.
var ErrEigenFailed = errors.New("ntk: eigendecomposition failed")

// KernelLikelihood returns the per-sample negative log marginal likelihood of
// y under y ~ N(mu, a·k), minimised over the scale a:
//
//	0.5 * ( log(mean(y ∘ u)) + mean(log e) + 1 + log(2π) )
//
// where e are the eigenvalues of k and u solves k u = y in the least-squares
// sense. mu may be nil, a single value broadcast over y, or one value per
// target; it is subtracted from y first.
//
// k must be positive definite for the result to be finite: a non-PSD kernel
// yields NaN and y ≡ mu yields -Inf. A near-singular k makes the solve fail
// with a wrapped mat.Condition error.
func KernelLikelihood(k mat.Symmetric, y, mu []float64) (float64, error) {
	n := k.SymmetricDim()
	if n == 0 {
		return 0, errors.New("kernel likelihood: empty kernel")
	}
	if len(y) != n {
		return 0, errors.Errorf("kernel likelihood: kernel is %dx%d but y has %d values", n, n, len(y))
	}
	centered, err := center(y, mu)
	if err != nil {
		return 0, err
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(k, false); !ok {
		return 0, ErrEigenFailed
	}
	e := eig.Values(nil)

	var qr mat.QR
	qr.Factorize(k)
	var u mat.VecDense
	if err := qr.SolveVecTo(&u, false, mat.NewVecDense(n, centered)); err != nil {
		return 0, errors.Wrap(err, "kernel likelihood: solving k u = y")
	}

	fit := floats.Dot(centered, u.RawVector().Data) / float64(n)

	logE := make([]float64, n)
	for i, v := range e {
		logE[i] = math.Log(v)
	}
	logDet := floats.Sum(logE) / float64(n)

	return 0.5 * (math.Log(fit) + logDet + 1 + math.Log(2*math.Pi)), nil
}

func center(y, mu []float64) ([]float64, error) {
	out := make([]float64, len(y))
	copy(out, y)
	switch len(mu) {
	case 0:
	case 1:
		floats.AddConst(-mu[0], out)
	case len(y):
		floats.Sub(out, mu)
	default:
		return nil, errors.Errorf("kernel likelihood: mu has %d values, want 1 or %d", len(mu), len(y))
	}
	return out, nil
}
