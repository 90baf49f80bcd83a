package ntk

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SymmetryError returns max |m[i][j] - m[j][i]| over a square matrix.
func SymmetryError(m mat.Matrix) float64 {
	r, c := m.Dims()
	if r != c {
		return math.Inf(1)
	}
	var worst float64
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			worst = math.Max(worst, math.Abs(m.At(i, j)-m.At(j, i)))
		}
	}
	return worst
}

// Eigenvalues returns the eigenvalues of s in ascending order.
func Eigenvalues(s mat.Symmetric) ([]float64, error) {
	if s.SymmetricDim() == 0 {
		return nil, nil
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(s, false); !ok {
		return nil, ErrEigenFailed
	}
	return eig.Values(nil), nil
}

// Summary describes one kernel block for progress and CLI output.
type Summary struct {
	Rows, Cols int
	Trace      float64 // 0 for non-square blocks
	Mean       float64
	MinEig     float64 // NaN for non-square blocks
	MaxEig     float64 // NaN for non-square blocks
}

// Summarize computes a Summary of m. Eigenvalues are computed for symmetric m only.
func Summarize(m mat.Matrix) (Summary, error) {
	s := Summary{MinEig: math.NaN(), MaxEig: math.NaN()}
	if d, ok := m.(*mat.Dense); ok && d.IsEmpty() {
		return s, nil
	}
	if d, ok := m.(*mat.SymDense); ok && d.IsEmpty() {
		return s, nil
	}
	s.Rows, s.Cols = m.Dims()

	var total float64
	for i := 0; i < s.Rows; i++ {
		for j := 0; j < s.Cols; j++ {
			total += m.At(i, j)
		}
	}
	s.Mean = total / float64(s.Rows*s.Cols)

	sym, ok := m.(mat.Symmetric)
	if !ok {
		return s, nil
	}
	s.Trace = mat.Trace(sym)
	e, err := Eigenvalues(sym)
	if err != nil {
		return s, err
	}
	s.MinEig = floats.Min(e)
	s.MaxEig = floats.Max(e)
	return s, nil
}
