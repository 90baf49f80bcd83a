// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ntk computes empirical neural tangent kernels.
//
// The kernel of a scalar function f with parameters θ is
// K(x, x') = ∇θf(x) · ∇θf(x'). ComputeKernels builds the train-train,
// test-train and test-test Gram blocks by splitting the parameters into
// chunks whose Jacobians fit a memory budget and summing the per-chunk
// products. KernelLikelihood scores targets under a kernel.
//
// Example:
//
//	k, err := ntk.ComputeKernels[*nn.Parameter](net, xtr, xte,
//	    ntk.WithBudgetBytes(1<<30))
//	nll, err := ntk.KernelLikelihood(k.TrainTrain, ytr, nil)
package ntk

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ntk/internal/ntk"
	"github.com/born-ml/ntk/tensor"
)

// DefaultBudgetBytes is the chunk memory budget used when none is given.
const DefaultBudgetBytes = ntk.DefaultBudgetBytes

// ErrEigenFailed is returned when a kernel cannot be diagonalized.
var ErrEigenFailed = ntk.ErrEigenFailed

// Param is anything with a known element count.
type Param = ntk.Param

// Function is a scalar function with per-sample parameter gradients.
type Function[P Param] = ntk.Function[P]

// Kernels holds the three Gram blocks.
type Kernels = ntk.Kernels

// Summary describes one kernel block.
type Summary = ntk.Summary

// Option configures ComputeKernels.
type Option = ntk.Option

// Recorder observes the work done for each parameter chunk.
type Recorder = ntk.Recorder

// WithBudgetBytes sets the upper bound on Jacobian chunk memory.
func WithBudgetBytes(b float64) Option { return ntk.WithBudgetBytes(b) }

// WithLogger sets the logger receiving per-chunk progress lines.
func WithLogger(l logrus.FieldLogger) Option { return ntk.WithLogger(l) }

// WithRecorder sets the Recorder notified once per chunk.
func WithRecorder(r Recorder) Option { return ntk.WithRecorder(r) }

// ChunkParameters groups params so that each group's Jacobians fit the budget.
func ChunkParameters[P Param](params []P, nTrain, nTest int, budgetBytes float64) [][]P {
	return ntk.ChunkParameters(params, nTrain, nTest, budgetBytes)
}

// ComputeKernels returns the train-train, test-train and test-test kernels of f.
func ComputeKernels[P Param](f Function[P], xtr, xte []*tensor.Tensor, opts ...Option) (*Kernels, error) {
	return ntk.ComputeKernels(f, xtr, xte, opts...)
}

// ComputeKernel returns the train-train kernel of f.
func ComputeKernel[P Param](f Function[P], xtr []*tensor.Tensor, opts ...Option) (*mat.SymDense, error) {
	return ntk.ComputeKernel(f, xtr, opts...)
}

// KernelLikelihood returns the per-sample negative log marginal likelihood of
// y under kernel k with the scale fitted, after subtracting mu (nil, one value,
// or one value per target).
func KernelLikelihood(k mat.Symmetric, y, mu []float64) (float64, error) {
	return ntk.KernelLikelihood(k, y, mu)
}

// Summarize computes a Summary of m.
func Summarize(m mat.Matrix) (Summary, error) {
	return ntk.Summarize(m)
}

// SymmetryError returns max |m[i][j] - m[j][i]|.
func SymmetryError(m mat.Matrix) float64 {
	return ntk.SymmetryError(m)
}
