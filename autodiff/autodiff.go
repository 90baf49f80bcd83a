// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Backend wraps any tensor backend and records operations on a gradient tape
// while recording is enabled. Gradients of a scalar output are returned as one
// flat vector over the requested tensors.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	y := backend.Sum(backend.Tanh(x))
//	grad, err := backend.Gradient(y, []*tensor.Tensor{x})
package autodiff

import (
	"github.com/born-ml/ntk/internal/autodiff"
	"github.com/born-ml/ntk/tensor"
)

// Backend wraps a backend with gradient recording.
type Backend[B tensor.Backend] = autodiff.Backend[B]

// GradientTape records operations for the backward pass.
type GradientTape = autodiff.GradientTape

// ErrNonScalarOutput is returned when gradients of a non-scalar are requested.
var ErrNonScalarOutput = autodiff.ErrNonScalarOutput

// New wraps backend with automatic differentiation.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}
