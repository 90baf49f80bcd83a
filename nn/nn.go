// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the modules used to build scalar-output networks.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	model, err := nn.NewMLP(nn.MLPConfig{
//	    InputDim:   4,
//	    Hidden:     []int{64, 64},
//	    Activation: nn.ActivationTanh,
//	    Bias:       true,
//	}, backend, rand.New(rand.NewPCG(1, 1)))
//	net := nn.NewNetwork(model, backend)
package nn

import (
	"math/rand/v2"

	"github.com/born-ml/ntk/autodiff"
	"github.com/born-ml/ntk/internal/nn"
	"github.com/born-ml/ntk/tensor"
)

// Module is the interface implemented by all layers.
type Module = nn.Module

// Parameter is a named trainable tensor.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// LinearOption configures NewLinear.
type LinearOption = nn.LinearOption

// NewLinear creates a new linear layer. A nil rng is only valid with WithWeight.
func NewLinear(inFeatures, outFeatures int, backend tensor.Backend, rng *rand.Rand, opts ...LinearOption) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, backend, rng, opts...)
}

// WithoutBias disables the bias term.
func WithoutBias() LinearOption { return nn.WithoutBias() }

// WithWeight sets the weight tensor of shape [out, in].
func WithWeight(w *tensor.Tensor) LinearOption { return nn.WithWeight(w) }

// WithInit selects the weight initialization scheme.
func WithInit(scheme Init) LinearOption { return nn.WithInit(scheme) }

// Sequential chains modules.
type Sequential = nn.Sequential

// NewSequential creates a container holding modules in order.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Activations

// Activation names accepted by NewActivation and MLPConfig.
const (
	ActivationTanh    = nn.ActivationTanh
	ActivationReLU    = nn.ActivationReLU
	ActivationSigmoid = nn.ActivationSigmoid
)

// NewActivation returns the activation module registered under name.
func NewActivation(name string, backend tensor.Backend) (Module, error) {
	return nn.NewActivation(name, backend)
}

// Initialization

// Init selects a weight initialization scheme.
type Init = nn.Init

// Supported initialization schemes.
const (
	InitXavier = nn.InitXavier
	InitNormal = nn.InitNormal
)

// Networks

// MLPConfig describes a multilayer perceptron with scalar output.
type MLPConfig = nn.MLPConfig

// NewMLP builds the perceptron described by cfg.
func NewMLP(cfg MLPConfig, backend tensor.Backend, rng *rand.Rand) (*Sequential, error) {
	return nn.NewMLP(cfg, backend, rng)
}

// Network evaluates a scalar-output module and its per-sample gradients.
type Network[B tensor.Backend] = nn.Network[B]

// NewNetwork pairs module with the autodiff backend its layers were built on.
func NewNetwork[B tensor.Backend](module Module, backend *autodiff.Backend[B]) *Network[B] {
	return nn.NewNetwork(module, backend)
}
