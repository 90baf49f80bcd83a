package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/ntk/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features], nil when disabled
	backend     tensor.Backend
}

// LinearOption configures a Linear layer.
type LinearOption func(*linearOptions)

type linearOptions struct {
	bias   bool
	weight *tensor.Tensor
	init   Init
}

// WithoutBias disables the bias term.
func WithoutBias() LinearOption {
	return func(o *linearOptions) { o.bias = false }
}

// WithWeight uses w ([out_features, in_features]) instead of a random init.
func WithWeight(w *tensor.Tensor) LinearOption {
	return func(o *linearOptions) { o.weight = w }
}

// WithInit selects the random weight initialization.
func WithInit(scheme Init) LinearOption {
	return func(o *linearOptions) { o.init = scheme }
}

// NewLinear creates a new Linear layer.
//
// Parameters:
//   - inFeatures: Number of input features
//   - outFeatures: Number of output features
//   - backend: Backend to use for tensor operations
//   - rng: Source for weight initialization
func NewLinear(inFeatures, outFeatures int, backend tensor.Backend, rng *rand.Rand, opts ...LinearOption) *Linear {
	o := linearOptions{bias: true, init: InitXavier}
	for _, opt := range opts {
		opt(&o)
	}

	weightShape := tensor.Shape{outFeatures, inFeatures}
	weightTensor := o.weight
	if weightTensor == nil {
		weightTensor = o.init.weights(inFeatures, outFeatures, weightShape, rng)
	}

	l := &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", weightTensor),
		backend:     backend,
	}
	if o.bias {
		l.bias = NewParameter("bias", tensor.Zeros(tensor.Shape{outFeatures}))
	}
	return l
}

// Forward computes the output of the linear layer.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (l *Linear) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		return nil, fmt.Errorf("Linear.Forward: expected 2D input [batch, features], got shape %v", inputShape)
	}
	if inputShape[1] != l.inFeatures {
		return nil, fmt.Errorf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, inputShape[1])
	}

	// W.T has shape [in_features, out_features]
	wT, err := l.backend.Transpose(l.weight.Tensor())
	if err != nil {
		return nil, err
	}

	output, err := l.backend.MatMul(input, wT)
	if err != nil {
		return nil, err
	}

	if l.bias != nil {
		// Bias [out_features] is reshaped to [1, out_features] for row broadcasting
		b, err := l.backend.Reshape(l.bias.Tensor(), tensor.Shape{1, l.outFeatures})
		if err != nil {
			return nil, err
		}
		output, err = l.backend.Add(output, b)
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}

// Parameters returns the trainable parameters of this layer.
//
// Returns [weight, bias] if bias is present, otherwise [weight].
func (l *Linear) Parameters() []*Parameter {
	if l.bias != nil {
		return []*Parameter{l.weight, l.bias}
	}
	return []*Parameter{l.weight}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter (nil if disabled).
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
