package autodiff_test

import (
	"math/rand/v2"
	"testing"

	"github.com/born-ml/ntk/internal/autodiff"
	"github.com/born-ml/ntk/internal/backend/cpu"
	"github.com/born-ml/ntk/internal/tensor"
)

// numericalGradient computes central differences of f with respect to every
// element of params, in order.
func numericalGradient(f func() float64, params []*tensor.Tensor, h float64) []float64 {
	var grad []float64
	for _, p := range params {
		data := p.Data()
		for i := range data {
			orig := data[i]
			data[i] = orig + h
			plus := f()
			data[i] = orig - h
			minus := f()
			data[i] = orig
			grad = append(grad, (plus-minus)/(2*h))
		}
	}
	return grad
}

func randomTensor(rng *rand.Rand, shape tensor.Shape) *tensor.Tensor {
	t := tensor.Zeros(shape)
	for i := range t.Data() {
		t.Data()[i] = rng.NormFloat64()
	}
	return t
}

// TestGradientCheck_TwoLayer compares the tape gradient of
// Σ sigmoid(relu(tanh(x W1ᵀ + b1) W2ᵀ) * c) with finite differences.
func TestGradientCheck_TwoLayer(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 43))
	x := randomTensor(rng, tensor.Shape{3, 4})
	w1 := randomTensor(rng, tensor.Shape{5, 4})
	b1 := randomTensor(rng, tensor.Shape{5})
	w2 := randomTensor(rng, tensor.Shape{2, 5})
	c := randomTensor(rng, tensor.Shape{1, 2})
	params := []*tensor.Tensor{w1, b1, w2, c}

	backend := autodiff.New(cpu.New())
	forward := func() *tensor.Tensor {
		must := func(t2 *tensor.Tensor, err error) *tensor.Tensor {
			if err != nil {
				t.Fatal(err)
			}
			return t2
		}
		w1T := must(backend.Transpose(w1))
		h := must(backend.MatMul(x, w1T))
		bias := must(backend.Reshape(b1, tensor.Shape{1, 5}))
		h = backend.Tanh(must(backend.Add(h, bias)))
		w2T := must(backend.Transpose(w2))
		o := backend.ReLU(must(backend.MatMul(h, w2T)))
		o = backend.Sigmoid(must(backend.Mul(o, c)))
		return backend.Sum(o)
	}

	backend.Tape().StartRecording()
	out := forward()
	backend.Tape().StopRecording()

	analytic, err := backend.Gradient(out, params)
	if err != nil {
		t.Fatal(err)
	}

	numeric := numericalGradient(func() float64 {
		v, _ := forward().Item()
		return v
	}, params, 1e-6)

	if len(analytic) != len(numeric) {
		t.Fatalf("len(analytic) = %d, len(numeric) = %d", len(analytic), len(numeric))
	}
	for i := range analytic {
		if !approxEqual(analytic[i], numeric[i], 1e-5) {
			t.Errorf("grad[%d] analytic = %v, numeric = %v", i, analytic[i], numeric[i])
		}
	}
}
