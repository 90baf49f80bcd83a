package autodiff_test

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/ntk/internal/autodiff"
	"github.com/born-ml/ntk/internal/backend/cpu"
	"github.com/born-ml/ntk/internal/tensor"
)

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// TestBackend_Name tests the Name method.
func TestBackend_Name(t *testing.T) {
	backend := autodiff.New(cpu.New())
	expected := "Autodiff(CPU)"
	if backend.Name() != expected {
		t.Errorf("Name() = %s, want %s", backend.Name(), expected)
	}
}

// TestTape_Recording tests tape recording on/off.
func TestTape_Recording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	if tape.IsRecording() {
		t.Error("Tape should not be recording initially")
	}

	x := tensor.MustFromSlice([]float64{1, 2}, tensor.Shape{2})
	backend.Tanh(x)
	if tape.NumOps() != 0 {
		t.Errorf("Tape recorded %d ops while stopped", tape.NumOps())
	}

	tape.StartRecording()
	backend.Tanh(x)
	if tape.NumOps() != 1 {
		t.Errorf("NumOps() = %d, want 1", tape.NumOps())
	}

	tape.Clear()
	if tape.NumOps() != 0 {
		t.Errorf("Tape should be empty after Clear(), got %d ops", tape.NumOps())
	}
	if !tape.IsRecording() {
		t.Error("Clear() should preserve recording state")
	}

	tape.StopRecording()
	if tape.IsRecording() {
		t.Error("Tape should not be recording after StopRecording()")
	}
}

// TestGradient_Square checks d/dx Σ x² = 2x.
func TestGradient_Square(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := tensor.MustFromSlice([]float64{1, -2, 3}, tensor.Shape{3})
	sq, err := backend.Mul(x, x)
	if err != nil {
		t.Fatal(err)
	}
	out := backend.Sum(sq)

	grad, err := backend.Gradient(out, []*tensor.Tensor{x})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2, -4, 6}
	for i := range want {
		if !approxEqual(grad[i], want[i], 1e-12) {
			t.Errorf("grad[%d] = %v, want %v", i, grad[i], want[i])
		}
	}
}

// TestGradient_ReusedInput checks accumulation when a tensor feeds two ops.
func TestGradient_ReusedInput(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := tensor.MustFromSlice([]float64{1, 2}, tensor.Shape{2})
	sum, err := backend.Add(x, x)
	if err != nil {
		t.Fatal(err)
	}
	diff, err := backend.Sub(sum, backend.MulScalar(x, 0.5))
	if err != nil {
		t.Fatal(err)
	}

	grad, err := backend.Gradient(backend.Sum(diff), []*tensor.Tensor{x})
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range grad {
		if !approxEqual(g, 1.5, 1e-12) {
			t.Errorf("grad[%d] = %v, want 1.5", i, g)
		}
	}
}

// TestGradient_UnusedTensor checks that unrelated tensors get zero gradients.
func TestGradient_UnusedTensor(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := tensor.MustFromSlice([]float64{1, 2}, tensor.Shape{2})
	unused := tensor.Zeros(tensor.Shape{3})
	out := backend.Sum(backend.Tanh(x))

	grad, err := backend.Gradient(out, []*tensor.Tensor{unused, x})
	if err != nil {
		t.Fatal(err)
	}
	if len(grad) != 5 {
		t.Fatalf("len(grad) = %d, want 5", len(grad))
	}
	for i := 0; i < 3; i++ {
		if grad[i] != 0 {
			t.Errorf("grad[%d] = %v, want 0", i, grad[i])
		}
	}
	for i, v := range x.Data() {
		want := 1 - math.Tanh(v)*math.Tanh(v)
		if !approxEqual(grad[3+i], want, 1e-12) {
			t.Errorf("grad[%d] = %v, want %v", 3+i, grad[3+i], want)
		}
	}
}

// TestGradient_NonScalar tests the scalar-output requirement.
func TestGradient_NonScalar(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x := tensor.MustFromSlice([]float64{1, 2}, tensor.Shape{2})

	_, err := backend.Gradient(backend.Tanh(x), []*tensor.Tensor{x})
	if !errors.Is(err, autodiff.ErrNonScalarOutput) {
		t.Errorf("err = %v, want ErrNonScalarOutput", err)
	}
}

// TestBackend_ShapeErrors tests that forward shape errors are returned.
func TestBackend_ShapeErrors(t *testing.T) {
	backend := autodiff.New(cpu.New())
	a := tensor.Zeros(tensor.Shape{2, 3})
	b := tensor.Zeros(tensor.Shape{2, 3})

	if _, err := backend.MatMul(a, b); err == nil {
		t.Error("MatMul [2,3]@[2,3] should fail")
	}
	if _, err := backend.Add(a, tensor.Zeros(tensor.Shape{2})); err == nil {
		t.Error("Add [2,3]+[2] should fail")
	}
	if _, err := backend.Reshape(a, tensor.Shape{4}); err == nil {
		t.Error("Reshape [2,3]->[4] should fail")
	}
	if backend.Tape().NumOps() != 0 {
		t.Error("failed ops must not be recorded")
	}
}
