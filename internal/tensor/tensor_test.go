package tensor

import (
	"errors"
	"testing"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{3}, 3},
		{Shape{2, 3, 4}, 24},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShape_WithBatch(t *testing.T) {
	s := Shape{2, 4}
	got := s.WithBatch()
	if !got.Equal(Shape{1, 2, 4}) {
		t.Errorf("WithBatch() = %v, want [1 2 4]", got)
	}
	if !s.Equal(Shape{2, 4}) {
		t.Errorf("WithBatch modified receiver: %v", s)
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	got := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("strides[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if x.At(1, 2) != 6 || x.At(0, 1) != 2 {
		t.Errorf("At() returned wrong values: %v, %v", x.At(1, 2), x.At(0, 1))
	}

	if _, err := FromSlice([]float64{1, 2}, Shape{3}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("FromSlice length mismatch: err = %v", err)
	}
	if _, err := FromSlice(nil, Shape{0}); err == nil {
		t.Error("FromSlice should reject zero dimensions")
	}
}

func TestReshape_SharesData(t *testing.T) {
	x := MustFromSlice([]float64{1, 2, 3, 4}, Shape{4})
	v, err := x.Reshape(Shape{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	v.Data()[3] = 10
	if x.Data()[3] != 10 {
		t.Error("Reshape should return a view")
	}
	if v.At(1, 1) != 10 {
		t.Errorf("At(1,1) = %v, want 10", v.At(1, 1))
	}

	if _, err := x.Reshape(Shape{3}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Reshape mismatch: err = %v", err)
	}
}

func TestClone_IsDeep(t *testing.T) {
	x := MustFromSlice([]float64{1, 2}, Shape{2})
	c := x.Clone()
	c.Data()[0] = 5
	if x.Data()[0] != 1 {
		t.Error("Clone should copy data")
	}
}

func TestItem(t *testing.T) {
	v, err := Scalar(3).Item()
	if err != nil || v != 3 {
		t.Errorf("Item() = %v, %v", v, err)
	}
	if _, err := Zeros(Shape{2}).Item(); err == nil {
		t.Error("Item on 2 elements should fail")
	}
}
