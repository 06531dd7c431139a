package tensor

import (
	"testing"
)

// RawTensor Tests

func TestRawTensorAsFloat32(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Float32, CPU)
	data := raw.AsFloat32()

	if len(data) != 6 {
		t.Errorf("AsFloat32 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsFloat32()[0] != 42 {
		t.Error("AsFloat32 should return zero-copy slice")
	}
}

func TestRawTensorAsFloat32WrongType(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float64, CPU)
	defer func() {
		if recover() == nil {
			t.Error("AsFloat32 on float64 tensor should panic")
		}
	}()
	_ = raw.AsFloat32()
}

func TestNewRawInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, 0}, Float32, CPU); err == nil {
		t.Error("expected error for zero dimension")
	}
}

func TestRawTensorCloneIsDeep(t *testing.T) {
	raw, _ := FromFloat32([]float32{1, 2, 3}, Shape{3}, CPU)
	clone := raw.Clone()

	clone.AsFloat32()[0] = 100
	if raw.AsFloat32()[0] != 1 {
		t.Errorf("Clone shares memory: original[0] = %v", raw.AsFloat32()[0])
	}
	if !clone.SameLayout(raw) {
		t.Error("Clone should keep shape and dtype")
	}
}

func TestRawTensorCopyFrom(t *testing.T) {
	dst, _ := Zeros(Shape{2, 2}, CPU)
	src, _ := FromFloat32([]float32{1, 2, 3, 4}, Shape{2, 2}, CPU)

	if err := dst.CopyFrom(src); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	for i, v := range dst.AsFloat32() {
		if v != float32(i+1) {
			t.Errorf("dst[%d] = %v, want %v", i, v, i+1)
		}
	}

	wrong, _ := Zeros(Shape{4}, CPU)
	if err := dst.CopyFrom(wrong); err == nil {
		t.Error("CopyFrom should reject a different shape")
	}
}

func TestFromFloat32LengthMismatch(t *testing.T) {
	if _, err := FromFloat32([]float32{1, 2}, Shape{3}, CPU); err == nil {
		t.Error("expected error for data/shape mismatch")
	}
}

func TestFull(t *testing.T) {
	raw, err := Full(Shape{2, 3}, 0.5, CPU)
	if err != nil {
		t.Fatalf("Full: %v", err)
	}
	for i, v := range raw.AsFloat32() {
		if v != 0.5 {
			t.Errorf("Full[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestShape(t *testing.T) {
	s := Shape{2, 3, 4}
	if s.NumElements() != 24 {
		t.Errorf("NumElements = %d, want 24", s.NumElements())
	}
	if (Shape{}).NumElements() != 1 {
		t.Error("scalar shape should have 1 element")
	}
	if !s.Equal(s.Clone()) {
		t.Error("Clone should be equal")
	}
	if s.Equal(Shape{2, 3}) {
		t.Error("shapes of different rank should differ")
	}
	if got := s.String(); got != "2 3 4 (24)" {
		t.Errorf("String = %q", got)
	}
}
