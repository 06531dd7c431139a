// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/born-ml/solver/backend/cpu"
	"github.com/born-ml/solver/tensor"
)

// TestBackendInterface verifies that the CPU backend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = cpu.New()
}

// TestRawTensorAPI verifies the RawTensor alias exposes the expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if shape := raw.Shape(); !shape.Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", shape)
	}
	if dtype := raw.DType(); dtype != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", dtype)
	}
	if device := raw.Device(); device != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", device)
	}
	if n := raw.NumElements(); n != 6 {
		t.Errorf("NumElements() = %d, want 6", n)
	}
	if size := raw.ByteSize(); size != 6*4 {
		t.Errorf("ByteSize() = %d, want %d", size, 6*4)
	}

	raw.AsFloat32()[0] = 1
	clone := raw.Clone()
	raw.AsFloat32()[0] = 2
	if got := clone.AsFloat32()[0]; got != 1 {
		t.Errorf("Clone shares storage: got %v, want 1", got)
	}
}

func TestCreation(t *testing.T) {
	x, err := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromFloat32 failed: %v", err)
	}
	if got := x.AsFloat32()[3]; got != 4 {
		t.Errorf("x[3] = %v, want 4", got)
	}

	if _, err := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{2, 2}, tensor.CPU); err == nil {
		t.Error("FromFloat32 with wrong length: expected error")
	}

	f, err := tensor.Full(tensor.Shape{3}, 0.5, tensor.CPU)
	if err != nil {
		t.Fatalf("Full failed: %v", err)
	}
	for i, v := range f.AsFloat32() {
		if v != 0.5 {
			t.Errorf("f[%d] = %v, want 0.5", i, v)
		}
	}

	z := tensor.MustZeros(tensor.Shape{4}, tensor.CPU)
	if z.NumElements() != 4 {
		t.Errorf("NumElements() = %d, want 4", z.NumElements())
	}
}

// TestBackendKernels runs the update-rule kernels through the public API.
func TestBackendKernels(t *testing.T) {
	be := cpu.New()
	x, _ := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
	y, _ := tensor.FromFloat32([]float32{10, 10, 10}, tensor.Shape{3}, tensor.CPU)

	be.Axpby(0.5, x, 0.9, y)
	want := []float32{9.5, 10, 10.5}
	for i, v := range y.AsFloat32() {
		if v != want[i] {
			t.Errorf("Axpby: y[%d] = %v, want %v", i, v, want[i])
		}
	}

	if got := be.Asum(x); got != 6 {
		t.Errorf("Asum = %v, want 6", got)
	}
	if got := be.Dot(x, x); got != 14 {
		t.Errorf("Dot = %v, want 14", got)
	}
}
