package cpu

import (
	"math"
	"strings"
	"testing"

	"github.com/born-ml/solver/internal/parallel"
	"github.com/born-ml/solver/internal/tensor"
)

// Helper to create test backend.
func newTestBackend() *CPUBackend {
	return New()
}

func vec(t *testing.T, values ...float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromFloat32(values, tensor.Shape{len(values)}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromFloat32: %v", err)
	}
	return raw
}

// Helper to check float32 slices are equal within epsilon.
func float32SliceEqual(a, b []float32) bool {
	const epsilon = 1e-6
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > epsilon {
			return false
		}
	}
	return true
}

// TestCPUBackend_New tests backend creation.
func TestCPUBackend_New(t *testing.T) {
	backend := New()
	if backend == nil {
		t.Fatal("New() returned nil")
	}
	if !strings.HasPrefix(backend.Name(), "CPU") {
		t.Errorf("Expected name starting with 'CPU', got '%s'", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Expected device CPU, got %v", backend.Device())
	}
}

func TestCPUBackend_Kernels(t *testing.T) {
	backend := newTestBackend()

	tests := []struct {
		name string
		run  func(y *tensor.RawTensor)
		y    []float32
		want []float32
	}{
		{"Set", func(y *tensor.RawTensor) { backend.Set(3, y) }, []float32{1, 2}, []float32{3, 3}},
		{"Scale", func(y *tensor.RawTensor) { backend.Scale(-2, y) }, []float32{1, 2}, []float32{-2, -4}},
		{"Axpy", func(y *tensor.RawTensor) { backend.Axpy(0.5, vec(t, 2, 4), y) }, []float32{1, 1}, []float32{2, 3}},
		{"Axpby", func(y *tensor.RawTensor) { backend.Axpby(2, vec(t, 1, 2), 0.5, y) }, []float32{4, 8}, []float32{4, 8}},
		{"Add", func(y *tensor.RawTensor) { backend.Add(vec(t, 1, 2), vec(t, 3, 4), y) }, []float32{0, 0}, []float32{4, 6}},
		{"Mul", func(y *tensor.RawTensor) { backend.Mul(vec(t, 1, 2), vec(t, 3, 4), y) }, []float32{0, 0}, []float32{3, 8}},
		{"Div", func(y *tensor.RawTensor) { backend.Div(vec(t, 1, 8), vec(t, 4, 2), y) }, []float32{0, 0}, []float32{0.25, 4}},
		{"Powx2", func(y *tensor.RawTensor) { backend.Powx(vec(t, -3, 2), 2, y) }, []float32{0, 0}, []float32{9, 4}},
		{"PowxSqrt", func(y *tensor.RawTensor) { backend.Powx(vec(t, 9, 2.25), 0.5, y) }, []float32{0, 0}, []float32{3, 1.5}},
		{"PowxGeneral", func(y *tensor.RawTensor) { backend.Powx(vec(t, 8, 1), 1.0/3, y) }, []float32{0, 0}, []float32{2, 1}},
		{"Sign", func(y *tensor.RawTensor) { backend.Sign(vec(t, -0.5, 0, 7), y) }, []float32{9, 9, 9}, []float32{-1, 0, 1}},
		{"AddScalar", func(y *tensor.RawTensor) { backend.AddScalar(1e-8, y) }, []float32{1, 0}, []float32{1, 1e-8}},
		{"Copy", func(y *tensor.RawTensor) { backend.Copy(vec(t, 5, 6), y) }, []float32{0, 0}, []float32{5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := vec(t, tt.y...)
			tt.run(y)
			if !float32SliceEqual(y.AsFloat32(), tt.want) {
				t.Errorf("%s = %v, want %v", tt.name, y.AsFloat32(), tt.want)
			}
		})
	}
}

func TestCPUBackend_InPlaceAliasing(t *testing.T) {
	backend := newTestBackend()

	// Output may alias an input, as the update rules rely on.
	y := vec(t, 2, 3)
	backend.Mul(y, y, y)
	if !float32SliceEqual(y.AsFloat32(), []float32{4, 9}) {
		t.Errorf("Mul aliasing = %v", y.AsFloat32())
	}
	backend.Div(y, y, y)
	if !float32SliceEqual(y.AsFloat32(), []float32{1, 1}) {
		t.Errorf("Div aliasing = %v", y.AsFloat32())
	}
}

func TestCPUBackend_Reductions(t *testing.T) {
	backend := newTestBackend()

	if got := backend.Asum(vec(t, -1, 2, -3)); got != 6 {
		t.Errorf("Asum = %v, want 6", got)
	}
	if got := backend.Dot(vec(t, 1, 2, 3), vec(t, 4, 5, 6)); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestCPUBackend_ParallelMatchesSequential(t *testing.T) {
	seq := NewWithConfig(parallel.Config{Enabled: false})
	par := NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8})

	n := 1000
	values := make([]float32, n)
	for i := range values {
		values[i] = float32(math.Sin(float64(i)))
	}

	a, _ := tensor.FromFloat32(values, tensor.Shape{n}, tensor.CPU)
	b := a.Clone()
	x, _ := tensor.Full(tensor.Shape{n}, 0.25, tensor.CPU)

	seq.Axpby(0.1, x, 0.9, a)
	par.Axpby(0.1, x, 0.9, b)

	for i := range values {
		if a.AsFloat32()[i] != b.AsFloat32()[i] {
			t.Fatalf("element %d: sequential %v, parallel %v", i, a.AsFloat32()[i], b.AsFloat32()[i])
		}
	}
	if d := seq.Asum(a) - par.Asum(b); d > 1e-3 || d < -1e-3 {
		t.Errorf("Asum differs by %v", d)
	}
}

func TestCPUBackend_LengthMismatchPanics(t *testing.T) {
	backend := newTestBackend()
	defer func() {
		if recover() == nil {
			t.Error("expected panic on length mismatch")
		}
	}()
	backend.Axpy(1, vec(t, 1, 2), vec(t, 1, 2, 3))
}
