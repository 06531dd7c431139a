//go:build webgpu

package webgpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/solver/internal/backend/cpu"
	"github.com/born-ml/solver/internal/tensor"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(b.Release)
	return b
}

func randomVec(t *testing.T, n int, seed float64) *tensor.RawTensor {
	t.Helper()
	values := make([]float32, n)
	for i := range values {
		values[i] = float32(math.Sin(seed + float64(i)*0.37))
	}
	raw, err := tensor.FromFloat32(values, tensor.Shape{n}, tensor.CPU)
	require.NoError(t, err)
	return raw
}

// TestKernelParity checks every kernel against the CPU backend.
func TestKernelParity(t *testing.T) {
	gpu := newTestBackend(t)
	host := cpu.New()

	const n = 1000
	kernels := map[string]func(be tensor.Backend, x, z, y *tensor.RawTensor){
		"Set":       func(be tensor.Backend, _, _, y *tensor.RawTensor) { be.Set(0.75, y) },
		"Copy":      func(be tensor.Backend, x, _, y *tensor.RawTensor) { be.Copy(x, y) },
		"Scale":     func(be tensor.Backend, _, _, y *tensor.RawTensor) { be.Scale(-1.5, y) },
		"Axpy":      func(be tensor.Backend, x, _, y *tensor.RawTensor) { be.Axpy(0.3, x, y) },
		"Axpby":     func(be tensor.Backend, x, _, y *tensor.RawTensor) { be.Axpby(0.1, x, 0.9, y) },
		"Add":       func(be tensor.Backend, x, z, y *tensor.RawTensor) { be.Add(x, z, y) },
		"Mul":       func(be tensor.Backend, x, z, y *tensor.RawTensor) { be.Mul(x, z, y) },
		"Div":       func(be tensor.Backend, x, _, y *tensor.RawTensor) { be.Div(x, x, y) },
		"Square":    func(be tensor.Backend, x, _, y *tensor.RawTensor) { be.Powx(x, 2, y) },
		"Sign":      func(be tensor.Backend, x, _, y *tensor.RawTensor) { be.Sign(x, y) },
		"AddScalar": func(be tensor.Backend, _, _, y *tensor.RawTensor) { be.AddScalar(1e-8, y) },
	}

	for name, kernel := range kernels {
		t.Run(name, func(t *testing.T) {
			x, z := randomVec(t, n, 1), randomVec(t, n, 2)
			yHost, yGPU := randomVec(t, n, 3), randomVec(t, n, 3)

			kernel(host, x, z, yHost)
			kernel(gpu, x, z, yGPU)

			assert.InDeltaSlice(t, yHost.AsFloat32(), yGPU.AsFloat32(), 1e-5)
		})
	}
}

func TestSqrt(t *testing.T) {
	gpu := newTestBackend(t)

	x, err := tensor.FromFloat32([]float32{4, 9, 0.25}, tensor.Shape{3}, tensor.CPU)
	require.NoError(t, err)
	y := tensor.MustZeros(tensor.Shape{3}, tensor.CPU)

	gpu.Powx(x, 0.5, y)
	assert.InDeltaSlice(t, []float32{2, 3, 0.5}, y.AsFloat32(), 1e-6)
}
