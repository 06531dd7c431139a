// Package cpu implements the kernel backend on the host CPU.
package cpu

import (
	"fmt"
	"strings"

	"github.com/klauspost/cpuid/v2"

	"github.com/born-ml/solver/internal/parallel"
	"github.com/born-ml/solver/internal/tensor"
)

// CPUBackend implements tensor.Backend with plain Go loops.
// Buffers larger than the parallel threshold are split across goroutines.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
	features []string
}

// New creates a new CPU backend.
func New() *CPUBackend {
	cfg := parallel.DefaultConfig()
	// Wide vector units chew through a chunk faster, so hand out bigger chunks.
	if cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ) {
		cfg.MinChunkSize *= 4
	} else if cpuid.CPU.Supports(cpuid.AVX2) {
		cfg.MinChunkSize *= 2
	}
	if cores := cpuid.CPU.PhysicalCores; cores > 0 && cores < cfg.NumWorkers {
		cfg.NumWorkers = cores
	}

	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
		features: detectFeatures(),
	}
}

// NewWithConfig creates a CPU backend with explicit parallel settings.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
		features: detectFeatures(),
	}
}

func detectFeatures() []string {
	var features []string
	for _, f := range []struct {
		name string
		id   cpuid.FeatureID
	}{
		{"AVX512", cpuid.AVX512F},
		{"AVX2", cpuid.AVX2},
		{"FMA", cpuid.FMA3},
		{"NEON", cpuid.ASIMD},
	} {
		if cpuid.CPU.Supports(f.id) {
			features = append(features, f.name)
		}
	}
	return features
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	if len(cpu.features) == 0 {
		return "CPU"
	}
	return fmt.Sprintf("CPU (%s)", strings.Join(cpu.features, ", "))
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Brand returns the processor brand string, if known.
func (cpu *CPUBackend) Brand() string {
	return cpuid.CPU.BrandName
}

// Parallel returns the parallel execution settings.
func (cpu *CPUBackend) Parallel() parallel.Config {
	return cpu.parallel
}

// Set fills y with alpha.
func (cpu *CPUBackend) Set(alpha float32, y *tensor.RawTensor) {
	dst := y.AsFloat32()
	cpu.run(len(dst), func(s, e int) { setFloat32(alpha, dst[s:e]) })
}

// Copy copies x into y.
func (cpu *CPUBackend) Copy(x, y *tensor.RawTensor) {
	src, dst := pair("copy", x, y)
	copy(dst, src)
}

// Scale computes y = alpha*y.
func (cpu *CPUBackend) Scale(alpha float32, y *tensor.RawTensor) {
	dst := y.AsFloat32()
	cpu.run(len(dst), func(s, e int) { scaleFloat32(alpha, dst[s:e]) })
}

// Axpy computes y = alpha*x + y.
func (cpu *CPUBackend) Axpy(alpha float32, x, y *tensor.RawTensor) {
	src, dst := pair("axpy", x, y)
	cpu.run(len(dst), func(s, e int) { axpyFloat32(alpha, src[s:e], dst[s:e]) })
}

// Axpby computes y = alpha*x + beta*y.
func (cpu *CPUBackend) Axpby(alpha float32, x *tensor.RawTensor, beta float32, y *tensor.RawTensor) {
	src, dst := pair("axpby", x, y)
	cpu.run(len(dst), func(s, e int) { axpbyFloat32(alpha, src[s:e], beta, dst[s:e]) })
}

// Add computes y = a + b.
func (cpu *CPUBackend) Add(a, b, y *tensor.RawTensor) {
	av, bv, dst := triple("add", a, b, y)
	cpu.run(len(dst), func(s, e int) { addFloat32(dst[s:e], av[s:e], bv[s:e]) })
}

// Mul computes y = a * b elementwise.
func (cpu *CPUBackend) Mul(a, b, y *tensor.RawTensor) {
	av, bv, dst := triple("mul", a, b, y)
	cpu.run(len(dst), func(s, e int) { mulFloat32(dst[s:e], av[s:e], bv[s:e]) })
}

// Div computes y = a / b elementwise.
func (cpu *CPUBackend) Div(a, b, y *tensor.RawTensor) {
	av, bv, dst := triple("div", a, b, y)
	cpu.run(len(dst), func(s, e int) { divFloat32(dst[s:e], av[s:e], bv[s:e]) })
}

// Powx computes y = a^p elementwise.
func (cpu *CPUBackend) Powx(a *tensor.RawTensor, p float32, y *tensor.RawTensor) {
	src, dst := pair("powx", a, y)
	cpu.run(len(dst), func(s, e int) { powxFloat32(dst[s:e], src[s:e], p) })
}

// Sign computes y = sign(x).
func (cpu *CPUBackend) Sign(x, y *tensor.RawTensor) {
	src, dst := pair("sign", x, y)
	cpu.run(len(dst), func(s, e int) { signFloat32(dst[s:e], src[s:e]) })
}

// AddScalar computes y = y + alpha.
func (cpu *CPUBackend) AddScalar(alpha float32, y *tensor.RawTensor) {
	dst := y.AsFloat32()
	cpu.run(len(dst), func(s, e int) { addScalarFloat32(alpha, dst[s:e]) })
}

// Asum returns the sum of absolute values of x.
func (cpu *CPUBackend) Asum(x *tensor.RawTensor) float32 {
	src := x.AsFloat32()
	return float32(parallel.Sum(len(src), func(s, e int) float64 {
		return asumFloat32(src[s:e])
	}, cpu.parallel))
}

// Dot returns the inner product of x and y.
func (cpu *CPUBackend) Dot(x, y *tensor.RawTensor) float32 {
	a, b := pair("dot", x, y)
	return float32(parallel.Sum(len(a), func(s, e int) float64 {
		return dotFloat32(a[s:e], b[s:e])
	}, cpu.parallel))
}

func (cpu *CPUBackend) run(n int, f func(start, end int)) {
	parallel.ForChunks(n, f, cpu.parallel)
}

func pair(op string, x, y *tensor.RawTensor) (src, dst []float32) {
	src, dst = x.AsFloat32(), y.AsFloat32()
	if len(src) != len(dst) {
		panic(fmt.Sprintf("%s: length mismatch: %d vs %d", op, len(src), len(dst)))
	}
	return src, dst
}

func triple(op string, a, b, y *tensor.RawTensor) (av, bv, dst []float32) {
	av, bv, dst = a.AsFloat32(), b.AsFloat32(), y.AsFloat32()
	if len(av) != len(dst) || len(bv) != len(dst) {
		panic(fmt.Sprintf("%s: length mismatch: %d, %d -> %d", op, len(av), len(bv), len(dst)))
	}
	return av, bv, dst
}
