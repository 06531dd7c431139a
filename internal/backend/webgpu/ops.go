//go:build webgpu

package webgpu

import (
	"math"

	"github.com/born-ml/solver/internal/tensor"
)

// Set fills y with alpha.
func (b *Backend) Set(alpha float32, y *tensor.RawTensor) {
	b.run("set", setShader, kernelParams{alpha: alpha}, y)
}

// Copy copies x into y.
func (b *Backend) Copy(x, y *tensor.RawTensor) {
	b.run("copy", copyShader, kernelParams{}, y, x)
}

// Scale computes y = alpha*y.
func (b *Backend) Scale(alpha float32, y *tensor.RawTensor) {
	b.run("scale", scaleShader, kernelParams{alpha: alpha}, y)
}

// Axpy computes y = alpha*x + y.
func (b *Backend) Axpy(alpha float32, x, y *tensor.RawTensor) {
	b.run("axpby", axpbyShader, kernelParams{alpha: alpha, beta: 1}, y, x)
}

// Axpby computes y = alpha*x + beta*y.
func (b *Backend) Axpby(alpha float32, x *tensor.RawTensor, beta float32, y *tensor.RawTensor) {
	b.run("axpby", axpbyShader, kernelParams{alpha: alpha, beta: beta}, y, x)
}

// Add computes y = a + b.
func (b *Backend) Add(a, other, y *tensor.RawTensor) {
	b.run("add", addShader, kernelParams{}, y, a, other)
}

// Mul computes y = a * b elementwise.
func (b *Backend) Mul(a, other, y *tensor.RawTensor) {
	b.run("mul", mulShader, kernelParams{}, y, a, other)
}

// Div computes y = a / b elementwise.
func (b *Backend) Div(a, other, y *tensor.RawTensor) {
	b.run("div", divShader, kernelParams{}, y, a, other)
}

// Powx computes y = a^p elementwise.
func (b *Backend) Powx(a *tensor.RawTensor, p float32, y *tensor.RawTensor) {
	b.run("powx", powxShader, kernelParams{p: p}, y, a)
}

// Sign computes y = sign(x).
func (b *Backend) Sign(x, y *tensor.RawTensor) {
	b.run("sign", signShader, kernelParams{}, y, x)
}

// AddScalar computes y = y + alpha.
func (b *Backend) AddScalar(alpha float32, y *tensor.RawTensor) {
	b.run("add_scalar", addScalarShader, kernelParams{alpha: alpha}, y)
}

// Asum returns the sum of absolute values of x.
// Reductions read the host copy, which is current after every kernel.
func (b *Backend) Asum(x *tensor.RawTensor) float32 {
	var s float64
	for _, v := range x.AsFloat32() {
		s += math.Abs(float64(v))
	}
	return float32(s)
}

// Dot returns the inner product of x and y.
func (b *Backend) Dot(x, y *tensor.RawTensor) float32 {
	var s float64
	yv := y.AsFloat32()
	for i, v := range x.AsFloat32() {
		s += float64(v) * float64(yv[i])
	}
	return float32(s)
}
