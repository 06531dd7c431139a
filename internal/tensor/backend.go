package tensor

// Backend is the numeric kernel capability the solver and the networks are written against.
//
// Every kernel works in place on float32 tensors of equal length and is
// synchronous at the call boundary: when a method returns, the destination's
// host buffer holds the result. Length mismatches are programming errors and panic.
//
// Implementations:
//   - CPU: pure Go loops, split across goroutines for large buffers
//   - WebGPU: WGSL compute shaders (build tag webgpu)
type Backend interface {
	// Name returns a human-readable backend name.
	Name() string

	// Device returns the compute device.
	Device() Device

	// Set fills y with alpha.
	Set(alpha float32, y *RawTensor)

	// Copy copies x into y.
	Copy(x, y *RawTensor)

	// Scale computes y = alpha*y.
	Scale(alpha float32, y *RawTensor)

	// Axpy computes y = alpha*x + y.
	Axpy(alpha float32, x, y *RawTensor)

	// Axpby computes y = alpha*x + beta*y.
	Axpby(alpha float32, x *RawTensor, beta float32, y *RawTensor)

	// Add computes y = a + b.
	Add(a, b, y *RawTensor)

	// Mul computes y = a * b elementwise.
	Mul(a, b, y *RawTensor)

	// Div computes y = a / b elementwise.
	Div(a, b, y *RawTensor)

	// Powx computes y = a^p elementwise.
	Powx(a *RawTensor, p float32, y *RawTensor)

	// Sign computes y = sign(x), with sign(0) = 0.
	Sign(x, y *RawTensor)

	// AddScalar computes y = y + alpha.
	AddScalar(alpha float32, y *RawTensor)

	// Asum returns the sum of absolute values of x.
	Asum(x *RawTensor) float32

	// Dot returns the inner product of x and y.
	Dot(x, y *RawTensor) float32
}
