package tensor

import (
	"fmt"
	"unsafe"
)

// Device represents the compute device a tensor's kernels run on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// RawTensor is a contiguous, row-major host buffer with shape and type information.
//
// Kernel backends operate on RawTensors in place. A GPU backend uploads the
// host buffer, runs the kernel and copies the result back before returning,
// so the host view is always current between calls.
type RawTensor struct {
	data   []byte
	shape  Shape
	dtype  DataType
	device Device
}

// NewRaw creates a new zero-filled RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return len(r.data)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		dtype:  r.dtype,
		device: r.device,
	}
}

// CopyFrom overwrites the tensor's contents with src.
// Shapes and types must match exactly.
func (r *RawTensor) CopyFrom(src *RawTensor) error {
	if src.dtype != r.dtype {
		return fmt.Errorf("dtype mismatch: %s vs %s", r.dtype, src.dtype)
	}
	if !src.shape.Equal(r.shape) {
		return fmt.Errorf("shape mismatch: %v vs %v", r.shape, src.shape)
	}
	copy(r.data, src.data)
	return nil
}

// SameLayout reports whether two tensors have equal shape and dtype.
func (r *RawTensor) SameLayout(other *RawTensor) bool {
	return r.dtype == other.dtype && r.shape.Equal(other.shape)
}
