// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/solver/internal/tensor"
)

// Shape is the dimensions of a tensor.
type Shape = tensor.Shape

// DataType is the element type of a tensor.
type DataType = tensor.DataType

// Element types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
)

// Device identifies where a backend runs its kernels.
type Device = tensor.Device

// Devices.
const (
	CPU    = tensor.CPU
	WebGPU = tensor.WebGPU
)

// RawTensor is a contiguous host buffer with a shape, element type and device.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32() // shares the buffer
//	clone := raw.Clone()    // deep copy
type RawTensor = tensor.RawTensor

// Backend is the set of in-place numeric kernels the update rules use.
type Backend = tensor.Backend

// NewRaw allocates a zeroed tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Zeros allocates a zeroed float32 tensor.
func Zeros(shape Shape, device Device) (*RawTensor, error) {
	return tensor.Zeros(shape, device)
}

// MustZeros is like Zeros but panics on an invalid shape.
func MustZeros(shape Shape, device Device) *RawTensor {
	return tensor.MustZeros(shape, device)
}

// FromFloat32 copies values into a new tensor of the given shape.
func FromFloat32(values []float32, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromFloat32(values, shape, device)
}

// Full allocates a float32 tensor filled with value.
func Full(shape Shape, value float32, device Device) (*RawTensor, error) {
	return tensor.Full(shape, value, device)
}
