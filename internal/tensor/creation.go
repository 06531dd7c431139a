package tensor

import "fmt"

// Zeros creates a zero-filled float32 tensor.
func Zeros(shape Shape, device Device) (*RawTensor, error) {
	return NewRaw(shape, Float32, device)
}

// MustZeros is like Zeros but panics on an invalid shape.
func MustZeros(shape Shape, device Device) *RawTensor {
	t, err := Zeros(shape, device)
	if err != nil {
		panic(err)
	}
	return t
}

// FromFloat32 creates a float32 tensor holding a copy of values.
func FromFloat32(values []float32, shape Shape, device Device) (*RawTensor, error) {
	if len(values) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d doesn't match shape %v (%d elements)",
			len(values), []int(shape), shape.NumElements())
	}
	t, err := NewRaw(shape, Float32, device)
	if err != nil {
		return nil, err
	}
	copy(t.AsFloat32(), values)
	return t, nil
}

// Full creates a float32 tensor with every element set to value.
func Full(shape Shape, value float32, device Device) (*RawTensor, error) {
	t, err := NewRaw(shape, Float32, device)
	if err != nil {
		return nil, err
	}
	data := t.AsFloat32()
	for i := range data {
		data[i] = value
	}
	return t, nil
}
