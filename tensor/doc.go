// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the host buffers and the kernel interface the
// solver operates on.
//
// # Overview
//
// A RawTensor is a contiguous float32 buffer with a shape and a device tag.
// Parameters, gradients and optimizer history are all RawTensors. A Backend
// implements the in-place kernels the update rules are written in terms of
// (Axpy, Axpby, Powx, Div, ...). Every Backend call is synchronous: when it
// returns, the destination's host buffer holds the result.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/solver/backend/cpu"
//	    "github.com/born-ml/solver/tensor"
//	)
//
//	func main() {
//	    be := cpu.New()
//	    x, _ := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
//	    y := tensor.MustZeros(tensor.Shape{3}, tensor.CPU)
//
//	    be.Axpby(0.5, x, 0.9, y) // y = 0.5*x + 0.9*y
//	    fmt.Println(y.AsFloat32())
//	}
//
// # Devices
//
// Tensors always live in host memory. The WebGPU backend uploads its inputs,
// dispatches a compute shader and reads the result back into the destination.
package tensor
