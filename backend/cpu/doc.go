// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the solver kernels.
//
// # Overview
//
// This package implements tensor.Backend with:
//   - Pure Go implementation (no CGO)
//   - In-place float32 kernels (Axpy, Axpby, Powx, Div, Sign, ...)
//   - Chunked parallel execution for large buffers
//   - CPU feature detection for the backend name
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
//	    fmt.Println(be.Name()) // e.g. "CPU (AVX2, FMA)"
//
//	    x := tensor.MustZeros(tensor.Shape{1024}, tensor.CPU)
//	    be.Set(1, x)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each kernel call is isolated
// and does not share mutable state.
package cpu
