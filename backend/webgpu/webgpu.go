//go:build webgpu

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated solver kernels.
//
// The package is only built with the webgpu build tag:
//
//	go build -tags webgpu ./...
//
// Example:
//
//	import (
//	    "github.com/born-ml/solver/backend/webgpu"
//	    "github.com/born-ml/solver/solver"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    s, err := solver.New(cfg, solver.WithBackend(gpu))
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/solver/internal/backend/webgpu"
	"github.com/born-ml/solver/tensor"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend on the high-performance adapter.
// Call Release() when done to free GPU resources.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if a WebGPU adapter can be acquired.
//
// Example:
//
//	var be tensor.Backend = cpu.New()
//	if webgpu.IsAvailable() {
//	    if gpu, err := webgpu.New(); err == nil {
//	        be = gpu
//	    }
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
