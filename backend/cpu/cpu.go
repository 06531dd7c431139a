// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/solver/internal/backend/cpu"
	"github.com/born-ml/solver/internal/parallel"
	"github.com/born-ml/solver/tensor"
)

// Backend represents the CPU backend implementation.
//
// Kernels are plain loops over float32 slices. Large buffers are split
// across worker goroutines.
type Backend = internalcpu.CPUBackend

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend sized to the detected CPU.
//
// Example:
//
//	import (
//	    "github.com/born-ml/solver/backend/cpu"
//	    "github.com/born-ml/solver/solver"
//	)
//
//	func main() {
//	    s, err := solver.New(cfg, solver.WithBackend(cpu.New()))
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}
