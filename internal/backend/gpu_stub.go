//go:build !webgpu

package backend

import "github.com/born-ml/solver/internal/tensor"

// GPUAvailable reports whether a GPU backend can be opened.
func GPUAvailable() bool {
	return false
}

func openGPU(int) (tensor.Backend, error) {
	return nil, errGPUNotCompiledIn
}
