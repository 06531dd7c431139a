//go:build webgpu

package backend

import (
	"fmt"

	"github.com/born-ml/solver/internal/backend/webgpu"
	"github.com/born-ml/solver/internal/tensor"
)

// GPUAvailable reports whether a GPU backend can be opened.
func GPUAvailable() bool {
	return webgpu.IsAvailable()
}

func openGPU(deviceID int) (tensor.Backend, error) {
	// WebGPU exposes a single preferred adapter, so only device 0 exists.
	if deviceID != 0 {
		return nil, fmt.Errorf("%w: device %d (only device 0 is addressable)", ErrDeviceUnavailable, deviceID)
	}
	b, err := webgpu.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	return b, nil
}
