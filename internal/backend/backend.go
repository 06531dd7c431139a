// Package backend selects the kernel backend for an execution mode.
package backend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/solver/internal/backend/cpu"
	"github.com/born-ml/solver/internal/tensor"
)

// Errors returned by Open.
var (
	ErrUnknownMode       = errors.New("unknown execution mode")
	ErrDeviceUnavailable = errors.New("device unavailable")
	errGPUNotCompiledIn  = fmt.Errorf("%w: built without GPU support (rebuild with -tags webgpu)", ErrDeviceUnavailable)
)

// Mode is the execution mode of a training run.
type Mode int

// Execution modes.
const (
	CPU Mode = iota
	GPU
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case CPU:
		return "CPU"
	case GPU:
		return "GPU"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "CPU" or "GPU", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CPU":
		return CPU, nil
	case "GPU":
		return GPU, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Open returns the kernel backend for mode.
// deviceID selects a GPU adapter and is ignored in CPU mode.
func Open(mode Mode, deviceID int) (tensor.Backend, error) {
	switch mode {
	case CPU:
		return cpu.New(), nil
	case GPU:
		if deviceID < 0 {
			return nil, fmt.Errorf("%w: invalid device id %d", ErrDeviceUnavailable, deviceID)
		}
		return openGPU(deviceID)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}
}
