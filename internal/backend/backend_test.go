package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/solver/internal/tensor"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("cpu")
	require.NoError(t, err)
	assert.Equal(t, CPU, m)

	m, err = ParseMode(" GPU ")
	require.NoError(t, err)
	assert.Equal(t, GPU, m)

	_, err = ParseMode("TPU")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestOpenCPU(t *testing.T) {
	b, err := Open(CPU, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.CPU, b.Device())
}

func TestOpenUnknownMode(t *testing.T) {
	_, err := Open(Mode(7), 0)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestOpenGPU(t *testing.T) {
	_, err := Open(GPU, -1)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)

	b, err := Open(GPU, 0)
	if !GPUAvailable() {
		assert.ErrorIs(t, err, ErrDeviceUnavailable)
		return
	}
	require.NoError(t, err)
	assert.Equal(t, tensor.WebGPU, b.Device())
}
