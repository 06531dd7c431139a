//go:build webgpu

// Package webgpu implements the kernel backend with WGSL compute shaders.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/solver/internal/tensor"
)

// Backend implements tensor.Backend on a WebGPU device.
//
// Each kernel uploads its operands, dispatches one compute pass and reads the
// result back into the destination's host buffer before returning.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	adapterInfo *wgpu.AdapterInfo
}

// New opens the high-performance adapter and creates a device on it.
// It fails when no adapter is present or the native library cannot be loaded.
func New() (b *Backend, err error) {
	// The bindings panic when wgpu_native is missing.
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	var cleanup []func()
	fail := func(format string, args ...interface{}) (*Backend, error) {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
		return nil, fmt.Errorf("webgpu: "+format, args...)
	}

	b = &Backend{
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
	}
	b.instance = wgpu.CreateInstance(nil)
	cleanup = append(cleanup, b.instance.Release)

	if b.adapter, err = b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	}); err != nil {
		return fail("request adapter: %w", err)
	}
	cleanup = append(cleanup, b.adapter.Release)
	info := b.adapter.GetInfo()
	b.adapterInfo = &info

	if b.device, err = b.adapter.RequestDevice(nil); err != nil {
		return fail("request device: %w", err)
	}
	cleanup = append(cleanup, b.device.Release)

	if b.queue = b.device.GetQueue(); b.queue == nil {
		return fail("device has no queue")
	}
	return b, nil
}

// IsAvailable reports whether a WebGPU device can be created.
func IsAvailable() bool {
	b, err := New()
	if err != nil {
		return false
	}
	b.Release()
	return true
}

// Name returns the backend name including the adapter description.
func (b *Backend) Name() string {
	if b.adapterInfo != nil && b.adapterInfo.Name != "" {
		return fmt.Sprintf("WebGPU (%s)", b.adapterInfo.Name)
	}
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// Release frees all GPU resources held by the backend.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.pipelines {
		p.Release()
	}
	for _, s := range b.shaders {
		s.Release()
	}
	b.pipelines = map[string]*wgpu.ComputePipeline{}
	b.shaders = map[string]*wgpu.ShaderModule{}

	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}
