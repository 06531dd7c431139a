//go:build webgpu

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/solver/internal/tensor"
)

// kernelParams mirrors the WGSL Params uniform (16 bytes).
type kernelParams struct {
	alpha float32
	beta  float32
	p     float32
}

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	// Auto layout (nil layout)
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer initialized with data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer copies a GPU buffer into dst through a staging buffer.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, dst []byte) error {
	size := uint64(len(dst))
	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	// MapAsync blocks until the copy above has completed.
	if err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(dst, unsafe.Slice((*byte)(mappedPtr), size))
	stagingBuffer.Unmap()

	return nil
}

// run dispatches one elementwise kernel.
//
// Bindings are the inputs in order, then y (read_write, seeded with y's
// current contents so accumulating kernels see the old value), then the
// Params uniform. The result is copied back into y's host buffer.
func (b *Backend) run(name, code string, params kernelParams, y *tensor.RawTensor, inputs ...*tensor.RawTensor) {
	if y.DType() != tensor.Float32 {
		panic(fmt.Sprintf("webgpu %s: only float32 is supported, got %s", name, y.DType()))
	}
	n := y.NumElements()
	for _, in := range inputs {
		if in.NumElements() != n {
			panic(fmt.Sprintf("webgpu %s: length mismatch: %d vs %d", name, in.NumElements(), n))
		}
	}

	shader := b.compileShader(name, code)
	pipeline := b.getOrCreatePipeline(name, shader)

	//nolint:gosec // G115: ByteSize() is non-negative
	size := uint64(y.ByteSize())
	entries := make([]wgpu.BindGroupEntry, 0, len(inputs)+2)
	for i, in := range inputs {
		buf := b.createBuffer(in.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		defer buf.Release()
		//nolint:gosec // G115: binding index is small
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), buf, 0, size))
	}

	bufferY := b.createBuffer(y.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	defer bufferY.Release()
	//nolint:gosec // G115: binding index is small
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(inputs)), bufferY, 0, size))

	uniform := make([]byte, 16)
	//nolint:gosec // G115: element count fits u32 for any buffer WebGPU accepts
	binary.LittleEndian.PutUint32(uniform[0:4], uint32(n))
	binary.LittleEndian.PutUint32(uniform[4:8], math.Float32bits(params.alpha))
	binary.LittleEndian.PutUint32(uniform[8:12], math.Float32bits(params.beta))
	binary.LittleEndian.PutUint32(uniform[12:16], math.Float32bits(params.p))
	bufferParams := b.createBuffer(uniform, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	defer bufferParams.Release()
	//nolint:gosec // G115: binding index is small
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(inputs)+1), bufferParams, 0, 16))

	bindGroup := b.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	//nolint:gosec // G115: workgroup count is non-negative
	computePass.DispatchWorkgroups(uint32((n+workgroupSize-1)/workgroupSize), 1, 1)
	computePass.End()
	b.queue.Submit(encoder.Finish(nil))

	if err := b.readBuffer(bufferY, y.Data()); err != nil {
		panic(fmt.Sprintf("webgpu %s: %v", name, err))
	}
}
