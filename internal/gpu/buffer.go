package gpu

import (
	"bytes"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Buffer allocates an uninitialized buffer.
func (c *Context) Buffer(name string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	buf, err := c.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: c.ResourceLabel(name),
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("buffer %s: %w", name, err)
	}
	return buf, nil
}

// Upload copies data to the start of buf through the queue.
func (c *Context) Upload(buf *wgpu.Buffer, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return c.Queue.WriteBuffer(buf, 0, data)
}

// BindBuffers creates a bind group whose binding i is buffers[i], whole size.
func (c *Context) BindBuffers(name string, layout *wgpu.BindGroupLayout, buffers ...*wgpu.Buffer) (*wgpu.BindGroup, error) {
	entries := make([]wgpu.BindGroupEntry, len(buffers))
	for i, b := range buffers {
		entries[i] = wgpu.BindGroupEntry{
			Binding: uint32(i),
			Buffer:  b,
			Size:    wgpu.WholeSize,
		}
	}
	group, err := c.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   c.ResourceLabel(name),
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("bind group %s: %w", name, err)
	}
	return group, nil
}

// ReadBuffer maps a MapRead buffer, copies size bytes out and unmaps it
// again. It blocks on the device until the mapping resolves.
func (c *Context) ReadBuffer(buf *wgpu.Buffer, size uint64) ([]byte, error) {
	var (
		status wgpu.BufferMapAsyncStatus
		done   bool
	)
	err := buf.MapAsync(wgpu.MapModeRead, 0, size, func(s wgpu.BufferMapAsyncStatus) {
		status = s
		done = true
	})
	if err != nil {
		return nil, fmt.Errorf("map buffer: %w", err)
	}
	c.Device.Poll(true, nil)
	if !done || status != wgpu.BufferMapAsyncStatusSuccess {
		return nil, fmt.Errorf("map buffer: status %v", status)
	}

	out := bytes.Clone(buf.GetMappedRange(0, uint(size)))
	buf.Unmap()
	return out, nil
}

// ReleaseBuffers releases every non-nil buffer.
func ReleaseBuffers(buffers ...*wgpu.Buffer) {
	for _, b := range buffers {
		if b != nil {
			b.Release()
		}
	}
}
