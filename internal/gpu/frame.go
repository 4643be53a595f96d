package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Frame is one acquired surface texture plus the encoder recording into it.
type Frame struct {
	ctx     *Context
	texture *wgpu.Texture
	View    *wgpu.TextureView
	Encoder *wgpu.CommandEncoder
}

// BeginFrame acquires the next surface texture and starts a command encoder.
func (c *Context) BeginFrame() (*Frame, error) {
	texture, err := c.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("get current texture: %w", err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create view: %w", err)
	}
	encoder, err := c.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: c.ResourceLabel("frame encoder"),
	})
	if err != nil {
		view.Release()
		texture.Release()
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	return &Frame{ctx: c, texture: texture, View: view, Encoder: encoder}, nil
}

// BeginPass starts a render pass that clears to clear. When msaa is set the
// pass renders into it and resolves into the surface texture.
func (f *Frame) BeginPass(clear wgpu.Color, msaa *wgpu.TextureView) *wgpu.RenderPassEncoder {
	attachment := wgpu.RenderPassColorAttachment{
		View:       f.View,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: clear,
	}
	if msaa != nil {
		attachment.View = msaa
		attachment.ResolveTarget = f.View
		attachment.StoreOp = wgpu.StoreOpDiscard
	}
	return f.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{attachment},
	})
}

// End finishes recording, submits and presents. The frame is released
// either way.
func (f *Frame) End() error {
	defer f.release()

	cmd, err := f.Encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	defer cmd.Release()

	f.ctx.Queue.Submit(cmd)
	f.ctx.Surface.Present()
	return nil
}

func (f *Frame) release() {
	f.Encoder.Release()
	f.View.Release()
	f.texture.Release()
}

// MultisampleTarget creates a color texture matching the surface with the
// given sample count, for passes that resolve into the surface.
func (c *Context) MultisampleTarget(samples uint32) (*wgpu.Texture, *wgpu.TextureView, error) {
	width, height := c.Size()
	texture, err := c.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         c.ResourceLabel("msaa target"),
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        c.Format(),
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("msaa texture: %w", err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, nil, fmt.Errorf("msaa view: %w", err)
	}
	return texture, view, nil
}
