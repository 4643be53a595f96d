package demo

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/webgpu-demos/internal/gpu"
	"github.com/gekko3d/webgpu-demos/internal/shaders"
	"github.com/gekko3d/webgpu-demos/internal/surface"
)

// Multisample draws the triangle into a multisampled texture that the pass
// resolves into the surface. The texture follows the surface size.
type Multisample struct {
	base
	pipeline *wgpu.RenderPipeline
	texture  *wgpu.Texture
	view     *wgpu.TextureView
	target   surface.Size
}

func (d *Multisample) Init(env Env) error {
	samples := env.Samples
	if samples == 0 {
		samples = 4
	}
	if err := d.open("triangle2", env, samples); err != nil {
		return err
	}
	pipeline, err := d.ctx.RenderPipeline(gpu.PipelineSpec{
		Name:        "triangle2",
		Source:      shaders.TriangleWGSL,
		SampleCount: samples,
	})
	if err != nil {
		return err
	}
	d.pipeline = pipeline
	return nil
}

// ensureTarget recreates the multisampled texture when size differs from the
// one it was made for.
func (d *Multisample) ensureTarget(size surface.Size) error {
	if d.view != nil && d.target == size {
		return nil
	}
	d.releaseTarget()
	if w, h := d.ctx.Size(); w != size.Width || h != size.Height {
		d.ctx.Resize(size.Width, size.Height)
	}
	texture, view, err := d.ctx.MultisampleTarget(d.samples)
	if err != nil {
		return err
	}
	d.texture, d.view, d.target = texture, view, size
	d.env.Log.Debugf("%s: msaa target %dx%d x%d", d.ctx.Label, size.Width, size.Height, d.samples)
	return nil
}

func (d *Multisample) Redraw(size surface.Size) error {
	var target *wgpu.TextureView
	if d.samples > 1 {
		if err := d.ensureTarget(size); err != nil {
			return err
		}
		target = d.view
	}
	return d.draw(size, target, func(pass *wgpu.RenderPassEncoder) error {
		pass.SetPipeline(d.pipeline)
		pass.Draw(3, 1, 0, 0)
		return nil
	})
}

func (d *Multisample) releaseTarget() {
	if d.view != nil {
		d.view.Release()
		d.view = nil
	}
	if d.texture != nil {
		d.texture.Release()
		d.texture = nil
	}
}

func (d *Multisample) Release() {
	d.releaseTarget()
	if d.pipeline != nil {
		d.pipeline.Release()
		d.pipeline = nil
	}
	d.release()
}
