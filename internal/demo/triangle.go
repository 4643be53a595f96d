package demo

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/webgpu-demos/internal/gpu"
	"github.com/gekko3d/webgpu-demos/internal/shaders"
	"github.com/gekko3d/webgpu-demos/internal/surface"
)

// Triangle draws the hard-coded red triangle: three vertices, one instance.
type Triangle struct {
	base
	pipeline *wgpu.RenderPipeline
}

func (d *Triangle) Init(env Env) error {
	if err := d.open("triangle", env, 1); err != nil {
		return err
	}
	pipeline, err := d.ctx.RenderPipeline(gpu.PipelineSpec{
		Name:   "triangle",
		Source: shaders.TriangleWGSL,
	})
	if err != nil {
		return err
	}
	d.pipeline = pipeline
	return nil
}

func (d *Triangle) Redraw(size surface.Size) error {
	return d.draw(size, nil, func(pass *wgpu.RenderPassEncoder) error {
		pass.SetPipeline(d.pipeline)
		pass.Draw(3, 1, 0, 0)
		return nil
	})
}

func (d *Triangle) Release() {
	if d.pipeline != nil {
		d.pipeline.Release()
		d.pipeline = nil
	}
	d.release()
}
