package demo

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/webgpu-demos/internal/gpu"
	"github.com/gekko3d/webgpu-demos/internal/shaders"
	"github.com/gekko3d/webgpu-demos/internal/surface"
)

// Stage passes a color per corner from the vertex to the fragment stage.
// With Env.Checker the fragment stage ignores it and draws a checkerboard
// from the pixel position instead.
type Stage struct {
	base
	pipeline *wgpu.RenderPipeline
}

// FragmentEntry picks the fragment shader variant.
func (d *Stage) FragmentEntry(checker bool) string {
	if checker {
		return "fs_checker"
	}
	return "fs_main"
}

func (d *Stage) Init(env Env) error {
	if err := d.open("stage", env, 1); err != nil {
		return err
	}
	pipeline, err := d.ctx.RenderPipeline(gpu.PipelineSpec{
		Name:          "stage",
		Source:        shaders.StageWGSL,
		FragmentEntry: d.FragmentEntry(env.Checker),
	})
	if err != nil {
		return err
	}
	d.pipeline = pipeline
	return nil
}

func (d *Stage) Redraw(size surface.Size) error {
	return d.draw(size, nil, func(pass *wgpu.RenderPassEncoder) error {
		pass.SetPipeline(d.pipeline)
		pass.Draw(3, 1, 0, 0)
		return nil
	})
}

func (d *Stage) Release() {
	if d.pipeline != nil {
		d.pipeline.Release()
		d.pipeline = nil
	}
	d.release()
}
