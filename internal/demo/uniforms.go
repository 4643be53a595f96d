package demo

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/webgpu-demos/internal/gpu"
	"github.com/gekko3d/webgpu-demos/internal/layout"
	"github.com/gekko3d/webgpu-demos/internal/scene"
	"github.com/gekko3d/webgpu-demos/internal/shaders"
	"github.com/gekko3d/webgpu-demos/internal/surface"
)

// Uniforms draws every object with its own uniform buffer and bind group,
// one draw call per object.
type Uniforms struct {
	base
	pipeline *wgpu.RenderPipeline
	values   *layout.Buffer
	writer   *scene.ChangingWriter
	buffers  []*wgpu.Buffer
	groups   []*wgpu.BindGroup
}

func (d *Uniforms) Init(env Env) error {
	if err := d.open("uniforms", env, 1); err != nil {
		return err
	}
	pipeline, err := d.ctx.RenderPipeline(gpu.PipelineSpec{
		Name:   "uniforms",
		Source: shaders.UniformsWGSL,
	})
	if err != nil {
		return err
	}
	d.pipeline = pipeline

	objects := scene.Generate(env.Instances, scene.NewRand(env.Seed))
	d.values = layout.NewBuffer(scene.UniformObject, len(objects))
	scene.WriteStatic(d.values, objects)
	d.writer = scene.NewChangingWriter(d.values, objects)

	bindLayout := pipeline.GetBindGroupLayout(0)
	defer bindLayout.Release()
	for i := range objects {
		buf, err := d.ctx.Buffer(fmt.Sprintf("uniforms %d", i), scene.UniformObject.Stride,
			wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		d.buffers = append(d.buffers, buf)

		group, err := d.ctx.BindBuffers(fmt.Sprintf("uniforms %d", i), bindLayout, buf)
		if err != nil {
			return err
		}
		d.groups = append(d.groups, group)
	}
	d.env.Log.Debugf("%s: %d objects, %s", d.ctx.Label, len(objects), scene.UniformObject)
	return nil
}

func (d *Uniforms) Redraw(size surface.Size) error {
	d.writer.WriteAll(size.Aspect())
	return d.draw(size, nil, func(pass *wgpu.RenderPassEncoder) error {
		pass.SetPipeline(d.pipeline)
		for i, group := range d.groups {
			if err := d.ctx.Upload(d.buffers[i], d.values.RecordBytes(i)); err != nil {
				return fmt.Errorf("upload uniforms %d: %w", i, err)
			}
			pass.SetBindGroup(0, group, nil)
			pass.Draw(3, 1, 0, 0)
		}
		return nil
	})
}

func (d *Uniforms) Release() {
	for _, g := range d.groups {
		g.Release()
	}
	d.groups = nil
	gpu.ReleaseBuffers(d.buffers...)
	d.buffers = nil
	if d.pipeline != nil {
		d.pipeline.Release()
		d.pipeline = nil
	}
	d.release()
}
