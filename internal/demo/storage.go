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

// Storage gives every object a static and a changing storage buffer bound
// together in one bind group, and draws the objects one at a time.
type Storage struct {
	base
	pipeline *wgpu.RenderPipeline
	static   *layout.Buffer
	changing *layout.Buffer
	writer   *scene.ChangingWriter

	staticBuffers   []*wgpu.Buffer
	changingBuffers []*wgpu.Buffer
	groups          []*wgpu.BindGroup
}

func (d *Storage) Init(env Env) error {
	if err := d.open("storage", env, 1); err != nil {
		return err
	}
	pipeline, err := d.ctx.RenderPipeline(gpu.PipelineSpec{
		Name:   "storage",
		Source: shaders.StorageWGSL,
	})
	if err != nil {
		return err
	}
	d.pipeline = pipeline

	objects := scene.Generate(env.Instances, scene.NewRand(env.Seed))
	d.static = layout.NewBuffer(scene.StorageStatic, len(objects))
	d.changing = layout.NewBuffer(scene.StorageChanging, len(objects))
	scene.WriteStatic(d.static, objects)
	d.writer = scene.NewChangingWriter(d.changing, objects)

	bindLayout := pipeline.GetBindGroupLayout(0)
	defer bindLayout.Release()
	usage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
	for i := range objects {
		static, err := d.ctx.Buffer(fmt.Sprintf("static storage %d", i), scene.StorageStatic.Stride, usage)
		if err != nil {
			return err
		}
		d.staticBuffers = append(d.staticBuffers, static)
		if err := d.ctx.Upload(static, d.static.RecordBytes(i)); err != nil {
			return fmt.Errorf("upload static storage %d: %w", i, err)
		}

		changing, err := d.ctx.Buffer(fmt.Sprintf("changing storage %d", i), scene.StorageChanging.Stride, usage)
		if err != nil {
			return err
		}
		d.changingBuffers = append(d.changingBuffers, changing)

		group, err := d.ctx.BindBuffers(fmt.Sprintf("storage %d", i), bindLayout, static, changing)
		if err != nil {
			return err
		}
		d.groups = append(d.groups, group)
	}
	return nil
}

func (d *Storage) Redraw(size surface.Size) error {
	d.writer.WriteAll(size.Aspect())
	return d.draw(size, nil, func(pass *wgpu.RenderPassEncoder) error {
		pass.SetPipeline(d.pipeline)
		for i, group := range d.groups {
			if err := d.ctx.Upload(d.changingBuffers[i], d.changing.RecordBytes(i)); err != nil {
				return fmt.Errorf("upload changing storage %d: %w", i, err)
			}
			pass.SetBindGroup(0, group, nil)
			pass.Draw(3, 1, 0, 0)
		}
		return nil
	})
}

func (d *Storage) Release() {
	for _, g := range d.groups {
		g.Release()
	}
	d.groups = nil
	gpu.ReleaseBuffers(d.staticBuffers...)
	gpu.ReleaseBuffers(d.changingBuffers...)
	d.staticBuffers, d.changingBuffers = nil, nil
	if d.pipeline != nil {
		d.pipeline.Release()
		d.pipeline = nil
	}
	d.release()
}
