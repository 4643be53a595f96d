package demo

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/webgpu-demos/internal/gpu"
	"github.com/gekko3d/webgpu-demos/internal/layout"
	"github.com/gekko3d/webgpu-demos/internal/scene"
	"github.com/gekko3d/webgpu-demos/internal/shaders"
	"github.com/gekko3d/webgpu-demos/internal/surface"
)

// StorageVertex keeps static data, changing data and every object's three
// corners in storage arrays and draws all objects in one instanced call.
type StorageVertex struct {
	base
	pipeline *wgpu.RenderPipeline
	group    *wgpu.BindGroup
	count    int

	static   *layout.Buffer
	changing *layout.Buffer
	vertices *layout.Buffer
	writer   *scene.ChangingWriter

	staticBuffer   *wgpu.Buffer
	changingBuffer *wgpu.Buffer
	vertexBuffer   *wgpu.Buffer
}

func (d *StorageVertex) Init(env Env) error {
	if err := d.open("storage-vertex", env, 1); err != nil {
		return err
	}
	pipeline, err := d.ctx.RenderPipeline(gpu.PipelineSpec{
		Name:   "storage-vertex",
		Source: shaders.StorageVertexWGSL,
	})
	if err != nil {
		return err
	}
	d.pipeline = pipeline

	objects := scene.Generate(env.Instances, scene.NewRand(env.Seed))
	d.count = len(objects)
	if d.count == 0 {
		return nil
	}
	d.static = layout.NewBuffer(scene.StorageStatic, d.count)
	d.changing = layout.NewBuffer(scene.StorageChanging, d.count)
	d.vertices = layout.NewBuffer(scene.StorageVertex, d.count*len(scene.Triangle))
	scene.WriteStatic(d.static, objects)
	scene.WriteObjectVertices(d.vertices, objects)
	d.writer = scene.NewChangingWriter(d.changing, objects)

	usage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
	if d.staticBuffer, err = d.ctx.Buffer("static storage", d.static.Size(), usage); err != nil {
		return err
	}
	if d.changingBuffer, err = d.ctx.Buffer("changing storage", d.changing.Size(), usage); err != nil {
		return err
	}
	if d.vertexBuffer, err = d.ctx.Buffer("vertex storage", d.vertices.Size(), usage); err != nil {
		return err
	}
	if err := d.ctx.Upload(d.staticBuffer, d.static.Bytes()); err != nil {
		return err
	}
	if err := d.ctx.Upload(d.vertexBuffer, d.vertices.Bytes()); err != nil {
		return err
	}

	bindLayout := pipeline.GetBindGroupLayout(0)
	defer bindLayout.Release()
	d.group, err = d.ctx.BindBuffers("storage-vertex", bindLayout, d.staticBuffer, d.changingBuffer, d.vertexBuffer)
	return err
}

func (d *StorageVertex) Redraw(size surface.Size) error {
	if d.count > 0 {
		d.writer.WriteAll(size.Aspect())
		if err := d.ctx.Upload(d.changingBuffer, d.changing.Bytes()); err != nil {
			return err
		}
	}
	return d.draw(size, nil, func(pass *wgpu.RenderPassEncoder) error {
		if d.count == 0 {
			return nil
		}
		pass.SetPipeline(d.pipeline)
		pass.SetBindGroup(0, d.group, nil)
		pass.Draw(uint32(len(scene.Triangle)), uint32(d.count), 0, 0)
		return nil
	})
}

func (d *StorageVertex) Release() {
	if d.group != nil {
		d.group.Release()
		d.group = nil
	}
	gpu.ReleaseBuffers(d.staticBuffer, d.changingBuffer, d.vertexBuffer)
	d.staticBuffer, d.changingBuffer, d.vertexBuffer = nil, nil, nil
	if d.pipeline != nil {
		d.pipeline.Release()
		d.pipeline = nil
	}
	d.release()
}
