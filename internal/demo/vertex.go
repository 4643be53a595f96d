package demo

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/webgpu-demos/internal/gpu"
	"github.com/gekko3d/webgpu-demos/internal/layout"
	"github.com/gekko3d/webgpu-demos/internal/scene"
	"github.com/gekko3d/webgpu-demos/internal/shaders"
	"github.com/gekko3d/webgpu-demos/internal/surface"
)

// Shader locations of the vertex buffer demo.
var vertexLocations = map[string]uint32{
	scene.FieldPosition:    0,
	scene.FieldColor:       1,
	scene.FieldOffset:      2,
	scene.FieldScale:       3,
	scene.FieldVertexColor: 4,
}

// VertexBufferLayouts are the three buffers the vertex demo binds: per
// vertex position and color, per instance color and offset, per instance
// scale.
func VertexBufferLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		gpu.VertexLayout(scene.VertexAttribs, wgpu.VertexStepModeVertex, vertexLocations),
		gpu.VertexLayout(scene.InstanceStatic, wgpu.VertexStepModeInstance, vertexLocations),
		gpu.VertexLayout(scene.InstanceChanging, wgpu.VertexStepModeInstance, vertexLocations),
	}
}

// VertexBuffers feeds everything through vertex attributes and draws all
// objects in one instanced call.
type VertexBuffers struct {
	base
	pipeline *wgpu.RenderPipeline
	count    int

	vertices *layout.Buffer
	static   *layout.Buffer
	changing *layout.Buffer
	writer   *scene.ChangingWriter

	vertexBuffer   *wgpu.Buffer
	staticBuffer   *wgpu.Buffer
	changingBuffer *wgpu.Buffer
}

func (d *VertexBuffers) Init(env Env) error {
	if err := d.open("vertex", env, 1); err != nil {
		return err
	}
	pipeline, err := d.ctx.RenderPipeline(gpu.PipelineSpec{
		Name:    "vertex",
		Source:  shaders.VertexBuffersWGSL,
		Buffers: VertexBufferLayouts(),
	})
	if err != nil {
		return err
	}
	d.pipeline = pipeline

	rng := scene.NewRand(env.Seed)
	objects := scene.Generate(env.Instances, rng)
	d.count = len(objects)

	var colors [3]mgl32.Vec3
	for i := range colors {
		colors[i] = mgl32.Vec3{rng.Unit(), rng.Unit(), rng.Unit()}
	}
	// Every instance shares scene.Triangle; only the corner colors are random.
	d.vertices = layout.NewBuffer(scene.VertexAttribs, len(scene.Triangle))
	scene.WriteTriangle(d.vertices, colors)

	usage := wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	if d.vertexBuffer, err = d.ctx.Buffer("vertices", d.vertices.Size(), usage); err != nil {
		return err
	}
	if err := d.ctx.Upload(d.vertexBuffer, d.vertices.Bytes()); err != nil {
		return err
	}
	if d.count == 0 {
		return nil
	}

	d.static = layout.NewBuffer(scene.InstanceStatic, d.count)
	d.changing = layout.NewBuffer(scene.InstanceChanging, d.count)
	scene.WriteStatic(d.static, objects)
	d.writer = scene.NewChangingWriter(d.changing, objects)

	if d.staticBuffer, err = d.ctx.Buffer("static instances", d.static.Size(), usage); err != nil {
		return err
	}
	if d.changingBuffer, err = d.ctx.Buffer("changing instances", d.changing.Size(), usage); err != nil {
		return err
	}
	return d.ctx.Upload(d.staticBuffer, d.static.Bytes())
}

func (d *VertexBuffers) Redraw(size surface.Size) error {
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
		pass.SetVertexBuffer(0, d.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetVertexBuffer(1, d.staticBuffer, 0, wgpu.WholeSize)
		pass.SetVertexBuffer(2, d.changingBuffer, 0, wgpu.WholeSize)
		pass.Draw(uint32(d.vertices.Len()), uint32(d.count), 0, 0)
		return nil
	})
}

func (d *VertexBuffers) Release() {
	gpu.ReleaseBuffers(d.vertexBuffer, d.staticBuffer, d.changingBuffer)
	d.vertexBuffer, d.staticBuffer, d.changingBuffer = nil, nil, nil
	if d.pipeline != nil {
		d.pipeline.Release()
		d.pipeline = nil
	}
	d.release()
}
