// Package demo holds the individual WebGPU demos. Each demo owns its own
// GPU context, pipelines and buffers; nothing is shared between them.
package demo

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/webgpu-demos/internal/gpu"
	"github.com/gekko3d/webgpu-demos/internal/route"
	"github.com/gekko3d/webgpu-demos/internal/surface"
)

// Logger is the subset of the application logger the demos write to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Layer is drawn on top of a demo inside the demo's own render pass.
// It is attached to every context a demo creates.
type Layer interface {
	Attach(ctx *gpu.Context, samples uint32) error
	Draw(pass *wgpu.RenderPassEncoder, size surface.Size) error
	Detach()
}

// Env is what the host hands a demo at init.
type Env struct {
	Log       Logger
	Window    *glfw.Window
	Instances int
	Seed      uint64
	Clear     wgpu.Color
	Samples   uint32
	Checker   bool
	Validate  bool
	Layer     Layer
}

// Demo is one route's worth of GPU work.
type Demo interface {
	// Init acquires the device and builds every resource the demo draws with.
	Init(env Env) error
	// Redraw renders one frame at size. It is called once per size change.
	Redraw(size surface.Size) error
	// Context is the demo's GPU context, nil before Init.
	Context() *gpu.Context
	Release()
}

// Entry registers a demo constructor under a route.
type Entry struct {
	Route route.Route
	New   func() Demo
}

// Entries lists every demo in navigation order.
func Entries() []Entry {
	return []Entry{
		{route.Route{ID: 1, Title: "Fundamentals: Triangle", Path: "triangle"}, func() Demo { return &Triangle{} }},
		{route.Route{ID: 2, Title: "Fundamentals: Computed", Path: "computed"}, func() Demo { return &Computed{} }},
		{route.Route{ID: 3, Title: "Inter-stage Variables", Path: "stage"}, func() Demo { return &Stage{} }},
		{route.Route{ID: 4, Title: "Uniforms", Path: "uniforms"}, func() Demo { return &Uniforms{} }},
		{route.Route{ID: 5, Title: "Multisampled Triangle", Path: "triangle2"}, func() Demo { return &Multisample{} }},
		{route.Route{ID: 6, Title: "Storage Buffers", Path: "storage"}, func() Demo { return &Storage{} }},
		{route.Route{ID: 7, Title: "Storage Vertices", Path: "storage-vertex"}, func() Demo { return &StorageVertex{} }},
		{route.Route{ID: 8, Title: "Vertex Buffers", Path: "vertex"}, func() Demo { return &VertexBuffers{} }},
	}
}

// Table builds the router over Entries.
func Table() (*route.Table, error) {
	entries := Entries()
	routes := make([]route.Route, len(entries))
	for i, e := range entries {
		routes[i] = e.Route
	}
	return route.NewTable(routes...)
}

// New constructs the demo registered under path.
func New(path string) (Demo, error) {
	key := route.Normalize(path)
	for _, e := range Entries() {
		if e.Route.Path == key {
			return e.New(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", route.ErrUnknownRoute, path)
}

// base carries the context and drawing loop shared by the windowed demos.
type base struct {
	env     Env
	ctx     *gpu.Context
	samples uint32
}

func (b *base) open(name string, env Env, samples uint32) error {
	b.env = env
	if b.env.Log == nil {
		b.env.Log = nopLogger{}
	}
	if samples == 0 {
		samples = 1
	}
	b.samples = samples

	ctx, err := gpu.Init(env.Window, gpu.Options{Label: name, Validate: env.Validate})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	b.ctx = ctx
	b.env.Log.Debugf("%s: device ready, max texture dimension %d", ctx.Label, ctx.MaxTextureDimension2D)

	if env.Layer != nil {
		if err := env.Layer.Attach(ctx, samples); err != nil {
			b.env.Log.Warnf("%s: overlay disabled: %v", ctx.Label, err)
			env.Layer.Detach()
			b.env.Layer = nil
		}
	}
	return nil
}

func (b *base) Context() *gpu.Context {
	return b.ctx
}

// draw resizes the surface if needed and records one clearing render pass.
// target is the multisampled view when the demo renders with MSAA.
func (b *base) draw(size surface.Size, target *wgpu.TextureView, record func(pass *wgpu.RenderPassEncoder) error) error {
	if w, h := b.ctx.Size(); w != size.Width || h != size.Height {
		b.ctx.Resize(size.Width, size.Height)
	}

	frame, err := b.ctx.BeginFrame()
	if err != nil {
		return err
	}
	pass := frame.BeginPass(b.env.Clear, target)
	if err := record(pass); err != nil {
		pass.End()
		frame.End()
		return err
	}
	if b.env.Layer != nil {
		if err := b.env.Layer.Draw(pass, size); err != nil {
			b.env.Log.Warnf("%s: overlay: %v", b.ctx.Label, err)
		}
	}
	if err := pass.End(); err != nil {
		frame.End()
		return fmt.Errorf("render pass end: %w", err)
	}
	return frame.End()
}

func (b *base) release() {
	if b.env.Layer != nil {
		b.env.Layer.Detach()
	}
	b.ctx.Release()
	b.ctx = nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
