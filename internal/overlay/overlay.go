package overlay

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/webgpu-demos/internal/gpu"
	"github.com/gekko3d/webgpu-demos/internal/route"
	"github.com/gekko3d/webgpu-demos/internal/shaders"
	"github.com/gekko3d/webgpu-demos/internal/surface"
)

var (
	textColor    = [4]float32{0.85, 0.85, 0.85, 1}
	currentColor = [4]float32{1, 0.8, 0.2, 1}
)

var textBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOne,
		Operation: wgpu.BlendOperationAdd,
	},
}

const (
	margin    = 8
	textScale = 1
)

// Overlay renders the route list over whichever demo is current. The atlas
// is built once; GPU resources are rebuilt for every demo context since
// demos never share a device.
type Overlay struct {
	atlas   *Atlas
	items   []Item
	visible bool

	ctx       *gpu.Context
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	sampler   *wgpu.Sampler
	pipeline  *wgpu.RenderPipeline
	group     *wgpu.BindGroup
	vertices  *wgpu.Buffer
	count     uint32
	drawnSize surface.Size
}

// New builds the glyph atlas at size points.
func New(size float64) (*Overlay, error) {
	atlas, err := NewAtlas(size)
	if err != nil {
		return nil, err
	}
	return &Overlay{atlas: atlas, visible: true}, nil
}

// Navigation lays the routes out top to bottom, the current one highlighted.
func (o *Overlay) Navigation(routes []route.Route, current route.Route) {
	o.items = o.items[:0]
	y := float32(margin)
	for i, r := range routes {
		color := textColor
		if r.Path == current.Path {
			color = currentColor
		}
		o.items = append(o.items, Item{
			Text:  fmt.Sprintf("%d  %s", i+1, r.Title),
			X:     margin,
			Y:     y,
			Scale: textScale,
			Color: color,
		})
		y += o.atlas.LineHeight(textScale)
	}
	o.drawnSize = surface.Size{}
}

// Items is the text currently laid out.
func (o *Overlay) Items() []Item {
	return o.items
}

// Toggle flips visibility and reports the new state.
func (o *Overlay) Toggle() bool {
	o.visible = !o.visible
	return o.visible
}

func (o *Overlay) Visible() bool {
	return o.visible
}

// Attach uploads the atlas and builds the text pipeline on ctx.
func (o *Overlay) Attach(ctx *gpu.Context, samples uint32) error {
	o.Detach()
	o.ctx = ctx

	w, h := o.atlas.Image.Bounds().Dx(), o.atlas.Image.Bounds().Dy()
	extent := wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}
	texture, err := ctx.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         ctx.ResourceLabel("text atlas"),
		Size:          extent,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("atlas texture: %w", err)
	}
	o.texture = texture
	if err := ctx.Queue.WriteTexture(texture.AsImageCopy(), o.atlas.Image.Pix, &wgpu.TextureDataLayout{
		BytesPerRow:  uint32(w),
		RowsPerImage: uint32(h),
	}, &extent); err != nil {
		return fmt.Errorf("atlas upload: %w", err)
	}
	if o.view, err = texture.CreateView(nil); err != nil {
		return fmt.Errorf("atlas view: %w", err)
	}

	o.sampler, err = ctx.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         ctx.ResourceLabel("text sampler"),
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("text sampler: %w", err)
	}

	o.pipeline, err = ctx.RenderPipeline(gpu.PipelineSpec{
		Name:   "text",
		Source: shaders.TextWGSL,
		Buffers: []wgpu.VertexBufferLayout{
			gpu.VertexLayout(VertexLayout, wgpu.VertexStepModeVertex, map[string]uint32{
				"position": 0,
				"uv":       1,
				"color":    2,
			}),
		},
		SampleCount: samples,
		Blend:       &textBlend,
	})
	if err != nil {
		return err
	}

	bindLayout := o.pipeline.GetBindGroupLayout(0)
	defer bindLayout.Release()
	o.group, err = ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  ctx.ResourceLabel("text"),
		Layout: bindLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: o.view},
			{Binding: 1, Sampler: o.sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("text bind group: %w", err)
	}
	o.drawnSize = surface.Size{}
	return nil
}

// upload rebuilds the vertex buffer when the layout or size changed.
func (o *Overlay) upload(size surface.Size) error {
	if size == o.drawnSize && o.vertices != nil {
		return nil
	}
	packed := Pack(o.atlas.Vertices(o.items, size.Width, size.Height))
	o.count = uint32(packed.Len())
	o.drawnSize = size
	if o.count == 0 {
		return nil
	}

	if o.vertices == nil || o.vertices.GetSize() < packed.Size() {
		gpu.ReleaseBuffers(o.vertices)
		buf, err := o.ctx.Buffer("text vertices", packed.Size(), wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst)
		if err != nil {
			o.vertices = nil
			return err
		}
		o.vertices = buf
	}
	return o.ctx.Upload(o.vertices, packed.Bytes())
}

// Draw records the text into pass when visible.
func (o *Overlay) Draw(pass *wgpu.RenderPassEncoder, size surface.Size) error {
	if !o.visible || o.pipeline == nil || len(o.items) == 0 {
		return nil
	}
	if err := o.upload(size); err != nil {
		return err
	}
	if o.count == 0 {
		return nil
	}
	pass.SetPipeline(o.pipeline)
	pass.SetBindGroup(0, o.group, nil)
	pass.SetVertexBuffer(0, o.vertices, 0, wgpu.WholeSize)
	pass.Draw(o.count, 1, 0, 0)
	return nil
}

// Detach frees the resources of the current context. Safe to call when
// nothing is attached.
func (o *Overlay) Detach() {
	if o.group != nil {
		o.group.Release()
		o.group = nil
	}
	gpu.ReleaseBuffers(o.vertices)
	o.vertices = nil
	if o.pipeline != nil {
		o.pipeline.Release()
		o.pipeline = nil
	}
	if o.sampler != nil {
		o.sampler.Release()
		o.sampler = nil
	}
	if o.view != nil {
		o.view.Release()
		o.view = nil
	}
	if o.texture != nil {
		o.texture.Release()
		o.texture = nil
	}
	o.ctx = nil
	o.count = 0
}
