// Package gpu owns the WebGPU objects of one demo: instance, surface,
// adapter, device and queue, plus the small helpers every demo repeats.
package gpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/google/uuid"

	"github.com/gekko3d/webgpu-demos/internal/shaders"
)

// ErrNoAdapter is returned when the platform exposes no usable GPU.
var ErrNoAdapter = errors.New("gpu: no compatible adapter")

// Options configure context creation.
type Options struct {
	Label string
	// Validate compiles WGSL with naga before handing it to the device.
	Validate bool
}

// Context is everything one demo needs to talk to the GPU. It is created
// once per demo and released when the demo is torn down.
type Context struct {
	ID       uuid.UUID
	Label    string
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Config   *wgpu.SurfaceConfiguration

	// MaxTextureDimension2D bounds the backing resolution of the surface.
	MaxTextureDimension2D int

	validate bool
}

// Init acquires adapter and device for window and configures its surface to
// the current framebuffer size.
func Init(window *glfw.Window, opts Options) (*Context, error) {
	c := newContext(opts)
	c.Surface = c.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	if err := c.requestDevice(c.Surface); err != nil {
		c.Release()
		return nil, err
	}

	caps := c.Surface.GetCapabilities(c.Adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		c.Release()
		return nil, fmt.Errorf("%s: surface reports no formats", c.Label)
	}

	width, height := window.GetFramebufferSize()
	c.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	c.Surface.Configure(c.Adapter, c.Device, c.Config)
	return c, nil
}

// InitHeadless acquires adapter and device without a surface, for compute
// work that never presents.
func InitHeadless(opts Options) (*Context, error) {
	c := newContext(opts)
	if err := c.requestDevice(nil); err != nil {
		c.Release()
		return nil, err
	}
	return c, nil
}

func newContext(opts Options) *Context {
	id := uuid.New()
	label := opts.Label
	if label == "" {
		label = "demo"
	}
	return &Context{
		ID:       id,
		Label:    label + " " + id.String()[:8],
		Instance: wgpu.CreateInstance(nil),
		validate: opts.Validate,
	}
}

func (c *Context) requestDevice(surface *wgpu.Surface) error {
	adapter, err := c.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	if adapter == nil {
		return ErrNoAdapter
	}
	c.Adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: c.Label,
	})
	if err != nil {
		return fmt.Errorf("%s: request device: %w", c.Label, err)
	}
	c.Device = device
	c.Queue = device.GetQueue()

	limits := device.GetLimits()
	c.MaxTextureDimension2D = int(limits.Limits.MaxTextureDimension2D)
	return nil
}

// Probe reports whether the platform exposes a WebGPU adapter at all.
func Probe() bool {
	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil || adapter == nil {
		return false
	}
	adapter.Release()
	return true
}

// ProbeMessage is the one-line verdict shown to the user.
func ProbeMessage(supported bool) string {
	if supported {
		return "Great, your current platform supports WebGPU!"
	}
	return "Your current platform does not support WebGPU!"
}

// Format is the surface texture format pipelines must target.
func (c *Context) Format() wgpu.TextureFormat {
	if c.Config == nil {
		return wgpu.TextureFormatRGBA8Unorm
	}
	return c.Config.Format
}

// Size is the configured backing resolution.
func (c *Context) Size() (int, int) {
	if c.Config == nil {
		return 0, 0
	}
	return int(c.Config.Width), int(c.Config.Height)
}

// Resize reconfigures the surface. Callers clamp the size first.
func (c *Context) Resize(width, height int) {
	if c.Surface == nil || width <= 0 || height <= 0 {
		return
	}
	c.Config.Width = uint32(width)
	c.Config.Height = uint32(height)
	c.Surface.Configure(c.Adapter, c.Device, c.Config)
}

// ResourceLabel tags a GPU object with the owning context.
func (c *Context) ResourceLabel(name string) string {
	return name + " [" + c.Label + "]"
}

// ShaderModule compiles WGSL, checking it with naga first when validation
// is enabled.
func (c *Context) ShaderModule(name, source string) (*wgpu.ShaderModule, error) {
	if c.validate {
		if err := shaders.Validate(name, source); err != nil {
			return nil, err
		}
	}
	module, err := c.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          c.ResourceLabel(name),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}
	return module, nil
}

// Release frees everything in reverse creation order. Safe on a partially
// initialized context.
func (c *Context) Release() {
	if c == nil {
		return
	}
	if c.Queue != nil {
		c.Queue.Release()
		c.Queue = nil
	}
	if c.Device != nil {
		c.Device.Release()
		c.Device = nil
	}
	if c.Adapter != nil {
		c.Adapter.Release()
		c.Adapter = nil
	}
	if c.Surface != nil {
		c.Surface.Release()
		c.Surface = nil
	}
	if c.Instance != nil {
		c.Instance.Release()
		c.Instance = nil
	}
}
