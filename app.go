// Package demos hosts the WebGPU demos in a desktop window: it owns the
// router, the active demo and the resize-driven redraw.
package demos

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/webgpu-demos/internal/config"
	"github.com/gekko3d/webgpu-demos/internal/demo"
	"github.com/gekko3d/webgpu-demos/internal/overlay"
	"github.com/gekko3d/webgpu-demos/internal/route"
	"github.com/gekko3d/webgpu-demos/internal/surface"
)

// DefaultTextureLimit bounds the surface when the active demo has no device
// to ask.
const DefaultTextureLimit = 8192

// App is the demo host. Everything runs on the main goroutine.
type App struct {
	cfg     config.Config
	log     Logger
	window  *Window
	table   *route.Table
	overlay *overlay.Overlay
	time    *Time
	clear   wgpu.Color

	newDemo func(path string) (demo.Demo, error)
	current demo.Demo
	resizer *surface.Resizer
}

// Config is the configuration the app was built with.
func (app *App) Config() config.Config {
	return app.cfg
}

// Routes lists the navigation table.
func (app *App) Routes() []route.Route {
	return app.table.Routes()
}

// Route is the current route.
func (app *App) Route() route.Route {
	return app.table.Current()
}

// Current is the active demo, nil when none initialized.
func (app *App) Current() demo.Demo {
	return app.current
}

func (app *App) env(r route.Route) demo.Env {
	env := demo.Env{
		Log:       app.demoLogger(r.Path),
		Instances: app.cfg.Render.Instances,
		Seed:      app.cfg.Render.Seed,
		Clear:     app.clear,
		Samples:   app.cfg.Render.SampleCount,
		Checker:   app.cfg.Render.Checker,
		Validate:  app.cfg.ValidateShaders,
	}
	if app.window != nil {
		env.Window = app.window.glfw
	}
	if app.overlay != nil {
		env.Layer = app.overlay
	}
	return env
}

// Switch tears down the active demo and starts the one at path. The new
// demo is drawn once immediately at the current framebuffer size.
func (app *App) Switch(path string) error {
	r, err := app.table.Navigate(path)
	if err != nil {
		return err
	}
	return app.start(r)
}

// Select switches to the i-th route, counting from zero.
func (app *App) Select(i int) error {
	r, ok := app.table.ByIndex(i)
	if !ok {
		return fmt.Errorf("%w: index %d", route.ErrUnknownRoute, i)
	}
	return app.Switch(r.Path)
}

// Next and Prev cycle through the routes.
func (app *App) Next() error { return app.start(app.table.Next()) }
func (app *App) Prev() error { return app.start(app.table.Prev()) }

func (app *App) start(r route.Route) error {
	app.stop()
	if app.overlay != nil {
		app.overlay.Navigation(app.table.Routes(), r)
	}
	if app.window != nil {
		app.window.SetTitle(app.cfg.Window.Title + " - " + r.Title)
	}

	d, err := app.newDemo(r.Path)
	if err != nil {
		return err
	}
	app.Logger().Infof("starting %s (%s)", r.Title, r.URL())
	if err := d.Init(app.env(r)); err != nil {
		d.Release()
		return fmt.Errorf("init %s: %w", r.Path, err)
	}
	app.current = d

	limit := DefaultTextureLimit
	if ctx := d.Context(); ctx != nil && ctx.MaxTextureDimension2D > 0 {
		limit = ctx.MaxTextureDimension2D
	}
	app.resizer = surface.NewResizer(limit, app.redraw)
	app.observe()
	return nil
}

func (app *App) stop() {
	if app.current == nil {
		return
	}
	app.current.Release()
	app.current = nil
	app.resizer = nil
}

func (app *App) observe() {
	if app.resizer == nil {
		return
	}
	w, h := app.cfg.Window.Width, app.cfg.Window.Height
	if app.window != nil {
		w, h = app.window.FramebufferSize()
	}
	app.resizer.Observe(w, h)
}

func (app *App) redraw(size surface.Size) {
	if app.current == nil {
		return
	}
	app.time.begin()
	err := app.current.Redraw(size)
	app.time.end()
	if err != nil {
		app.Logger().Errorf("redraw %s at %dx%d: %v", app.Route().Path, size.Width, size.Height, err)
		return
	}
	if app.time != nil {
		app.Logger().Debugf("redraw %s at %dx%d took %s", app.Route().Path, size.Width, size.Height, app.time.Last)
	}
}

// Resize is the framebuffer size callback.
func (app *App) Resize(width, height int) {
	if app.resizer == nil {
		return
	}
	app.resizer.Observe(width, height)
}

// Refresh forces one redraw at the current size.
func (app *App) Refresh() {
	if app.resizer == nil {
		return
	}
	app.resizer.Reset()
	app.observe()
}

// ToggleOverlay shows or hides the navigation text.
func (app *App) ToggleOverlay() {
	if app.overlay == nil {
		return
	}
	app.Logger().Debugf("overlay visible: %v", app.overlay.Toggle())
	app.Refresh()
}

// begin starts the configured route. A failure is logged and leaves the
// app without a demo; another route can still be picked from the keyboard.
func (app *App) begin() {
	if err := app.Switch(app.cfg.Route); err != nil {
		app.Logger().Errorf("start %s: %v", app.cfg.Route, err)
	}
}

// Run starts the configured route and blocks until the window closes.
func (app *App) Run() error {
	if app.window == nil {
		return errors.New("run: no window installed")
	}
	defer app.Close()

	app.begin()
	for !app.window.ShouldClose() {
		glfw.WaitEvents()
	}
	return nil
}

// Close releases the active demo and the window.
func (app *App) Close() {
	app.stop()
	if app.overlay != nil {
		app.overlay.Detach()
	}
	if app.window != nil {
		app.window.Destroy()
		app.window = nil
	}
}
