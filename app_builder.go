package demos

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/webgpu-demos/internal/config"
	"github.com/gekko3d/webgpu-demos/internal/demo"
)

// Module installs one concern into the app at build time.
type Module interface {
	Install(app *App) error
}

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder(cfg config.Config) *AppBuilder {
	return &AppBuilder{app: &App{
		cfg:     cfg,
		newDemo: demo.New,
	}}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build validates the configuration, creates the route table and installs
// every module in order.
func (b *AppBuilder) Build() (*App, error) {
	app := b.app
	if err := app.cfg.Validate(); err != nil {
		return nil, err
	}

	rgba, err := app.cfg.Render.Clear()
	if err != nil {
		return nil, err
	}
	app.clear = wgpu.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}

	if app.table, err = demo.Table(); err != nil {
		return nil, err
	}
	if _, err := app.table.Resolve(app.cfg.Route); err != nil {
		return nil, err
	}

	for _, module := range b.modules {
		if err := module.Install(app); err != nil {
			app.Close()
			return nil, fmt.Errorf("install %T: %w", module, err)
		}
	}
	return app, nil
}

// DefaultModules is the full desktop setup.
func DefaultModules(cfg config.Config) []Module {
	modules := []Module{
		LoggingModule{Prefix: "demos", Debug: cfg.Debug},
		TimeModule{},
		PlatformWindowModule{},
		InputModule{},
	}
	if cfg.Overlay {
		modules = append(modules, OverlayModule{})
	}
	return modules
}
