package demos

import (
	"testing"

	"github.com/gekko3d/webgpu-demos/internal/config"
)

type MockModule struct {
	installed int
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App) error {
	m.installed++
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
	return nil
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder(config.Default())
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
}

func TestAppBuilder_Build_InstallsInOrder(t *testing.T) {
	var order []string
	first := &MockModule{order: &order, name: "first"}
	second := &MockModule{order: &order, name: "second"}

	app, err := NewAppBuilder(config.Default()).UseModule(first, second).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if first.installed != 1 || second.installed != 1 {
		t.Errorf("Expected each module installed once, got %d and %d", first.installed, second.installed)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected install order [first second], got %v", order)
	}
	if app.table.Len() != 8 {
		t.Errorf("Expected 8 routes, got %d", app.table.Len())
	}
}

func TestAppBuilder_Build_ClearColor(t *testing.T) {
	cfg := config.Default()
	cfg.Render.ClearColor = "white"

	app, err := NewAppBuilder(cfg).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if app.clear.R != 1 || app.clear.G != 1 || app.clear.B != 1 || app.clear.A != 1 {
		t.Errorf("Expected white clear color, got %+v", app.clear)
	}
}

func TestDefaultModules(t *testing.T) {
	cfg := config.Default()
	if n := len(DefaultModules(cfg)); n != 5 {
		t.Errorf("Expected 5 modules with overlay, got %d", n)
	}
	cfg.Overlay = false
	if n := len(DefaultModules(cfg)); n != 4 {
		t.Errorf("Expected 4 modules without overlay, got %d", n)
	}
}
