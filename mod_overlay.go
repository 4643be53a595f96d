package demos

import (
	"github.com/gekko3d/webgpu-demos/internal/overlay"
)

// OverlayModule draws the route list over every demo.
type OverlayModule struct {
	// FontSize in points, 16 when zero.
	FontSize float64
}

func (m OverlayModule) Install(app *App) error {
	size := m.FontSize
	if size <= 0 {
		size = 16
	}
	o, err := overlay.New(size)
	if err != nil {
		return err
	}
	app.overlay = o
	return nil
}
