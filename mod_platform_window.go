package demos

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is the single GLFW window every demo renders into.
type Window struct {
	glfw   *glfw.Window
	Width  int
	Height int
	Title  string
}

func createWindow(width int, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // WebGPU drives the surface, not OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	return &Window{
		glfw:   win,
		Width:  width,
		Height: height,
		Title:  title,
	}, nil
}

func (w *Window) FramebufferSize() (int, int) {
	return w.glfw.GetFramebufferSize()
}

func (w *Window) ShouldClose() bool {
	return w.glfw.ShouldClose()
}

func (w *Window) SetTitle(title string) {
	w.glfw.SetTitle(title)
}

func (w *Window) Destroy() {
	w.glfw.Destroy()
	glfw.Terminate()
}

// PlatformWindowModule creates the window and routes framebuffer size
// changes to the app. Zero fields are filled from the app configuration at
// install. The caller must hold the main OS thread.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func (m PlatformWindowModule) Install(app *App) error {
	if app.window != nil {
		return errors.New("window already installed")
	}
	if m.Width <= 0 {
		m.Width = app.cfg.Window.Width
	}
	if m.Height <= 0 {
		m.Height = app.cfg.Window.Height
	}
	if m.Title == "" {
		m.Title = app.cfg.Window.Title
	}

	w, err := createWindow(m.Width, m.Height, m.Title)
	if err != nil {
		return err
	}
	app.window = w

	w.glfw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		app.Resize(width, height)
	})
	return nil
}
