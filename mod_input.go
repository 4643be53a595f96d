package demos

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is what a key press asks the host to do.
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionNext
	ActionPrev
	ActionToggleOverlay
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionNext:
		return "next"
	case ActionPrev:
		return "prev"
	case ActionToggleOverlay:
		return "toggle-overlay"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

var keyToRoute = map[glfw.Key]int{
	glfw.Key1: 0,
	glfw.Key2: 1,
	glfw.Key3: 2,
	glfw.Key4: 3,
	glfw.Key5: 4,
	glfw.Key6: 5,
	glfw.Key7: 6,
	glfw.Key8: 7,
	glfw.Key9: 8,

	glfw.KeyKP1: 0,
	glfw.KeyKP2: 1,
	glfw.KeyKP3: 2,
	glfw.KeyKP4: 3,
	glfw.KeyKP5: 4,
	glfw.KeyKP6: 5,
	glfw.KeyKP7: 6,
	glfw.KeyKP8: 7,
	glfw.KeyKP9: 8,
}

// ActionFor maps a key to an action. For ActionSelect the route index is
// returned as well.
func ActionFor(key glfw.Key) (Action, int) {
	if i, ok := keyToRoute[key]; ok {
		return ActionSelect, i
	}
	switch key {
	case glfw.KeyRight:
		return ActionNext, 0
	case glfw.KeyLeft:
		return ActionPrev, 0
	case glfw.KeyH:
		return ActionToggleOverlay, 0
	case glfw.KeyEscape:
		return ActionQuit, 0
	}
	return ActionNone, 0
}

// Dispatch performs an action on the app. Route changes that fail are
// logged; the app stays usable and another route can be picked.
func (app *App) Dispatch(action Action, index int) bool {
	var err error
	switch action {
	case ActionSelect:
		if index >= app.table.Len() {
			return false
		}
		err = app.Select(index)
	case ActionNext:
		err = app.Next()
	case ActionPrev:
		err = app.Prev()
	case ActionToggleOverlay:
		app.ToggleOverlay()
	case ActionQuit:
		if app.window != nil {
			app.window.glfw.SetShouldClose(true)
		}
	default:
		return false
	}
	if err != nil {
		app.Logger().Errorf("%s: %v", action, err)
	}
	return true
}

// InputModule routes key presses to Dispatch.
type InputModule struct{}

func (mod InputModule) Install(app *App) error {
	if app.window == nil {
		return nil
	}
	app.window.glfw.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		app.Dispatch(ActionFor(key))
	})
	return nil
}
