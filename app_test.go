package demos

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/webgpu-demos/internal/config"
	"github.com/gekko3d/webgpu-demos/internal/demo"
	"github.com/gekko3d/webgpu-demos/internal/gpu"
	"github.com/gekko3d/webgpu-demos/internal/overlay"
	"github.com/gekko3d/webgpu-demos/internal/route"
	"github.com/gekko3d/webgpu-demos/internal/surface"
)

type mockDemo struct {
	path     string
	env      demo.Env
	initErr  error
	redraws  []surface.Size
	released bool
}

func (d *mockDemo) Init(env demo.Env) error {
	d.env = env
	return d.initErr
}

func (d *mockDemo) Redraw(size surface.Size) error {
	d.redraws = append(d.redraws, size)
	return nil
}

func (d *mockDemo) Context() *gpu.Context { return nil }
func (d *mockDemo) Release()              { d.released = true }

type mockFactory struct {
	built   []*mockDemo
	failing map[string]bool
}

func (f *mockFactory) New(path string) (demo.Demo, error) {
	d := &mockDemo{path: path}
	if f.failing[path] {
		d.initErr = errors.New("boom")
	}
	f.built = append(f.built, d)
	return d, nil
}

func (f *mockFactory) last() *mockDemo {
	return f.built[len(f.built)-1]
}

func newTestApp(t *testing.T) (*App, *mockFactory) {
	t.Helper()
	app, err := NewAppBuilder(config.Default()).
		UseModule(TimeModule{}).
		Build()
	require.NoError(t, err)

	f := &mockFactory{failing: map[string]bool{}}
	app.newDemo = f.New
	return app, f
}

func TestBuild_RejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Route = "nope"
	_, err := NewAppBuilder(cfg).Build()
	assert.ErrorIs(t, err, route.ErrUnknownRoute)

	cfg = config.Default()
	cfg.Render.SampleCount = 2
	_, err = NewAppBuilder(cfg).Build()
	assert.ErrorIs(t, err, config.ErrInvalid)
}

type failingModule struct{}

func (failingModule) Install(*App) error { return errors.New("no display") }

func TestBuild_ModuleError(t *testing.T) {
	_, err := NewAppBuilder(config.Default()).UseModule(failingModule{}).Build()
	assert.ErrorContains(t, err, "no display")
}

func TestApp_SwitchRedrawsOnce(t *testing.T) {
	app, f := newTestApp(t)

	require.NoError(t, app.Switch("/#/uniforms"))
	d := f.last()
	assert.Equal(t, "uniforms", d.path)
	assert.Equal(t, []surface.Size{{Width: 800, Height: 600}}, d.redraws)
	assert.Equal(t, 100, d.env.Instances)
	assert.Equal(t, uint32(4), d.env.Samples)
	assert.Equal(t, 1.0, d.env.Clear.A)

	app.Resize(800, 600)
	assert.Len(t, d.redraws, 1, "unchanged size must not redraw")

	app.Resize(1024, 0)
	assert.Equal(t, surface.Size{Width: 1024, Height: 1}, d.redraws[1])

	app.Resize(100000, 50)
	assert.Equal(t, surface.Size{Width: DefaultTextureLimit, Height: 50}, d.redraws[2])
	assert.Equal(t, 3, app.time.Redraws)
}

func TestApp_SwitchReleasesPrevious(t *testing.T) {
	app, f := newTestApp(t)

	require.NoError(t, app.Switch("triangle"))
	first := f.last()
	require.NoError(t, app.Next())
	second := f.last()

	assert.True(t, first.released)
	assert.False(t, second.released)
	assert.Equal(t, "computed", second.path)
	assert.Equal(t, "computed", app.Route().Path)

	require.NoError(t, app.Prev())
	require.NoError(t, app.Prev())
	assert.Equal(t, "vertex", app.Route().Path)

	app.Close()
	assert.True(t, f.last().released)
	assert.Nil(t, app.Current())
}

func TestApp_InitFailureLeavesNoDemo(t *testing.T) {
	app, f := newTestApp(t)
	f.failing["storage"] = true

	err := app.Switch("storage")
	assert.ErrorContains(t, err, "init storage")
	assert.True(t, f.last().released)
	assert.Nil(t, app.Current())

	app.Resize(10, 10)
	assert.Empty(t, f.last().redraws)

	require.NoError(t, app.Switch("vertex"))
	assert.NotNil(t, app.Current())
}

func TestApp_BeginFailureKeepsAppUsable(t *testing.T) {
	app, f := newTestApp(t)
	f.failing["triangle"] = true

	app.begin()
	assert.Nil(t, app.Current())
	assert.True(t, f.last().released)
	assert.Equal(t, "triangle", app.Route().Path)

	assert.True(t, app.Dispatch(ActionSelect, 3))
	require.NotNil(t, app.Current())
	assert.Equal(t, "uniforms", f.last().path)
	assert.Len(t, f.last().redraws, 1)
}

func TestApp_Dispatch(t *testing.T) {
	app, f := newTestApp(t)
	require.NoError(t, app.Switch("triangle"))

	assert.True(t, app.Dispatch(ActionFor(glfw.Key8)))
	assert.Equal(t, "vertex", f.last().path)

	assert.False(t, app.Dispatch(ActionSelect, 8), "no ninth route")
	assert.Equal(t, "vertex", app.Route().Path)

	assert.True(t, app.Dispatch(ActionNext, 0))
	assert.Equal(t, "triangle", app.Route().Path)

	assert.False(t, app.Dispatch(ActionNone, 0))
	assert.True(t, app.Dispatch(ActionQuit, 0))
}

func TestApp_ToggleOverlayRedraws(t *testing.T) {
	app, f := newTestApp(t)
	o, err := overlay.New(12)
	require.NoError(t, err)
	app.overlay = o

	require.NoError(t, app.Switch("stage"))
	d := f.last()
	assert.Same(t, o, d.env.Layer)
	require.Len(t, o.Items(), 8)

	app.ToggleOverlay()
	assert.False(t, o.Visible())
	assert.Len(t, d.redraws, 2)
	assert.Equal(t, d.redraws[0], d.redraws[1])
}

func TestTime_Average(t *testing.T) {
	now := time.Unix(0, 0)
	tm := &Time{now: func() time.Time { return now }}
	assert.Zero(t, tm.Average())

	tm.begin()
	now = now.Add(10 * time.Millisecond)
	tm.end()
	tm.begin()
	now = now.Add(30 * time.Millisecond)
	tm.end()

	assert.Equal(t, 2, tm.Redraws)
	assert.Equal(t, 30*time.Millisecond, tm.Last)
	assert.Equal(t, 20*time.Millisecond, tm.Average())

	var missing *Time
	missing.begin()
	missing.end()
	assert.Zero(t, missing.Average())
}
