// Package surface tracks the drawing surface size and decides when a demo
// has to redraw.
package surface

// Clamp bounds a measured dimension to what the device can render into:
// max(1, min(measured, limit)).
func Clamp(measured, limit int) int {
	return max(1, min(measured, limit))
}

// Size is a backing resolution in pixels.
type Size struct {
	Width  int
	Height int
}

// Aspect is width over height of the backing resolution.
func (s Size) Aspect() float32 {
	if s.Height == 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// Resizer clamps observed sizes and triggers one redraw per change.
// Calls are expected from a single goroutine; each callback runs to
// completion before Observe returns.
type Resizer struct {
	limit    int
	redraw   func(Size)
	current  Size
	observed bool
}

// NewResizer creates a Resizer bounded by the device's maximum 2D texture
// dimension. redraw may be nil.
func NewResizer(limit int, redraw func(Size)) *Resizer {
	return &Resizer{limit: limit, redraw: redraw}
}

// OnResize clamps a measured size without touching the tracked state.
func (r *Resizer) OnResize(width, height int) (int, int) {
	return Clamp(width, r.limit), Clamp(height, r.limit)
}

// Observe records a measured size. The first observation and every later
// change of the clamped size invoke redraw exactly once.
func (r *Resizer) Observe(width, height int) (Size, bool) {
	w, h := r.OnResize(width, height)
	next := Size{Width: w, Height: h}
	if r.observed && next == r.current {
		return next, false
	}
	r.current = next
	r.observed = true
	if r.redraw != nil {
		r.redraw(next)
	}
	return next, true
}

// Current is the last clamped size.
func (r *Resizer) Current() Size {
	return r.current
}

// Limit is the clamp ceiling.
func (r *Resizer) Limit() int {
	return r.limit
}

// SetRedraw swaps the redraw callback, e.g. when the router switches demos.
func (r *Resizer) SetRedraw(redraw func(Size)) {
	r.redraw = redraw
}

// Reset forgets the tracked size so the next Observe always redraws.
func (r *Resizer) Reset() {
	r.observed = false
}
