package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	const limit = 8192
	for _, x := range []int{-100, -1, 0, 1, 2, 500, limit - 1, limit, limit + 1, 1 << 20} {
		want := x
		if want > limit {
			want = limit
		}
		if want < 1 {
			want = 1
		}
		assert.Equal(t, want, Clamp(x, limit), "Clamp(%d)", x)
	}
}

func TestResizer_RedrawsOncePerChange(t *testing.T) {
	var calls []Size
	r := NewResizer(4096, func(s Size) { calls = append(calls, s) })

	s, changed := r.Observe(800, 600)
	require.True(t, changed)
	assert.Equal(t, Size{800, 600}, s)

	_, changed = r.Observe(800, 600)
	assert.False(t, changed)

	_, changed = r.Observe(1024, 600)
	assert.True(t, changed)

	// both measurements clamp to the same backing size
	_, changed = r.Observe(5000, 600)
	assert.True(t, changed)
	_, changed = r.Observe(6000, 600)
	assert.False(t, changed)

	assert.Equal(t, []Size{{800, 600}, {1024, 600}, {4096, 600}}, calls)
	assert.Equal(t, Size{4096, 600}, r.Current())
}

func TestResizer_MinimizedWindow(t *testing.T) {
	r := NewResizer(4096, nil)
	s, changed := r.Observe(0, 0)
	assert.True(t, changed)
	assert.Equal(t, Size{1, 1}, s)
	assert.Equal(t, float32(1), s.Aspect())
}

func TestResizer_ResetAndSwap(t *testing.T) {
	first, second := 0, 0
	r := NewResizer(4096, func(Size) { first++ })
	r.Observe(100, 100)

	r.SetRedraw(func(Size) { second++ })
	r.Reset()
	r.Observe(100, 100)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestSize_Aspect(t *testing.T) {
	assert.InDelta(t, 2.0, Size{200, 100}.Aspect(), 1e-6)
	assert.Equal(t, float32(1), Size{}.Aspect())
}
