// Package scene generates the randomized objects the instancing demos draw
// and writes them into record buffers by role.
package scene

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Field names shared by the demo record layouts and their shaders.
const (
	FieldColor       = "color"
	FieldOffset      = "offset"
	FieldScale       = "scale"
	FieldPosition    = "position"
	FieldVertexColor = "perVertexColor"
)

// Role partitions record fields by how often they are written.
type Role int

const (
	// Static fields are written once at demo init.
	Static Role = iota
	// Changing fields are rewritten on every redraw.
	Changing
)

func (r Role) String() string {
	if r == Changing {
		return "changing"
	}
	return "static"
}

// Triangle is the clip-space triangle every demo draws.
var Triangle = [3]mgl32.Vec2{
	{0.0, 0.5},
	{-0.5, -0.5},
	{0.5, -0.5},
}

// Rand draws floats in half-open ranges from a seeded source.
type Rand struct {
	r *rand.Rand
}

// NewRand seeds a generator; equal seeds give equal scenes.
func NewRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Unit returns a value in [0, 1).
func (r *Rand) Unit() float32 {
	return r.r.Float32()
}

// Range returns a value in [lo, hi).
func (r *Rand) Range(lo, hi float32) float32 {
	return lo + r.r.Float32()*(hi-lo)
}

// Object is one instance: a colored triangle placed and scaled in clip space.
type Object struct {
	Color       mgl32.Vec4
	Offset      mgl32.Vec2
	Scale       float32
	Vertices    [3]mgl32.Vec2
	VertexColor mgl32.Vec3
}

// Generate creates n objects. The instance count is a caller-supplied
// constant and is not checked against any device limit.
func Generate(n int, r *Rand) []Object {
	objects := make([]Object, n)
	for i := range objects {
		o := &objects[i]
		o.Color = mgl32.Vec4{r.Unit(), r.Unit(), r.Unit(), 1}
		o.Offset = mgl32.Vec2{r.Range(-0.9, 0.9), r.Range(-0.9, 0.9)}
		for v := range o.Vertices {
			o.Vertices[v] = mgl32.Vec2{r.Range(-0.9, 0.9), r.Range(-0.9, 0.9)}
		}
		o.VertexColor = mgl32.Vec3{r.Unit(), r.Unit(), r.Unit()}
		o.Scale = r.Range(0.2, 0.5)
	}
	return objects
}
