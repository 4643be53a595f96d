package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/webgpu-demos/internal/layout"
)

// WriteStatic writes the color and offset of every object once.
func WriteStatic(buf *layout.Buffer, objects []Object) {
	for i, o := range objects {
		buf.Set(i, FieldColor, o.Color[:]...)
		buf.Set(i, FieldOffset, o.Offset[:]...)
	}
}

// WriteObjectVertices writes each object's three corner positions into a
// buffer with one position record per vertex.
func WriteObjectVertices(buf *layout.Buffer, objects []Object) {
	for i, o := range objects {
		for v, p := range o.Vertices {
			buf.Set(i*len(o.Vertices)+v, FieldPosition, p[:]...)
		}
	}
}

// WriteTriangle writes the shared triangle with one color per corner.
func WriteTriangle(buf *layout.Buffer, colors [3]mgl32.Vec3) {
	for v, p := range Triangle {
		buf.Set(v, FieldPosition, p[:]...)
		buf.Set(v, FieldVertexColor, colors[v][:]...)
	}
}

// ChangingWriter rewrites the aspect-dependent scale of each instance. It
// only ever touches the scale field, so static fields sharing the same
// record stay intact.
type ChangingWriter struct {
	buf    *layout.Buffer
	scales []float32
}

// NewChangingWriter remembers each object's base scale.
func NewChangingWriter(buf *layout.Buffer, objects []Object) *ChangingWriter {
	scales := make([]float32, len(objects))
	for i, o := range objects {
		scales[i] = o.Scale
	}
	return &ChangingWriter{buf: buf, scales: scales}
}

// Write stores [scale/aspect, scale] for one instance. An instance index
// outside the buffer is a caller bug and panics.
func (w *ChangingWriter) Write(aspect float32, instance int) {
	s := w.scales[instance]
	w.buf.Set(instance, FieldScale, s/aspect, s)
}

// WriteAll rewrites every instance.
func (w *ChangingWriter) WriteAll(aspect float32) {
	for i := range w.scales {
		w.Write(aspect, i)
	}
}

// Buffer is the buffer being written.
func (w *ChangingWriter) Buffer() *layout.Buffer {
	return w.buf
}
