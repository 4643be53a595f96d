package layout

import (
	"fmt"
	"unsafe"
)

// Buffer is the host copy of an array of records. It is allocated once with a
// fixed record count and never grows.
type Buffer struct {
	layout Layout
	count  int
	data   []float32
}

// NewBuffer allocates count zeroed records of l. Every field of l must be
// made of float32 elements.
func NewBuffer(l Layout, count int) *Buffer {
	for _, p := range l.Fields {
		if p.Width != Float32 {
			panic(fmt.Sprintf("layout: field %q is not float32", p.Name))
		}
	}
	if count < 0 {
		panic("layout: negative record count")
	}
	return &Buffer{
		layout: l,
		count:  count,
		data:   make([]float32, l.Words()*count),
	}
}

func (b *Buffer) Layout() Layout { return b.layout }

// Len is the number of records.
func (b *Buffer) Len() int { return b.count }

// Size is the byte size of all records.
func (b *Buffer) Size() uint64 { return b.layout.Stride * uint64(b.count) }

func (b *Buffer) slot(instance int, name string) (int, int) {
	p, ok := b.layout.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("layout: no field %q", name))
	}
	base := instance*b.layout.Words() + int(p.Offset/Float32)
	return base, p.Count
}

// Set writes values into the named field of one record. Writing more values
// than the field holds panics; fewer leaves the tail untouched.
func (b *Buffer) Set(instance int, name string, values ...float32) {
	base, n := b.slot(instance, name)
	if len(values) > n {
		panic(fmt.Sprintf("layout: %d values for field %q of %d elements", len(values), name, n))
	}
	copy(b.data[base:base+n], values)
}

// Get returns a copy of the named field of one record.
func (b *Buffer) Get(instance int, name string) []float32 {
	base, n := b.slot(instance, name)
	out := make([]float32, n)
	copy(out, b.data[base:base+n])
	return out
}

// Floats exposes the backing array.
func (b *Buffer) Floats() []float32 { return b.data }

// Bytes views the whole array as bytes for a queue write.
func (b *Buffer) Bytes() []byte {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.data[0])), len(b.data)*int(Float32))
}

// RecordBytes views a single record as bytes.
func (b *Buffer) RecordBytes(instance int) []byte {
	stride := int(b.layout.Stride)
	all := b.Bytes()
	return all[instance*stride : (instance+1)*stride]
}
