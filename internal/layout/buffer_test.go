package layout

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_SetGet(t *testing.T) {
	l := MustCompute(HostShareable, F32("color", 4), F32("offset", 2))
	buf := NewBuffer(l, 3)

	require.Equal(t, 3, buf.Len())
	require.Equal(t, uint64(96), buf.Size())
	require.Len(t, buf.Bytes(), 96)

	buf.Set(1, "color", 0.1, 0.2, 0.3, 1)
	buf.Set(1, "offset", -0.5, 0.5)

	assert.Equal(t, []float32{0.1, 0.2, 0.3, 1}, buf.Get(1, "color"))
	assert.Equal(t, []float32{-0.5, 0.5}, buf.Get(1, "offset"))
	assert.Equal(t, []float32{0, 0, 0, 0}, buf.Get(0, "color"))
	assert.Equal(t, []float32{0, 0}, buf.Get(2, "offset"))

	// offset of record 1 lives at byte 32+16
	raw := buf.Bytes()
	assert.Equal(t, float32(-0.5), math.Float32frombits(binary.LittleEndian.Uint32(raw[48:52])))

	rec := buf.RecordBytes(1)
	assert.Len(t, rec, 32)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(rec[12:16])))
}

func TestBuffer_PaddingStaysZero(t *testing.T) {
	l := MustCompute(HostShareable, F32("color", 4), F32("offset", 2))
	buf := NewBuffer(l, 2)
	for i := 0; i < buf.Len(); i++ {
		buf.Set(i, "color", 1, 1, 1, 1)
		buf.Set(i, "offset", 1, 1)
	}
	floats := buf.Floats()
	for i := 0; i < buf.Len(); i++ {
		assert.Equal(t, []float32{0, 0}, floats[i*8+6:i*8+8])
	}
}

func TestBuffer_PartialSetKeepsTail(t *testing.T) {
	buf := NewBuffer(MustCompute(Packed, F32("color", 4)), 1)
	buf.Set(0, "color", 1, 1, 1, 1)
	buf.Set(0, "color", 0.5)
	assert.Equal(t, []float32{0.5, 1, 1, 1}, buf.Get(0, "color"))
}

func TestBuffer_ContractViolations(t *testing.T) {
	buf := NewBuffer(MustCompute(Packed, F32("scale", 2)), 1)

	assert.Panics(t, func() { buf.Set(0, "scale", 1, 2, 3) })
	assert.Panics(t, func() { buf.Set(0, "missing", 1) })
	assert.Panics(t, func() { buf.Set(1, "scale", 1, 2) })

	wide := MustCompute(Packed, Field{Name: "d", Count: 1, Width: 8})
	assert.Panics(t, func() { NewBuffer(wide, 1) })
}

func TestBuffer_Empty(t *testing.T) {
	buf := NewBuffer(MustCompute(Packed, F32("scale", 2)), 0)
	assert.Nil(t, buf.Bytes())
	assert.Zero(t, buf.Size())
}
