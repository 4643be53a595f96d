package layout

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_LiteralTables(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		fields  []Field
		stride  uint64
		offsets map[string]uint64
		padding uint64
	}{
		{
			name:    "storage color+offset",
			rule:    HostShareable,
			fields:  []Field{F32("color", 4), F32("offset", 2)},
			stride:  32,
			offsets: map[string]uint64{"color": 0, "offset": 16},
			padding: 8,
		},
		{
			name:    "storage scale",
			rule:    HostShareable,
			fields:  []Field{F32("scale", 2)},
			stride:  8,
			offsets: map[string]uint64{"scale": 0},
		},
		{
			name:    "uniform color+scale+offset needs no padding",
			rule:    HostShareable,
			fields:  []Field{F32("color", 4), F32("scale", 2), F32("offset", 2)},
			stride:  32,
			offsets: map[string]uint64{"color": 0, "scale": 16, "offset": 24},
		},
		{
			name:    "vertex position+color",
			rule:    Packed,
			fields:  []Field{F32("position", 2), F32("perVertexColor", 3)},
			stride:  20,
			offsets: map[string]uint64{"position": 0, "perVertexColor": 8},
		},
		{
			name:    "instance color+offset",
			rule:    Packed,
			fields:  []Field{F32("color", 4), F32("offset", 2)},
			stride:  24,
			offsets: map[string]uint64{"color": 0, "offset": 16},
		},
		{
			name:    "vec3 followed by scalar shares the slot",
			rule:    HostShareable,
			fields:  []Field{F32("dir", 3), F32("intensity", 1)},
			stride:  16,
			offsets: map[string]uint64{"dir": 0, "intensity": 12},
		},
		{
			name:    "scalar followed by vec3 is pushed to 16",
			rule:    HostShareable,
			fields:  []Field{F32("intensity", 1), F32("dir", 3)},
			stride:  32,
			offsets: map[string]uint64{"intensity": 0, "dir": 16},
			padding: 16,
		},
		{
			name:    "scalar followed by vec2",
			rule:    HostShareable,
			fields:  []Field{F32("a", 1), F32("b", 2)},
			stride:  16,
			offsets: map[string]uint64{"a": 0, "b": 8},
			padding: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Compute(tt.rule, tt.fields...)
			require.NoError(t, err)
			assert.Equal(t, tt.stride, l.Stride)
			assert.Equal(t, tt.offsets, l.Offsets())
			assert.Equal(t, tt.padding, l.Padding())
		})
	}
}

func TestCompute_StrideIsMultipleOfAlignment(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		fields := randomSchema(rng)
		for _, rule := range []Rule{Packed, HostShareable} {
			l, err := Compute(rule, fields...)
			require.NoError(t, err)
			assert.Zero(t, l.Stride%l.Align, "schema %v rule %s", fields, rule)
			for _, p := range l.Fields {
				assert.Zero(t, p.Offset%fieldAlign(rule, p.Field), "field %s misaligned", p.Name)
			}
		}
	}
}

func TestCompute_FieldsNeverOverlap(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		fields := randomSchema(rng)
		for _, rule := range []Rule{Packed, HostShareable} {
			l, err := Compute(rule, fields...)
			require.NoError(t, err)
			for a := range l.Fields {
				for b := a + 1; b < len(l.Fields); b++ {
					pa, pb := l.Fields[a], l.Fields[b]
					overlap := pa.Offset < pb.End() && pb.Offset < pa.End()
					assert.False(t, overlap, "%s and %s overlap in %s", pa.Name, pb.Name, l)
				}
				assert.LessOrEqual(t, l.Fields[a].End(), l.Stride)
			}
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	fields := []Field{F32("color", 4), F32("offset", 2)}
	a := MustCompute(HostShareable, fields...)
	b := MustCompute(HostShareable, fields...)
	assert.Equal(t, a.Stride, b.Stride)
	assert.Equal(t, a.Offsets(), b.Offsets())
}

func TestCompute_InvalidSchemas(t *testing.T) {
	cases := map[string][]Field{
		"no fields":  nil,
		"empty name": {F32("", 2)},
		"zero count": {F32("a", 0)},
		"too wide":   {F32("a", 5)},
		"zero width": {{Name: "a", Count: 2}},
		"duplicate":  {F32("a", 2), F32("a", 1)},
		"blank name": {F32("  ", 1)},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Compute(HostShareable, fields...)
			assert.ErrorIs(t, err, ErrInvalidSchema)
		})
	}

	assert.Panics(t, func() { MustCompute(Packed) })
}

func TestLayout_OffsetUnknownFieldPanics(t *testing.T) {
	l := MustCompute(Packed, F32("a", 1))
	assert.PanicsWithValue(t, `layout: no field "b"`, func() { l.Offset("b") })

	_, ok := l.Lookup("b")
	assert.False(t, ok)
}

type instanceRecord struct {
	Color  mgl32.Vec4 `layout:"color"`
	Offset mgl32.Vec2 `layout:"offset"`
	Scale  float32
	Ignore mgl32.Vec3 `layout:"-"`
	hidden float32
}

type badRecord struct {
	Index int32
}

func TestOf_StructFields(t *testing.T) {
	l, err := Of[instanceRecord](HostShareable)
	require.NoError(t, err)
	assert.Equal(t, map[string]uint64{"color": 0, "offset": 16, "Scale": 24}, l.Offsets())
	assert.Equal(t, uint64(32), l.Stride)

	packed := MustOf[instanceRecord](Packed)
	assert.Equal(t, uint64(28), packed.Stride)

	_, err = Of[badRecord](Packed)
	assert.ErrorIs(t, err, ErrInvalidSchema)

	_, err = Of[int](Packed)
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func randomSchema(rng *rand.Rand) []Field {
	n := 1 + rng.IntN(6)
	fields := make([]Field, n)
	for i := range fields {
		fields[i] = F32(string(rune('a'+i)), 1+rng.IntN(4))
	}
	return fields
}
