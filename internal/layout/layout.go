// Package layout computes byte offsets and strides for flat records of
// 32-bit values shared with shaders, and keeps typed host copies of them.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSchema is returned when a schema cannot be laid out at all.
var ErrInvalidSchema = errors.New("layout: invalid schema")

// Float32 is the width of one f32 element in bytes.
const Float32 uint64 = 4

// Rule selects how fields are aligned inside a record.
type Rule int

const (
	// Packed aligns every field to its element width. This is what vertex
	// buffer attributes expect.
	Packed Rule = iota
	// HostShareable follows the WGSL uniform/storage rule: vec2 aligns to two
	// elements, vec3 and vec4 to four, and the stride is rounded up to the
	// largest field alignment.
	HostShareable
)

func (r Rule) String() string {
	switch r {
	case Packed:
		return "packed"
	case HostShareable:
		return "host-shareable"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// Field is one named member of a record.
type Field struct {
	Name  string
	Count int    // number of elements, 1..4
	Width uint64 // bytes per element
}

// F32 is shorthand for a field of count float32 elements.
func F32(name string, count int) Field {
	return Field{Name: name, Count: count, Width: Float32}
}

// Size is the unpadded byte size of the field.
func (f Field) Size() uint64 {
	return uint64(f.Count) * f.Width
}

// Placement is a field together with its byte offset in the record.
type Placement struct {
	Field
	Offset uint64
}

// End is the first byte after the field.
func (p Placement) End() uint64 {
	return p.Offset + p.Size()
}

// Layout is the result of packing a schema.
type Layout struct {
	Rule   Rule
	Stride uint64
	Align  uint64
	Fields []Placement

	index map[string]int
}

// Compute lays out fields in order under rule. It is pure and deterministic.
func Compute(rule Rule, fields ...Field) (Layout, error) {
	if len(fields) == 0 {
		return Layout{}, fmt.Errorf("%w: no fields", ErrInvalidSchema)
	}

	l := Layout{
		Rule:   rule,
		Align:  1,
		Fields: make([]Placement, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	var cursor uint64
	for _, f := range fields {
		if err := validateField(f); err != nil {
			return Layout{}, err
		}
		if _, dup := l.index[f.Name]; dup {
			return Layout{}, fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}

		align := fieldAlign(rule, f)
		if align > l.Align {
			l.Align = align
		}
		offset := roundUp(cursor, align)

		l.index[f.Name] = len(l.Fields)
		l.Fields = append(l.Fields, Placement{Field: f, Offset: offset})
		cursor = offset + f.Size()
	}

	l.Stride = roundUp(cursor, l.Align)
	return l, nil
}

// MustCompute is Compute for schemas known at compile time.
func MustCompute(rule Rule, fields ...Field) Layout {
	l, err := Compute(rule, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

func validateField(f Field) error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return fmt.Errorf("%w: empty field name", ErrInvalidSchema)
	case f.Count < 1 || f.Count > 4:
		return fmt.Errorf("%w: field %q has %d elements, want 1..4", ErrInvalidSchema, f.Name, f.Count)
	case f.Width == 0:
		return fmt.Errorf("%w: field %q has zero element width", ErrInvalidSchema, f.Name)
	}
	return nil
}

func fieldAlign(rule Rule, f Field) uint64 {
	if rule == Packed {
		return f.Width
	}
	switch f.Count {
	case 1:
		return f.Width
	case 2:
		return 2 * f.Width
	default:
		return 4 * f.Width
	}
}

func roundUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

// Lookup returns the placement of the named field.
func (l Layout) Lookup(name string) (Placement, bool) {
	i, ok := l.index[name]
	if !ok {
		return Placement{}, false
	}
	return l.Fields[i], true
}

// Offset returns the byte offset of the named field. Asking for a field the
// schema does not declare is a programming error and panics.
func (l Layout) Offset(name string) uint64 {
	p, ok := l.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("layout: no field %q", name))
	}
	return p.Offset
}

// Offsets returns every field's byte offset keyed by name.
func (l Layout) Offsets() map[string]uint64 {
	out := make(map[string]uint64, len(l.Fields))
	for _, p := range l.Fields {
		out[p.Name] = p.Offset
	}
	return out
}

// Padding is the number of bytes in a record not covered by any field.
func (l Layout) Padding() uint64 {
	var used uint64
	for _, p := range l.Fields {
		used += p.Size()
	}
	return l.Stride - used
}

// Words is the stride in float32 slots.
func (l Layout) Words() int {
	return int(l.Stride / Float32)
}

func (l Layout) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s stride=%d {", l.Rule, l.Stride)
	for i, p := range l.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s@%d", p.Name, p.Offset)
	}
	sb.WriteString("}")
	return sb.String()
}
