package layout

import (
	"fmt"
	"reflect"
)

// Of builds a layout from the exported fields of struct type T. Supported
// field types are float32 and float32 arrays of length 1..4, which includes
// the mgl32 vector types. The field name is taken from a `layout:"name"` tag
// when present; `layout:"-"` skips the field.
func Of[T any](rule Rule) (Layout, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return Layout{}, fmt.Errorf("%w: %s is not a struct", ErrInvalidSchema, t)
	}

	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Tag.Get("layout")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		count, err := float32Count(sf.Type)
		if err != nil {
			return Layout{}, fmt.Errorf("%w: field %s.%s: %v", ErrInvalidSchema, t.Name(), sf.Name, err)
		}
		fields = append(fields, F32(name, count))
	}
	return Compute(rule, fields...)
}

// MustOf is Of for record types defined in code.
func MustOf[T any](rule Rule) Layout {
	l, err := Of[T](rule)
	if err != nil {
		panic(err)
	}
	return l
}

func float32Count(t reflect.Type) (int, error) {
	switch t.Kind() {
	case reflect.Float32:
		return 1, nil
	case reflect.Array:
		if t.Elem().Kind() != reflect.Float32 {
			return 0, fmt.Errorf("unsupported array element %s", t.Elem())
		}
		return t.Len(), nil
	default:
		return 0, fmt.Errorf("unsupported type %s", t)
	}
}
