package shaders

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed triangle.wgsl
var TriangleWGSL string

//go:embed double.wgsl
var DoubleWGSL string

//go:embed stage.wgsl
var StageWGSL string

//go:embed uniforms.wgsl
var UniformsWGSL string

//go:embed storage.wgsl
var StorageWGSL string

//go:embed storage_vertex.wgsl
var StorageVertexWGSL string

//go:embed vertex_buffers.wgsl
var VertexBuffersWGSL string

//go:embed text.wgsl
var TextWGSL string

// All lists every embedded shader by name.
func All() map[string]string {
	return map[string]string{
		"triangle":       TriangleWGSL,
		"double":         DoubleWGSL,
		"stage":          StageWGSL,
		"uniforms":       UniformsWGSL,
		"storage":        StorageWGSL,
		"storage_vertex": StorageVertexWGSL,
		"vertex_buffers": VertexBuffersWGSL,
		"text":           TextWGSL,
	}
}

// Validate compiles WGSL source on the CPU so syntax and type errors are
// reported with the shader's name before the device ever sees it. It does
// not check buffer layouts against host records.
func Validate(name, source string) error {
	if _, err := naga.Compile(source); err != nil {
		return fmt.Errorf("shader %s: %w", name, err)
	}
	return nil
}
