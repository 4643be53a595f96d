package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/webgpu-demos/internal/layout"
)

// VertexFormat maps a float32 element count to its attribute format.
func VertexFormat(count int) wgpu.VertexFormat {
	switch count {
	case 1:
		return wgpu.VertexFormatFloat32
	case 2:
		return wgpu.VertexFormatFloat32x2
	case 3:
		return wgpu.VertexFormatFloat32x3
	case 4:
		return wgpu.VertexFormatFloat32x4
	default:
		panic(fmt.Sprintf("unsupported vertex element count: %d", count))
	}
}

// VertexLayout turns a packed record layout into a vertex buffer layout.
// locations maps field names to shader locations; fields without a location
// are skipped but still occupy their bytes in the stride.
func VertexLayout(l layout.Layout, step wgpu.VertexStepMode, locations map[string]uint32) wgpu.VertexBufferLayout {
	attributes := make([]wgpu.VertexAttribute, 0, len(locations))
	for _, p := range l.Fields {
		loc, ok := locations[p.Name]
		if !ok {
			continue
		}
		attributes = append(attributes, wgpu.VertexAttribute{
			Format:         VertexFormat(p.Count),
			Offset:         p.Offset,
			ShaderLocation: loc,
		})
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: l.Stride,
		StepMode:    step,
		Attributes:  attributes,
	}
}
