package gpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/webgpu-demos/internal/layout"
)

func TestVertexFormat(t *testing.T) {
	assert.Equal(t, wgpu.VertexFormatFloat32, VertexFormat(1))
	assert.Equal(t, wgpu.VertexFormatFloat32x2, VertexFormat(2))
	assert.Equal(t, wgpu.VertexFormatFloat32x3, VertexFormat(3))
	assert.Equal(t, wgpu.VertexFormatFloat32x4, VertexFormat(4))
	assert.Panics(t, func() { VertexFormat(5) })
}

func TestVertexLayout(t *testing.T) {
	l := layout.MustCompute(layout.Packed,
		layout.F32("position", 2),
		layout.F32("perVertexColor", 3),
	)
	vbl := VertexLayout(l, wgpu.VertexStepModeVertex, map[string]uint32{
		"position":       0,
		"perVertexColor": 4,
	})

	assert.Equal(t, uint64(20), vbl.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, vbl.StepMode)
	require.Len(t, vbl.Attributes, 2)
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, vbl.Attributes[0])
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 8, ShaderLocation: 4}, vbl.Attributes[1])
}

func TestVertexLayout_SkipsUnboundFields(t *testing.T) {
	l := layout.MustCompute(layout.Packed, layout.F32("color", 4), layout.F32("offset", 2))
	vbl := VertexLayout(l, wgpu.VertexStepModeInstance, map[string]uint32{"offset": 2})

	assert.Equal(t, uint64(24), vbl.ArrayStride)
	require.Len(t, vbl.Attributes, 1)
	assert.Equal(t, uint64(16), vbl.Attributes[0].Offset)
}

func TestProbeMessage(t *testing.T) {
	assert.Contains(t, ProbeMessage(true), "supports WebGPU")
	assert.Contains(t, ProbeMessage(false), "does not support")
}
