package demo

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/webgpu-demos/internal/gpu"
	"github.com/gekko3d/webgpu-demos/internal/route"
)

func TestTable_CoversEveryDemo(t *testing.T) {
	table, err := Table()
	require.NoError(t, err)
	require.Equal(t, 8, table.Len())

	paths := make([]string, 0, table.Len())
	for _, r := range table.Routes() {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{
		"triangle", "computed", "stage", "uniforms",
		"triangle2", "storage", "storage-vertex", "vertex",
	}, paths)
}

func TestNew(t *testing.T) {
	d, err := New("/#/storage-vertex")
	require.NoError(t, err)
	assert.IsType(t, &StorageVertex{}, d)
	assert.Nil(t, d.Context())

	_, err = New("nope")
	assert.ErrorIs(t, err, route.ErrUnknownRoute)
}

func TestEntries_ConstructFreshDemos(t *testing.T) {
	for _, e := range Entries() {
		a, b := e.New(), e.New()
		assert.NotSame(t, a, b, e.Route.Path)
	}
}

func TestVertexBufferLayouts(t *testing.T) {
	layouts := VertexBufferLayouts()
	require.Len(t, layouts, 3)

	assert.Equal(t, uint64(20), layouts[0].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layouts[0].StepMode)
	assert.Equal(t, []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 8, ShaderLocation: 4},
	}, layouts[0].Attributes)

	assert.Equal(t, uint64(24), layouts[1].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, layouts[1].StepMode)
	assert.Equal(t, []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 2},
	}, layouts[1].Attributes)

	assert.Equal(t, uint64(8), layouts[2].ArrayStride)
	assert.Equal(t, []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 3},
	}, layouts[2].Attributes)
}

func TestStage_FragmentEntry(t *testing.T) {
	var d Stage
	assert.Equal(t, "fs_main", d.FragmentEntry(false))
	assert.Equal(t, "fs_checker", d.FragmentEntry(true))
}

func TestComputed_Headless(t *testing.T) {
	if !gpu.Probe() {
		t.Skip("no WebGPU adapter")
	}
	d := &Computed{}
	require.NoError(t, d.Init(Env{Validate: true}))
	defer d.Release()

	assert.Equal(t, []float32{2, 4, 6, 8, 10}, d.Result)
	assert.Equal(t, []float32{1, 2, 3, 4, 5}, ComputeInput)
}
