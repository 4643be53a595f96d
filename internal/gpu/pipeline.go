package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineSpec describes a render pipeline with an automatic layout.
type PipelineSpec struct {
	Name          string
	Source        string
	VertexEntry   string
	FragmentEntry string
	Buffers       []wgpu.VertexBufferLayout
	SampleCount   uint32
	Blend         *wgpu.BlendState
}

// RenderPipeline compiles spec.Source and builds a triangle-list pipeline
// rendering into the surface format.
func (c *Context) RenderPipeline(spec PipelineSpec) (*wgpu.RenderPipeline, error) {
	module, err := c.ShaderModule(spec.Name, spec.Source)
	if err != nil {
		return nil, err
	}
	defer module.Release()

	vertexEntry := spec.VertexEntry
	if vertexEntry == "" {
		vertexEntry = "vs_main"
	}
	fragmentEntry := spec.FragmentEntry
	if fragmentEntry == "" {
		fragmentEntry = "fs_main"
	}
	samples := spec.SampleCount
	if samples == 0 {
		samples = 1
	}

	pipeline, err := c.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: c.ResourceLabel(spec.Name),
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntry,
			Buffers:    spec.Buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    c.Format(),
				Blend:     spec.Blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", spec.Name, err)
	}
	return pipeline, nil
}

// ComputePipeline compiles source and builds a compute pipeline for entry.
func (c *Context) ComputePipeline(name, source, entry string) (*wgpu.ComputePipeline, error) {
	module, err := c.ShaderModule(name, source)
	if err != nil {
		return nil, err
	}
	defer module.Release()

	pipeline, err := c.Device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: c.ResourceLabel(name),
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     module,
			EntryPoint: entry,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("compute pipeline %s: %w", name, err)
	}
	return pipeline, nil
}
