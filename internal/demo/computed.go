package demo

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/webgpu-demos/internal/gpu"
	"github.com/gekko3d/webgpu-demos/internal/shaders"
	"github.com/gekko3d/webgpu-demos/internal/surface"
)

// ComputeInput is the array the computed demo doubles.
var ComputeInput = []float32{1, 2, 3, 4, 5}

// Computed doubles ComputeInput on a compute pipeline and logs the result.
// It draws nothing of its own; with a window it only clears the surface.
type Computed struct {
	base
	Input  []float32
	Result []float32
}

func (d *Computed) Init(env Env) error {
	if d.Input == nil {
		d.Input = ComputeInput
	}
	if env.Window != nil {
		if err := d.open("computed", env, 1); err != nil {
			return err
		}
	} else {
		d.env = env
		d.env.Layer = nil
		if d.env.Log == nil {
			d.env.Log = nopLogger{}
		}
		ctx, err := gpu.InitHeadless(gpu.Options{Label: "computed", Validate: env.Validate})
		if err != nil {
			return fmt.Errorf("computed: %w", err)
		}
		d.ctx = ctx
	}

	result, err := Double(d.ctx, d.Input)
	if err != nil {
		return err
	}
	d.Result = result
	d.env.Log.Infof("input %v", d.Input)
	d.env.Log.Infof("result %v", d.Result)
	return nil
}

func (d *Computed) Redraw(size surface.Size) error {
	if d.ctx.Surface == nil {
		return nil
	}
	return d.draw(size, nil, func(*wgpu.RenderPassEncoder) error { return nil })
}

func (d *Computed) Release() {
	d.release()
}

// Double runs the doubling shader over input on ctx and reads the result
// back. It blocks until the mapping resolves.
func Double(ctx *gpu.Context, input []float32) ([]float32, error) {
	if len(input) == 0 {
		return nil, nil
	}
	size := uint64(len(input)) * 4

	pipeline, err := ctx.ComputePipeline("double", shaders.DoubleWGSL, "main")
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()

	work, err := ctx.Buffer("work", size, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	result, err := ctx.Buffer("result", size, wgpu.BufferUsageMapRead|wgpu.BufferUsageCopyDst)
	if err != nil {
		gpu.ReleaseBuffers(work)
		return nil, err
	}
	defer gpu.ReleaseBuffers(work, result)

	if err := ctx.Upload(work, wgpu.ToBytes(input)); err != nil {
		return nil, fmt.Errorf("upload input: %w", err)
	}

	group, err := ctx.BindBuffers("double", pipeline.GetBindGroupLayout(0), work)
	if err != nil {
		return nil, err
	}
	defer group.Release()

	encoder, err := ctx.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: ctx.ResourceLabel("double encoder"),
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, group, nil)
	pass.DispatchWorkgroups(uint32(len(input)), 1, 1)
	if err := pass.End(); err != nil {
		return nil, fmt.Errorf("compute pass end: %w", err)
	}
	encoder.CopyBufferToBuffer(work, 0, result, 0, size)

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("encoder finish: %w", err)
	}
	ctx.Queue.Submit(cmd)
	cmd.Release()

	raw, err := ctx.ReadBuffer(result, size)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(input))
	copy(out, unsafe.Slice((*float32)(unsafe.Pointer(&raw[0])), len(input)))
	return out, nil
}
