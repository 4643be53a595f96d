package scene

import "github.com/gekko3d/webgpu-demos/internal/layout"

// Record layouts used by the demos. Each one must match the struct the
// matching shader declares; nothing checks that agreement.
var (
	// UniformObject is `struct { color: vec4f, scale: vec2f, offset: vec2f }`.
	UniformObject = layout.MustCompute(layout.HostShareable,
		layout.F32(FieldColor, 4),
		layout.F32(FieldScale, 2),
		layout.F32(FieldOffset, 2),
	)

	// StorageStatic is `struct { color: vec4f, offset: vec2f }` in a storage array.
	StorageStatic = layout.MustCompute(layout.HostShareable,
		layout.F32(FieldColor, 4),
		layout.F32(FieldOffset, 2),
	)

	// StorageChanging is `struct { scale: vec2f }` in a storage array.
	StorageChanging = layout.MustCompute(layout.HostShareable,
		layout.F32(FieldScale, 2),
	)

	// StorageVertex is `struct { position: vec2f }`, three per object.
	StorageVertex = layout.MustCompute(layout.HostShareable,
		layout.F32(FieldPosition, 2),
	)

	// InstanceStatic feeds @location(1) color and @location(2) offset.
	InstanceStatic = layout.MustCompute(layout.Packed,
		layout.F32(FieldColor, 4),
		layout.F32(FieldOffset, 2),
	)

	// InstanceChanging feeds @location(3) scale.
	InstanceChanging = layout.MustCompute(layout.Packed,
		layout.F32(FieldScale, 2),
	)

	// VertexAttribs feeds @location(0) position and @location(4) perVertexColor.
	VertexAttribs = layout.MustCompute(layout.Packed,
		layout.F32(FieldPosition, 2),
		layout.F32(FieldVertexColor, 3),
	)
)
