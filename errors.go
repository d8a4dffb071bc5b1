package gg3d

import "errors"

// Resource-missing errors returned by [Canvas.Finish] when a queued mesh
// was never uploaded to the GPU. These are recoverable: generate the
// mesh's GPU resources (see [Mesh.GenerateGPUResources]) and draw again
// next frame.
var (
	// ErrNoVertexBuffer is returned when a queued mesh has no GPU vertex buffer.
	ErrNoVertexBuffer = errors.New("gg3d: vertex buffer not generated for mesh")

	// ErrNoIndexBuffer is returned when a queued mesh has no GPU index buffer.
	ErrNoIndexBuffer = errors.New("gg3d: index buffer not generated for mesh")

	// ErrNoBindGroup is returned when a queued mesh has no texture bind group.
	ErrNoBindGroup = errors.New("gg3d: bind group not generated for mesh")
)
