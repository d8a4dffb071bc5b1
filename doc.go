// Package gg3d provides a batched 3D drawing canvas for Go on WebGPU.
//
// # Overview
//
// gg3d sits between an application and the raw GPU API: the application
// enqueues mesh draws with per-draw transform, color and shader state,
// and the canvas submits them all as a single render pass per frame.
// Render pipelines are cached across frames keyed by shader state, the
// camera's view-projection matrix lives in a uniform buffer updated only
// when the camera changes, and per-draw state travels in an instanced
// vertex buffer rebuilt each frame.
//
// # Quick Start
//
//	import "github.com/gogpu/gg3d"
//
//	ctx, err := gg3d.NewHeadlessContext()
//	if err != nil {
//	    // no GPU available
//	}
//
//	camera := gg3d.NewCamera(mgl32.Vec3{0, 2, 5})
//	target := gg3d.NewCanvasImage(ctx, 640, 480)
//	canvas := gg3d.NewCanvas(ctx, camera, target, gg3d.Black)
//
//	mesh := gg3d.NewCubeMesh(1)
//	mesh.GenerateGPUResources(ctx)
//
//	canvas.DrawMesh(mesh, gg3d.NewDrawParam())
//	if err := canvas.Finish(); err != nil {
//	    // a queued mesh was missing GPU resources
//	}
//
// # Device Ownership
//
// gg3d receives its GPU device from the host application through
// NewContext rather than creating one, so canvas resources share the
// host's device and swapchain. NewHeadlessContext acquires a surfaceless
// device for programs and tests that have no host.
//
// # Error Model
//
// Drawing never fails at enqueue time. Canvas.Finish returns a sentinel
// error (ErrNoVertexBuffer, ErrNoIndexBuffer, ErrNoBindGroup) when a
// queued mesh lacks GPU resources; draws encoded before the failing one
// are still submitted. GPU resource creation failures, which indicate a
// lost device or exhausted memory, panic.
package gg3d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
