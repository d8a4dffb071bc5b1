package gg3d

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a single mesh vertex.
// Layout must match the vertex inputs of draw3d.wgsl (locations 0-2).
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// vertexSize is the byte stride of one Vertex.
const vertexSize = 3*4 + 3*4 + 2*4

// instanceSize is the byte stride of one Instance (mat4 plus vec4 color).
const instanceSize = 16*4 + 4*4

// NewVertex creates a vertex from position, normal and texture coordinates.
func NewVertex(position, normal mgl32.Vec3, uv mgl32.Vec2) Vertex {
	return Vertex{
		Position: [3]float32{position[0], position[1], position[2]},
		Normal:   [3]float32{normal[0], normal[1], normal[2]},
		TexCoord: [2]float32{uv[0], uv[1]},
	}
}

// vertexBufferLayout describes vertex slot 0: per-vertex attributes at
// shader locations 0-2.
func vertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: vertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x3},
			{ShaderLocation: 1, Offset: 12, Format: wgpu.VertexFormatFloat32x3},
			{ShaderLocation: 2, Offset: 24, Format: wgpu.VertexFormatFloat32x2},
		},
	}
}

// instanceBufferLayout describes vertex slot 1: per-instance model matrix
// columns at locations 3-6 and instance color at location 7.
func instanceBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: instanceSize,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{ShaderLocation: 3, Offset: 0, Format: wgpu.VertexFormatFloat32x4},
			{ShaderLocation: 4, Offset: 16, Format: wgpu.VertexFormatFloat32x4},
			{ShaderLocation: 5, Offset: 32, Format: wgpu.VertexFormatFloat32x4},
			{ShaderLocation: 6, Offset: 48, Format: wgpu.VertexFormatFloat32x4},
			{ShaderLocation: 7, Offset: 64, Format: wgpu.VertexFormatFloat32x4},
		},
	}
}
