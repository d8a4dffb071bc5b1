package gg3d

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is indexed triangle geometry with an optional texture.
// CPU-side data lives in Vertices/Indices; GPU buffers are created on
// demand by GenerateGPUResources (or by the first DrawMesh for the bind
// group). Drawing a mesh whose buffers were never generated surfaces a
// resource-missing error from Canvas.Finish.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	// Texture is sampled by the fragment stage. When nil, the canvas
	// binds its 1x1 white image so the instance color alone shows.
	Texture *Image

	bounds   *AABB
	boundsOK bool

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer

	// bind group for group 0, regenerated when the sampler changes
	bindGroup   *wgpu.BindGroup
	bindSampler Sampler
	bindBound   bool
}

// NewMesh creates a mesh from vertex and index data.
func NewMesh(vertices []Vertex, indices []uint32) *Mesh {
	return &Mesh{Vertices: vertices, Indices: indices}
}

// AABB returns the mesh's local-space bounds, computing and caching them
// on first call. ok is false for a mesh with no vertices.
func (m *Mesh) AABB() (AABB, bool) {
	if m.bounds == nil {
		b, ok := computeAABB(m.Vertices)
		m.bounds = &b
		m.boundsOK = ok
	}
	return *m.bounds, m.boundsOK
}

// InvalidateBounds drops the cached AABB after vertex edits.
func (m *Mesh) InvalidateBounds() {
	m.bounds = nil
	m.boundsOK = false
}

// GenerateGPUResources uploads the vertex and index data, replacing any
// previous buffers. Call it once after building or editing the mesh and
// before drawing.
func (m *Mesh) GenerateGPUResources(ctx *Context) {
	m.releaseBuffers()

	var err error
	m.vertexBuffer, err = ctx.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "gg3d mesh vertex buffer",
		Contents: wgpu.ToBytes(m.Vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		panic(err)
	}
	m.indexBuffer, err = ctx.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "gg3d mesh index buffer",
		Contents: wgpu.ToBytes(m.Indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		panic(err)
	}
}

// ensureBindGroup creates the mesh's group-0 bind group (texture and
// sampler) if absent or built for a different sampler. Failures are not
// fatal here: the bind group stays nil and Canvas.Finish reports it.
func (m *Mesh) ensureBindGroup(ctx *Context, layout *wgpu.BindGroupLayout, fallback *Image, sampler Sampler) {
	if m.bindBound && m.bindSampler == sampler {
		return
	}

	gpuSampler, err := ctx.sampler(sampler)
	if err != nil {
		Logger().Warn("gg3d: sampler creation failed, deferring to submission", "err", err)
		m.dropBindGroup()
		return
	}

	img := m.Texture
	if img == nil {
		img = fallback
	}
	bg, err := ctx.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "gg3d mesh bind group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: img.view},
			{Binding: 1, Sampler: gpuSampler},
		},
	})
	if err != nil {
		Logger().Warn("gg3d: bind group creation failed, deferring to submission", "err", err)
		m.dropBindGroup()
		return
	}

	m.dropBindGroup()
	m.bindGroup = bg
	m.bindSampler = sampler
	m.bindBound = true
}

func (m *Mesh) dropBindGroup() {
	if m.bindGroup != nil {
		m.bindGroup.Release()
		m.bindGroup = nil
	}
	m.bindBound = false
}

func (m *Mesh) releaseBuffers() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
}

// Release frees the mesh's GPU resources. The CPU-side vertex and index
// data remain, so the mesh can be re-uploaded later.
func (m *Mesh) Release() {
	m.releaseBuffers()
	m.dropBindGroup()
}

// Draw enqueues the mesh on the canvas.
func (m *Mesh) Draw(canvas *Canvas, param DrawParam) {
	canvas.DrawMesh(m, param)
}

var _ Drawable = (*Mesh)(nil)

// NewCubeMesh creates an axis-aligned cube centered on the origin with
// the given edge length. Each face has its own four vertices so normals
// and texture coordinates are flat per face.
func NewCubeMesh(size float32) *Mesh {
	h := size / 2
	faces := []struct {
		normal mgl32.Vec3
		// corners in CCW order viewed from outside
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}
	uvs := [4]mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	verts := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(verts))
		for i, corner := range f.corners {
			verts = append(verts, NewVertex(corner, f.normal, uvs[i]))
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewMesh(verts, indices)
}
