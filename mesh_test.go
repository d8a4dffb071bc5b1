package gg3d

import (
	"errors"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// fakeBuffer and fakeBindGroup produce non-nil handles for tests that
// only care about presence, never dereferencing them.
func fakeBuffer() *wgpu.Buffer       { return &wgpu.Buffer{} }
func fakeBindGroup() *wgpu.BindGroup { return &wgpu.BindGroup{} }

func TestMesh_AABBLazyAndCached(t *testing.T) {
	m := NewMesh([]Vertex{
		NewVertex(mgl32.Vec3{-1, 0, 2}, mgl32.Vec3{0, 1, 0}, mgl32.Vec2{}),
		NewVertex(mgl32.Vec3{3, -2, 4}, mgl32.Vec3{0, 1, 0}, mgl32.Vec2{}),
		NewVertex(mgl32.Vec3{1, 1, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec2{}),
	}, []uint32{0, 1, 2})

	if m.bounds != nil {
		t.Fatal("bounds computed before first AABB call")
	}

	b, ok := m.AABB()
	if !ok {
		t.Fatal("AABB reported no bounds for a non-empty mesh")
	}
	if b.Min != (mgl32.Vec3{-1, -2, 0}) || b.Max != (mgl32.Vec3{3, 1, 4}) {
		t.Errorf("bounds = %v..%v", b.Min, b.Max)
	}
	if got := b.Center(); !vec3Near(got, mgl32.Vec3{1, -0.5, 2}, 1e-6) {
		t.Errorf("Center() = %v", got)
	}

	// Mutating vertices without invalidation keeps the cached bounds.
	m.Vertices[0].Position = [3]float32{-100, 0, 0}
	if b2, _ := m.AABB(); b2 != b {
		t.Error("AABB recomputed without InvalidateBounds")
	}

	m.InvalidateBounds()
	if b3, _ := m.AABB(); b3.Min[0] != -100 {
		t.Errorf("bounds not recomputed after invalidation: %v", b3.Min)
	}
}

func TestMesh_AABBEmpty(t *testing.T) {
	if _, ok := NewMesh(nil, nil).AABB(); ok {
		t.Error("empty mesh reported bounds")
	}
}

func TestNewCubeMesh(t *testing.T) {
	cube := NewCubeMesh(2)

	if len(cube.Vertices) != 24 {
		t.Errorf("vertices = %d, want 24", len(cube.Vertices))
	}
	if len(cube.Indices) != 36 {
		t.Errorf("indices = %d, want 36", len(cube.Indices))
	}

	b, ok := cube.AABB()
	if !ok {
		t.Fatal("cube has no bounds")
	}
	if b.Min != (mgl32.Vec3{-1, -1, -1}) || b.Max != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("bounds = %v..%v, want unit-centered", b.Min, b.Max)
	}

	for i, idx := range cube.Indices {
		if int(idx) >= len(cube.Vertices) {
			t.Fatalf("index %d out of range at position %d", idx, i)
		}
	}

	// Every face normal must be unit length.
	for i, v := range cube.Vertices {
		n := mgl32.Vec3{v.Normal[0], v.Normal[1], v.Normal[2]}
		if mgl32.Abs(n.Len()-1) > 1e-6 {
			t.Fatalf("vertex %d normal %v not unit length", i, n)
		}
	}
}

func TestDrawCommand_MissingResource(t *testing.T) {
	// Fake non-nil GPU handles; missingResource only nil-checks them.
	ready := func() *Mesh {
		m := NewCubeMesh(1)
		m.bindGroup = fakeBindGroup()
		m.vertexBuffer = fakeBuffer()
		m.indexBuffer = fakeBuffer()
		return m
	}

	tests := []struct {
		name     string
		mutate   func(*Mesh)
		wantErr  error
		wantWord string
	}{
		{
			name:     "no bind group",
			mutate:   func(m *Mesh) { m.bindGroup = nil },
			wantErr:  ErrNoBindGroup,
			wantWord: "bind group",
		},
		{
			name:     "no vertex buffer",
			mutate:   func(m *Mesh) { m.vertexBuffer = nil },
			wantErr:  ErrNoVertexBuffer,
			wantWord: "vertex buffer",
		},
		{
			name:     "no index buffer",
			mutate:   func(m *Mesh) { m.indexBuffer = nil },
			wantErr:  ErrNoIndexBuffer,
			wantWord: "index buffer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ready()
			tt.mutate(m)
			cmd := drawCommand{mesh: m, param: NewDrawParam()}

			err := cmd.missingResource()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("missingResource() = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantWord) {
				t.Errorf("error %q does not name the %s", err, tt.wantWord)
			}
		})
	}

	t.Run("all resources present", func(t *testing.T) {
		cmd := drawCommand{mesh: ready(), param: NewDrawParam()}
		if err := cmd.missingResource(); err != nil {
			t.Errorf("missingResource() = %v, want nil", err)
		}
	})
}
