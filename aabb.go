package gg3d

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box in mesh-local coordinates.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// computeAABB returns the bounds of the given vertex positions.
// ok is false when there are no vertices.
func computeAABB(verts []Vertex) (bounds AABB, ok bool) {
	if len(verts) == 0 {
		return AABB{}, false
	}
	min := mgl32.Vec3{verts[0].Position[0], verts[0].Position[1], verts[0].Position[2]}
	max := min
	for _, v := range verts[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return AABB{Min: min, Max: max}, true
}
