package gg3d

import "github.com/go-gl/mathgl/mgl32"

// Instance is the POD per-draw record uploaded to vertex slot 1.
// Layout must match the instance inputs of draw3d.wgsl (locations 3-7).
type Instance struct {
	Model mgl32.Mat4
	Color [4]float32
}

// newInstance builds the instance record for one draw. The model matrix
// translates to the pivot, applies rotation and scale there, then moves
// the result to the param's world position:
//
//	model = T(position + pivot) * R * S * T(-pivot)
func newInstance(param DrawParam, pivot mgl32.Vec3) Instance {
	rot := param.Rotation
	if rot == (mgl32.Quat{}) {
		rot = mgl32.QuatIdent()
	}
	scale := param.Scale
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}

	origin := param.Position.Add(pivot)
	model := mgl32.Translate3D(origin[0], origin[1], origin[2]).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2])).
		Mul4(mgl32.Translate3D(-pivot[0], -pivot[1], -pivot[2]))

	return Instance{Model: model, Color: param.Color.vec4()}
}

// pivotFor resolves the rotation/scale origin for a draw: the explicit
// param pivot wins, then the mesh bounds center, then the mesh origin.
func pivotFor(param DrawParam, mesh *Mesh) mgl32.Vec3 {
	if param.Pivot != nil {
		return *param.Pivot
	}
	if bounds, ok := mesh.AABB(); ok {
		return bounds.Center()
	}
	return mgl32.Vec3{}
}

// instancesFor produces one instance record per queued draw, in queue
// order, so record i pairs with the pass's i-th indexed draw.
func instancesFor(draws []drawCommand) []Instance {
	if len(draws) == 0 {
		return nil
	}
	out := make([]Instance, len(draws))
	for i, d := range draws {
		out[i] = newInstance(d.param, pivotFor(d.param, d.mesh))
	}
	return out
}
