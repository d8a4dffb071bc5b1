package gg3d

import "github.com/go-gl/mathgl/mgl32"

// DrawParam describes per-draw transform and tint state.
// The zero value is not useful; start from NewDrawParam.
type DrawParam struct {
	// Position is the world-space translation.
	Position mgl32.Vec3
	// Rotation is applied around the pivot.
	Rotation mgl32.Quat
	// Scale is applied around the pivot.
	Scale mgl32.Vec3
	// Color multiplies the sampled texture color.
	Color RGBA
	// Pivot overrides the rotation/scale origin. When nil, the mesh's
	// bounding-box center is used, or the mesh origin if the mesh has no
	// vertices.
	Pivot *mgl32.Vec3
}

// NewDrawParam returns a DrawParam with identity transform and white tint.
func NewDrawParam() DrawParam {
	return DrawParam{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Color:    White,
	}
}

// WithPosition returns a copy with the given world position.
func (p DrawParam) WithPosition(v mgl32.Vec3) DrawParam {
	p.Position = v
	return p
}

// WithRotation returns a copy with the given rotation.
func (p DrawParam) WithRotation(q mgl32.Quat) DrawParam {
	p.Rotation = q
	return p
}

// WithScale returns a copy with the given scale.
func (p DrawParam) WithScale(v mgl32.Vec3) DrawParam {
	p.Scale = v
	return p
}

// WithColor returns a copy with the given tint color.
func (p DrawParam) WithColor(c RGBA) DrawParam {
	p.Color = c
	return p
}

// WithPivot returns a copy rotating and scaling around the given point
// instead of the mesh's bounding-box center.
func (p DrawParam) WithPivot(v mgl32.Vec3) DrawParam {
	p.Pivot = &v
	return p
}

// Drawable is anything that can enqueue itself onto a canvas.
type Drawable interface {
	// Draw enqueues the drawable with the given parameters.
	Draw(canvas *Canvas, param DrawParam)
}
