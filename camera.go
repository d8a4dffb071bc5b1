package gg3d

import "github.com/go-gl/mathgl/mgl32"

// Projection holds perspective projection parameters.
type Projection struct {
	// Fovy is the vertical field of view in radians.
	Fovy float32
	// Aspect is the width/height ratio of the render target.
	Aspect float32
	// Near and Far are the clip plane distances.
	Near float32
	Far  float32
}

// DefaultProjection returns a 45 degree perspective projection for the
// given target dimensions.
func DefaultProjection(width, height int) Projection {
	p := Projection{
		Fovy: mgl32.DegToRad(45),
		Near: 0.1,
		Far:  1000,
	}
	p.Resize(width, height)
	return p
}

// Resize updates the aspect ratio from new target dimensions.
// Dimensions that would produce a degenerate ratio are ignored.
func (p *Projection) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.Aspect = float32(width) / float32(height)
}

// Matrix returns the perspective projection matrix.
func (p Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(p.Fovy, p.Aspect, p.Near, p.Far)
}

// Camera describes a viewpoint into the 3D scene.
type Camera struct {
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Up         mgl32.Vec3
	Projection Projection
}

// NewCamera creates a camera at the given position looking at the origin,
// with +Y up and a default projection. Set Projection.Aspect (or let the
// canvas do it at construction) before rendering.
func NewCamera(position mgl32.Vec3) *Camera {
	return &Camera{
		Position:   position,
		Up:         mgl32.Vec3{0, 1, 0},
		Projection: DefaultProjection(1, 1),
	}
}

// View returns the camera's view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ViewProjection returns projection * view, ready for the shader uniform.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection.Matrix().Mul4(c.View())
}

// CameraUniform is the POD uniform block bound at group 1, binding 0.
// Layout must match the camera uniform in draw3d.wgsl.
type CameraUniform struct {
	ViewProj mgl32.Mat4
}

// NewCameraUniform returns an identity uniform, usable before the first
// camera update.
func NewCameraUniform() CameraUniform {
	return CameraUniform{ViewProj: mgl32.Ident4()}
}

// Update recomputes the combined view-projection matrix from the camera.
func (u *CameraUniform) Update(cam *Camera) {
	u.ViewProj = cam.ViewProjection()
}
