package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/prism/engine/math"
)

/**
 * @brief A perspective camera. Projection and view matrices are cached and
 * rebuilt lazily; after changing Fov, Aspect, Near or Far call
 * UpdateProjectionMatrix so the change is picked up.
 */
type PerspectiveCamera struct {
	/** @brief Vertical field of view in degrees. */
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32

	position math.Vec3
	target   math.Vec3
	up       math.Vec3

	projection math.Mat4
	view       math.Mat4
	viewDirty  bool
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		up:     math.NewVec3Up(),
	}
	c.UpdateProjectionMatrix()
	c.viewDirty = true
	return c
}

func (c *PerspectiveCamera) GetPosition() math.Vec3 {
	return c.position
}

// SetPosition moves the camera. The look-at target defaults to the origin.
func (c *PerspectiveCamera) SetPosition(position math.Vec3) {
	c.position = position
	c.viewDirty = true
}

func (c *PerspectiveCamera) LookAt(target math.Vec3) {
	c.target = target
	c.viewDirty = true
}

func (c *PerspectiveCamera) Target() math.Vec3 {
	return c.target
}

// SetAspect changes the aspect ratio. The projection is not rebuilt until
// UpdateProjectionMatrix is called.
func (c *PerspectiveCamera) SetAspect(aspect float32) {
	c.Aspect = aspect
}

func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(math.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) Projection() math.Mat4 {
	return c.projection
}

func (c *PerspectiveCamera) View() math.Mat4 {
	if c.viewDirty {
		c.view = mgl32.LookAtV(c.position, c.target, c.up)
		c.viewDirty = false
	}
	return c.view
}

// Ray returns the picking ray through the given normalized device coordinates.
func (c *PerspectiveCamera) Ray(ndc math.Vec2) math.Ray {
	return math.RayFromCamera(ndc, c.position, c.View(), c.projection)
}
