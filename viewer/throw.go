package viewer

import (
	m "math"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// Viewport reports the size of the area pointer coordinates are relative to.
type Viewport interface {
	Size() (uint32, uint32)
}

type ThrowState struct {
	Dragging bool
	// Linear velocity in world units per frame step.
	Velocity math.Vec3
	// Last pointer position in normalized device coordinates.
	Pointer math.Vec2
	// Scaled NDC delta of the most recent drag move.
	PointerVelocity math.Vec2
}

type ThrowSettings struct {
	// Scales the NDC delta of a move into pointer velocity.
	PointerScale float32 `toml:"pointer_scale"`
	// Scales the pointer velocity into the mesh velocity on release.
	ReleaseScale float32 `toml:"release_scale"`
	// Scales the pointer ray hit on the z=0 plane into the mesh position.
	PlaneScale float32 `toml:"plane_scale"`
	// Subtracted from the vertical velocity every idle frame.
	Gravity float32 `toml:"gravity"`
	// Fraction of the velocity applied to the position every idle frame.
	Step float32 `toml:"step"`
	// Velocity kept, with flipped sign, when an axis hits its bound.
	Restitution float32 `toml:"restitution"`
	// Multiplies the velocity every idle frame. Must be in (0,1).
	Damping float32 `toml:"damping"`
	// Radians of rotation per unit of velocity per frame.
	SpinCoupling float32 `toml:"spin_coupling"`
	// Half extents of the box the mesh bounces in.
	Bounds [3]float32 `toml:"bounds"`
}

func DefaultThrowSettings() ThrowSettings {
	return ThrowSettings{
		PointerScale: 20,
		ReleaseScale: 20,
		PlaneScale:   10,
		Gravity:      0.1,
		Step:         0.1,
		Restitution:  0.8,
		Damping:      0.99,
		SpinCoupling: 0.01,
		Bounds:       [3]float32{10, 5, 10},
	}
}

// dragPlane is z = 0.
var dragPlane = math.Plane{Normal: math.NewVec3(0, 0, 1), Constant: 0}

// ThrowController lets the user grab the mesh, drag it across the z=0 plane
// and throw it. Released meshes fall, bounce off the bounds and slow down.
type ThrowController struct {
	State    ThrowState
	settings ThrowSettings
	mesh     *metadata.Mesh
	camera   *components.PerspectiveCamera
	viewport Viewport
}

func NewThrowController(mesh *metadata.Mesh, camera *components.PerspectiveCamera, viewport Viewport, settings ThrowSettings) *ThrowController {
	return &ThrowController{
		settings: settings,
		mesh:     mesh,
		camera:   camera,
		viewport: viewport,
	}
}

func (tc *ThrowController) toNDC(p math.Vec2) math.Vec2 {
	w, h := tc.viewport.Size()
	if w == 0 || h == 0 {
		return math.Vec2{}
	}
	return math.NewVec2(
		p.X()/float32(w)*2-1,
		-(p.Y()/float32(h))*2+1,
	)
}

// hit reports whether the pointer ray touches a front face of the mesh.
func (tc *ThrowController) hit(ndc math.Vec2) bool {
	geometry := tc.mesh.Geometry
	if !geometry.IsValid() {
		return false
	}
	ray := tc.camera.Ray(ndc)
	_, ok := ray.IntersectMesh(geometry.Vertices, geometry.Indices, tc.mesh.Transform.GetWorld(), true)
	return ok
}

func (tc *ThrowController) PointerDown(p math.Vec2) {
	ndc := tc.toNDC(p)
	if !tc.hit(ndc) {
		return
	}
	tc.State.Dragging = true
	tc.State.Pointer = ndc
	tc.State.Velocity = math.Vec3{}
}

func (tc *ThrowController) PointerMove(p math.Vec2) {
	if !tc.State.Dragging {
		return
	}
	ndc := tc.toNDC(p)
	tc.State.PointerVelocity = ndc.Sub(tc.State.Pointer).Mul(tc.settings.PointerScale)

	// A miss leaves the point at the origin.
	point, _ := tc.camera.Ray(ndc).IntersectPlane(dragPlane)
	pos := tc.mesh.Transform.Position
	pos[0] = point.X() * tc.settings.PlaneScale
	pos[1] = point.Y() * tc.settings.PlaneScale
	tc.mesh.Transform.SetPosition(pos)

	tc.State.Pointer = ndc
}

func (tc *ThrowController) PointerUp() {
	if !tc.State.Dragging {
		return
	}
	tc.State.Dragging = false
	v := tc.State.PointerVelocity.Mul(tc.settings.ReleaseScale)
	tc.State.Velocity = math.NewVec3(v.X(), v.Y(), 0)
}

func (tc *ThrowController) Tick(frame core.FrameContext) {
	if tc.State.Dragging {
		return
	}
	s := tc.settings
	v := tc.State.Velocity

	v[1] -= s.Gravity

	pos := tc.mesh.Transform.Position.Add(v.Mul(s.Step))
	for axis := 0; axis < 3; axis++ {
		if float32(m.Abs(float64(pos[axis]))) > s.Bounds[axis] {
			pos[axis] = math.Sign(pos[axis]) * s.Bounds[axis]
			v[axis] *= -s.Restitution
		}
	}
	tc.mesh.Transform.SetPosition(pos)

	v = v.Mul(s.Damping)
	tc.State.Velocity = v

	tc.mesh.Transform.RotateX(v.Y() * s.SpinCoupling)
	tc.mesh.Transform.RotateY(v.X() * s.SpinCoupling)
}

func (tc *ThrowController) Dragging() bool {
	return tc.State.Dragging
}

func (tc *ThrowController) Reset() {
	tc.State = ThrowState{}
}
