package math

import (
	m "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool {
	return m.Abs(float64(a-b)) < 1e-4
}

func TestClampAndSign(t *testing.T) {
	if got := Clamp(12, 0, 10); got != 10 {
		t.Fatalf("Clamp(12) = %v", got)
	}
	if got := Clamp(float32(-3.5), -2, 2); got != -2 {
		t.Fatalf("Clamp(-3.5) = %v", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Fatalf("Clamp(0.5) = %v", got)
	}
	if Sign(float32(-0.1)) != -1 || Sign(3) != 1 || Sign(0.0) != 0 {
		t.Fatalf("Sign returned an unexpected value")
	}
}

func TestNewVec3FromHex(t *testing.T) {
	c := NewVec3FromHex(0x00ff00)
	if c != (Vec3{0, 1, 0}) {
		t.Fatalf("0x00ff00 = %v", c)
	}
	g := NewVec3FromHex(0x404040)
	if !near(g.X(), 64.0/255.0) || g.X() != g.Y() || g.Y() != g.Z() {
		t.Fatalf("0x404040 = %v", g)
	}
}

func TestTransformTranslationAppliedAfterRotation(t *testing.T) {
	tr := TransformCreate()
	tr.SetPosition(NewVec3(1, 0, 0))
	tr.RotateY(mgl32.DegToRad(90))

	p := mgl32.TransformCoordinate(NewVec3(0, 0, 1), tr.GetWorld())
	// (0,0,1) rotated 90 degrees about Y is (1,0,0), then translated by +1 on X.
	if !near(p.X(), 2) || !near(p.Y(), 0) || !near(p.Z(), 0) {
		t.Fatalf("transformed point = %v, want (2,0,0)", p)
	}
}

func TestTransformRotationAccumulates(t *testing.T) {
	tr := TransformCreate()
	tr.RotateY(0.5)
	tr.RotateY(0.5)
	tr.RotateX(0.25)
	if !near(tr.Rotation.Y(), 1) || !near(tr.Rotation.X(), 0.25) {
		t.Fatalf("rotation = %v", tr.Rotation)
	}
	_ = tr.GetLocal()
	if tr.IsDirty {
		t.Fatalf("GetLocal left the transform dirty")
	}
}

func TestTransformParent(t *testing.T) {
	parent := TransformFromPosition(NewVec3(0, 5, 0))
	child := TransformFromPosition(NewVec3(1, 0, 0))
	child.Parent = parent
	p := mgl32.TransformCoordinate(NewVec3Zero(), child.GetWorld())
	if !near(p.X(), 1) || !near(p.Y(), 5) {
		t.Fatalf("child origin = %v, want (1,5,0)", p)
	}
}

func TestRayIntersectPlane(t *testing.T) {
	ground := Plane{Normal: NewVec3(0, 0, 1), Constant: 0}

	r := NewRay(NewVec3(2, 3, 10), NewVec3(0, 0, -1))
	p, ok := r.IntersectPlane(ground)
	if !ok || !near(p.X(), 2) || !near(p.Y(), 3) || !near(p.Z(), 0) {
		t.Fatalf("hit = %v %v", p, ok)
	}

	away := NewRay(NewVec3(0, 0, 10), NewVec3(0, 0, 1))
	if _, ok := away.IntersectPlane(ground); ok {
		t.Fatalf("ray pointing away hit the plane")
	}

	parallel := NewRay(NewVec3(0, 0, 10), NewVec3(1, 0, 0))
	if _, ok := parallel.IntersectPlane(ground); ok {
		t.Fatalf("parallel ray hit the plane")
	}
}

func TestRayIntersectTriangleCulling(t *testing.T) {
	// Counter-clockwise seen from +Z.
	a, b, c := NewVec3(-1, -1, 0), NewVec3(1, -1, 0), NewVec3(0, 1, 0)

	front := NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1))
	d, ok := front.IntersectTriangle(a, b, c, true)
	if !ok || !near(d, 5) {
		t.Fatalf("front hit = %v %v, want 5", d, ok)
	}

	back := NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1))
	if _, ok := back.IntersectTriangle(a, b, c, true); ok {
		t.Fatalf("back face hit with culling enabled")
	}
	if _, ok := back.IntersectTriangle(a, b, c, false); !ok {
		t.Fatalf("back face missed with culling disabled")
	}

	miss := NewRay(NewVec3(3, 3, 5), NewVec3(0, 0, -1))
	if _, ok := miss.IntersectTriangle(a, b, c, false); ok {
		t.Fatalf("ray outside the triangle hit")
	}
}

func TestRayIntersectMeshUsesModel(t *testing.T) {
	vertices := []Vertex3D{
		{Position: NewVec3(-1, -1, 0)},
		{Position: NewVec3(1, -1, 0)},
		{Position: NewVec3(0, 1, 0)},
	}
	indices := []uint32{0, 1, 2}
	r := NewRay(NewVec3(4, 0, 5), NewVec3(0, 0, -1))

	if _, ok := r.IntersectMesh(vertices, indices, mgl32.Ident4(), true); ok {
		t.Fatalf("hit the untransformed mesh")
	}
	d, ok := r.IntersectMesh(vertices, indices, mgl32.Translate3D(4, 0, 1), true)
	if !ok || !near(d, 4) {
		t.Fatalf("translated hit = %v %v, want 4", d, ok)
	}
}

func TestRayFromCameraThroughCentre(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	view := mgl32.LookAtV(eye, NewVec3Zero(), NewVec3Up())
	proj := mgl32.Perspective(mgl32.DegToRad(75), 1, 0.1, 1000)

	r := RayFromCamera(NewVec2(0, 0), eye, view, proj)
	if !near(r.Direction.X(), 0) || !near(r.Direction.Y(), 0) || !near(r.Direction.Z(), -1) {
		t.Fatalf("centre ray direction = %v", r.Direction)
	}
	if r.Origin != eye {
		t.Fatalf("origin = %v", r.Origin)
	}
}

func TestGeometryExtents(t *testing.T) {
	ext, centre := GeometryExtents([]Vertex3D{
		{Position: NewVec3(-1, 0, 2)},
		{Position: NewVec3(3, -2, 0)},
	})
	if ext.Min != NewVec3(-1, -2, 0) || ext.Max != NewVec3(3, 0, 2) {
		t.Fatalf("extents = %+v", ext)
	}
	if centre != NewVec3(1, -1, 1) {
		t.Fatalf("centre = %v", centre)
	}
}

func TestGeometryGenerateNormals(t *testing.T) {
	vertices := []Vertex3D{
		{Position: NewVec3(0, 0, 0)},
		{Position: NewVec3(1, 0, 0)},
		{Position: NewVec3(0, 1, 0)},
	}
	GeometryGenerateNormals(vertices, []uint32{0, 1, 2})
	for i, v := range vertices {
		if v.Normal != NewVec3(0, 0, 1) {
			t.Fatalf("vertex %d normal = %v", i, v.Normal)
		}
	}
}
