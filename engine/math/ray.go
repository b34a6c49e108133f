package math

import (
	m "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half line starting at Origin. Direction is kept normalized.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// RayFromCamera builds the picking ray through the normalized device
// coordinates ndc for a perspective camera placed at eye.
func RayFromCamera(ndc Vec2, eye Vec3, view, projection Mat4) Ray {
	inv := projection.Mul4(view).Inv()
	target := mgl32.TransformCoordinate(Vec3{ndc.X(), ndc.Y(), 0.5}, inv)
	return NewRay(eye, target.Sub(eye))
}

func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is the set of points p where Normal·p + Constant = 0.
type Plane struct {
	Normal   Vec3
	Constant float32
}

func (p Plane) DistanceToPoint(point Vec3) float32 {
	return p.Normal.Dot(point) + p.Constant
}

// IntersectPlane returns the point where the ray meets the plane.
func (r Ray) IntersectPlane(p Plane) (Vec3, bool) {
	denominator := p.Normal.Dot(r.Direction)
	if denominator == 0 {
		// Parallel: only a hit when the origin lies on the plane.
		if p.DistanceToPoint(r.Origin) == 0 {
			return r.Origin, true
		}
		return Vec3{}, false
	}
	t := -(r.Origin.Dot(p.Normal) + p.Constant) / denominator
	if t < 0 {
		return Vec3{}, false
	}
	return r.At(t), true
}

// IntersectTriangle runs Möller–Trumbore against the triangle abc and returns
// the distance along the ray. With cullBackFaces set, triangles whose
// counter-clockwise winding faces away from the ray are ignored.
func (r Ray) IntersectTriangle(a, b, c Vec3, cullBackFaces bool) (float32, bool) {
	const epsilon = 1e-7

	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	pvec := r.Direction.Cross(edge2)
	det := edge1.Dot(pvec)

	if cullBackFaces {
		if det < epsilon {
			return 0, false
		}
	} else if float32(m.Abs(float64(det))) < epsilon {
		return 0, false
	}

	invDet := 1 / det
	tvec := r.Origin.Sub(a)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	qvec := tvec.Cross(edge1)
	v := r.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := edge2.Dot(qvec) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectMesh tests the ray against every indexed triangle after applying
// the model matrix, returning the closest hit distance.
func (r Ray) IntersectMesh(vertices []Vertex3D, indices []uint32, model Mat4, cullBackFaces bool) (float32, bool) {
	closest := float32(m.Inf(1))
	hit := false
	for i := 0; i+2 < len(indices); i += 3 {
		a := mgl32.TransformCoordinate(vertices[indices[i]].Position, model)
		b := mgl32.TransformCoordinate(vertices[indices[i+1]].Position, model)
		c := mgl32.TransformCoordinate(vertices[indices[i+2]].Position, model)
		if t, ok := r.IntersectTriangle(a, b, c, cullBackFaces); ok && t < closest {
			closest = t
			hit = true
		}
	}
	return closest, hit
}
