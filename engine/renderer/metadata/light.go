package metadata

import "github.com/spaghettifunk/prism/engine/math"

// DirectionalLight shines from Position towards the origin.
type DirectionalLight struct {
	Colour    math.Vec3
	Intensity float32
	Position  math.Vec3
}

// Direction returns the unit vector pointing from the origin to the light.
func (l DirectionalLight) Direction() math.Vec3 {
	if l.Position.Len() == 0 {
		return math.NewVec3Up()
	}
	return l.Position.Normalize()
}

// Radiance returns the light colour scaled by its intensity.
func (l DirectionalLight) Radiance() math.Vec3 {
	return l.Colour.Mul(l.Intensity)
}

type AmbientLight struct {
	Colour    math.Vec3
	Intensity float32
}

func (l AmbientLight) Radiance() math.Vec3 {
	return l.Colour.Mul(l.Intensity)
}
