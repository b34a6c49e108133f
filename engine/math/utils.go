package math

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Sign returns -1, 0 or 1 following the sign of v.
func Sign[T constraints.Signed | constraints.Float](v T) T {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// RangeConvertFloat32 maps value from [oldMin, oldMax] to [newMin, newMax].
func RangeConvertFloat32(value, oldMin, oldMax, newMin, newMax float32) float32 {
	return (((value - oldMin) * (newMax - newMin)) / (oldMax - oldMin)) + newMin
}

func DegToRad(degrees float32) float32 {
	return mgl32.DegToRad(degrees)
}

func RadToDeg(radians float32) float32 {
	return mgl32.RadToDeg(radians)
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{x, y}
}

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

func NewVec3Zero() Vec3 {
	return Vec3{0, 0, 0}
}

func NewVec3One() Vec3 {
	return Vec3{1, 1, 1}
}

func NewVec3Up() Vec3 {
	return Vec3{0, 1, 0}
}

// NewVec3FromHex splits a 0xRRGGBB colour into components in [0, 1].
func NewVec3FromHex(hex uint32) Vec3 {
	return Vec3{
		float32((hex>>16)&0xff) / 255.0,
		float32((hex>>8)&0xff) / 255.0,
		float32(hex&0xff) / 255.0,
	}
}
