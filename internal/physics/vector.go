package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the floor below which a squared separation is treated as a singularity.
const Epsilon = 1e-6

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func Normalize(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}

// Rotate turns v counter-clockwise by angle radians.
func Rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	return mgl64.Rotate2D(angle).Mul2x1(v)
}

// Finite reports whether both components of v are finite.
func Finite(v mgl64.Vec2) bool {
	return !math.IsNaN(v[0]) && !math.IsInf(v[0], 0) && !math.IsNaN(v[1]) && !math.IsInf(v[1], 0)
}
