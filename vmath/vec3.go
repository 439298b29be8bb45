package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the world-space vector used by the simulation
type Vec3 = mgl64.Vec3

// Zero is the origin
var Zero = Vec3{}

// One is (1,1,1), used for spawn offsets
var One = Vec3{1, 1, 1}

// DistSq returns squared distance between a and b
func DistSq(a, b Vec3) float64 {
	dx, dy, dz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	return dx*dx + dy*dy + dz*dz
}

// Dist returns distance between a and b
func Dist(a, b Vec3) float64 {
	return math.Sqrt(DistSq(a, b))
}

// SafeNormalize returns the unit vector of v, or the zero vector when v has no length
// mgl64.Vec3.Normalize divides by zero on the zero vector
func SafeNormalize(v Vec3) Vec3 {
	magSq := v.LenSqr()
	if magSq == 0 {
		return Vec3{}
	}
	inv := 1.0 / math.Sqrt(magSq)
	return Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// IsFinite reports whether every component is neither NaN nor Inf
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual compares component-wise within eps
func ApproxEqual(a, b Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps &&
		math.Abs(a[1]-b[1]) <= eps &&
		math.Abs(a[2]-b[2]) <= eps
}
