package physics

import (
	"math"

	"github.com/lixenwraith/gravsim/vmath"
)

// OrbitalSpeed returns the circular orbit speed sqrt(G*M/r) at distance r from a central mass
func (g Gravity) OrbitalSpeed(centralMass, r float64) float64 {
	if r <= 0 || centralMass <= 0 {
		return 0
	}
	return math.Sqrt(g.G * centralMass / r)
}

// OrbitalInsert returns the velocity, relative to the center, for a circular orbit in the XZ plane
// Tangent is perpendicular to the radius vector projected onto XZ; a point on the Y axis gets zero
func (g Gravity) OrbitalInsert(center, pos vmath.Vec3, centralMass float64) vmath.Vec3 {
	dx := pos[0] - center[0]
	dz := pos[2] - center[2]
	r := math.Hypot(dx, dz)
	if r == 0 {
		return vmath.Vec3{}
	}

	speed := g.OrbitalSpeed(centralMass, vmath.Dist(center, pos))
	return vmath.Vec3{-dz / r * speed, 0, dx / r * speed}
}
