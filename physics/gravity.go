package physics

import (
	"github.com/lixenwraith/gravsim/vmath"
)

// DefaultG is the unit-free gravitational constant of the sandbox
const DefaultG = 1.0

// Gravity holds the force law parameters shared by the integrator and the predictor
type Gravity struct {
	G float64
}

// Newtonian is the default force law
var Newtonian = Gravity{G: DefaultG}

// VelocityDelta returns the velocity change imparted on a body at posI by a body of massJ at posJ over dt
// dv = dt * G * massJ * normalize(posJ - posI) / |posJ - posI|^2
// The mass of i cancels out of its own acceleration and does not appear
// Coincident or near-coincident positions whose delta is not finite contribute zero
func (g Gravity) VelocityDelta(posI, posJ vmath.Vec3, massJ, dt float64) vmath.Vec3 {
	delta := posJ.Sub(posI)
	distSq := delta.LenSqr()
	if distSq == 0 {
		return vmath.Vec3{}
	}

	accel := g.G * massJ / distSq
	dv := vmath.SafeNormalize(delta).Mul(dt * accel)
	if !vmath.IsFinite(dv) {
		return vmath.Vec3{}
	}
	return dv
}

// state is the kinematic subset read during a pass
type state struct {
	mass float64
	pos  vmath.Vec3
	vel  vmath.Vec3
}

// accumulate writes the all-pairs velocity delta of every body into deltas
// Reads only src, so every delta is computed from one consistent set of positions
func (g Gravity) accumulate(src []state, deltas []vmath.Vec3, dt float64) {
	for i := range src {
		var dv vmath.Vec3
		for j := range src {
			if i == j {
				continue
			}
			dv = dv.Add(g.VelocityDelta(src[i].pos, src[j].pos, src[j].mass, dt))
		}
		deltas[i] = dv
	}
}
