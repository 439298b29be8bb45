package physics

import (
	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/vmath"
)

// Integrator advances the live body set with semi-implicit Euler under all-pairs gravity
// Scratch buffers are reused across ticks; an Integrator is owned by one frame loop
type Integrator struct {
	Gravity Gravity

	src    []state
	deltas []vmath.Vec3
}

// NewIntegrator creates an integrator for the given force law
func NewIntegrator(g Gravity) *Integrator {
	return &Integrator{Gravity: g}
}

// Integrate advances bodies by one tick of dt using the default force law
func Integrate(bodies []body.Body, dt float64) {
	var in Integrator
	in.Gravity = Newtonian
	in.Integrate(bodies, dt)
}

// Integrate updates every velocity from one consistent position set, then every position from the new velocity
// dt <= 0 and empty sets are no-ops
func (in *Integrator) Integrate(bodies []body.Body, dt float64) {
	n := len(bodies)
	if n == 0 || !(dt > 0) {
		return
	}

	in.ensure(n)
	for i := range bodies {
		in.src[i] = state{mass: bodies[i].Mass, pos: bodies[i].Position}
	}

	in.Gravity.accumulate(in.src, in.deltas, dt)

	for i := range bodies {
		bodies[i].Velocity = bodies[i].Velocity.Add(in.deltas[i])
	}
	for i := range bodies {
		bodies[i].Position = bodies[i].Position.Add(bodies[i].Velocity.Mul(dt))
	}
}

func (in *Integrator) ensure(n int) {
	if cap(in.src) < n {
		in.src = make([]state, n)
		in.deltas = make([]vmath.Vec3, n)
	}
	in.src = in.src[:n]
	in.deltas = in.deltas[:n]
}
