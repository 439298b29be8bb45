package physics

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/vmath"
)

// DefaultPredictDt is the prediction step, independent of the simulation tick
const DefaultPredictDt = 0.01

// Step limits accepted by interactive editors; the predictor itself only rejects steps <= 0
const (
	MinPredictSteps     = 1
	MaxPredictSteps     = 30000
	DefaultPredictSteps = 500
)

// Segment is one predicted step of a body's path
type Segment struct {
	From, To vmath.Vec3
}

// Polyline is the predicted path of one body
type Polyline struct {
	ID       body.ID
	Color    colorful.Color
	Segments []Segment
}

// End returns the last predicted point, or false for an empty path
func (p *Polyline) End() (vmath.Vec3, bool) {
	if len(p.Segments) == 0 {
		return vmath.Vec3{}, false
	}
	return p.Segments[len(p.Segments)-1].To, true
}

// Length returns the summed segment length
func (p *Polyline) Length() float64 {
	var l float64
	for _, s := range p.Segments {
		l += vmath.Dist(s.From, s.To)
	}
	return l
}

// PredictTrajectories forward-simulates a copy of bodies with the default force law
func PredictTrajectories(bodies []body.Body, steps int, dt float64) []Polyline {
	return Newtonian.PredictTrajectories(bodies, steps, dt)
}

// PredictTrajectories returns one polyline of steps segments per body, in body order
// bodies is never written; each iteration reads only the state from before that iteration
// Zero bodies, steps <= 0 or dt <= 0 yield nil
func (g Gravity) PredictTrajectories(bodies []body.Body, steps int, dt float64) []Polyline {
	n := len(bodies)
	if n == 0 || steps <= 0 || !(dt > 0) {
		return nil
	}

	cur := make([]state, n)
	prev := make([]state, n)
	deltas := make([]vmath.Vec3, n)
	out := make([]Polyline, n)

	// One backing array for all segments
	segs := make([]Segment, n*steps)
	for i := range bodies {
		cur[i] = state{mass: bodies[i].Mass, pos: bodies[i].Position, vel: bodies[i].Velocity}
		out[i] = Polyline{
			ID:       bodies[i].ID,
			Color:    bodies[i].Color,
			Segments: segs[i*steps : i*steps : (i+1)*steps],
		}
	}

	for s := 0; s < steps; s++ {
		copy(prev, cur)
		g.accumulate(prev, deltas, dt)

		for i := range cur {
			cur[i].vel = cur[i].vel.Add(deltas[i])
			cur[i].pos = cur[i].pos.Add(cur[i].vel.Mul(dt))
			out[i].Segments = append(out[i].Segments, Segment{From: prev[i].pos, To: cur[i].pos})
		}
	}

	return out
}
