package physics

import (
	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/vmath"
)

// Pick returns the first body in iteration order whose center lies closer to the ray's line than its radius
// This is a cylinder test: hits behind the origin count and nearer overlapping bodies do not take precedence
func Pick(bodies []body.Body, ray vmath.Ray) (body.ID, bool) {
	for i := range bodies {
		b := &bodies[i]
		if ray.LineDistanceSq(b.Position) < b.Radius*b.Radius {
			return b.ID, true
		}
	}
	return body.NoID, false
}
