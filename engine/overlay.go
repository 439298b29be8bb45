package engine

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/vmath"
)

// Arrow is a colored world-space segment drawn with a head at To
type Arrow struct {
	From, To vmath.Vec3
	Color    colorful.Color
}

// Axis colors for the selection gizmo
var (
	AxisX = colorful.Color{R: 1, G: 0.25, B: 0.25}
	AxisY = colorful.Color{R: 0.25, G: 1, B: 0.25}
	AxisZ = colorful.Color{R: 0.3, G: 0.5, B: 1}
)

// VelocityArrows returns one arrow per body from its position to position + velocity/radius
func VelocityArrows(bodies []body.Body) []Arrow {
	if len(bodies) == 0 {
		return nil
	}
	out := make([]Arrow, 0, len(bodies))
	for i := range bodies {
		b := &bodies[i]
		if b.Radius <= 0 {
			continue
		}
		out = append(out, Arrow{
			From:  b.Position,
			To:    b.Position.Add(b.Velocity.Mul(1 / b.Radius)),
			Color: b.Color,
		})
	}
	return out
}

// AxisGizmo returns the X, Y and Z arrows of length 2*radius anchored on b
func AxisGizmo(b *body.Body) [3]Arrow {
	l := 2 * b.Radius
	p := b.Position
	return [3]Arrow{
		{From: p, To: p.Add(vmath.Vec3{l, 0, 0}), Color: AxisX},
		{From: p, To: p.Add(vmath.Vec3{0, l, 0}), Color: AxisY},
		{From: p, To: p.Add(vmath.Vec3{0, 0, l}), Color: AxisZ},
	}
}
