package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/gravsim/vmath"
)

// CellAspect is the height:width ratio of a terminal cell
const CellAspect = 2.0

// Camera limits
const (
	MinDistance = 5.0
	MaxDistance = 1e5
	maxPitch    = math.Pi/2 - 0.01
)

var worldUp = mgl64.Vec3{0, 1, 0}

// Camera orbits Target at Distance; Yaw turns around +Y, Pitch lifts toward +Y
type Camera struct {
	Target   vmath.Vec3
	Distance float64
	Yaw      float64
	Pitch    float64
	FovY     float64
	Near     float64
	Far      float64
}

// Projected is a world point mapped to cell coordinates
// Scale is rows per world unit at the point's depth; columns per unit is Scale*CellAspect
type Projected struct {
	X, Y  float64
	Depth float64
	Scale float64
}

// NewCamera creates a camera at pos looking at target
func NewCamera(pos, target vmath.Vec3) *Camera {
	c := &Camera{
		Target: target,
		FovY:   mgl64.DegToRad(60),
		Near:   0.1,
		Far:    1e6,
	}
	c.LookFrom(pos)
	return c
}

// LookFrom moves the camera to pos, keeping the target
func (c *Camera) LookFrom(pos vmath.Vec3) {
	off := pos.Sub(c.Target)
	d := off.Len()
	if d < MinDistance {
		off = vmath.Vec3{0, 0, MinDistance}
		d = MinDistance
	}
	c.Distance = math.Min(d, MaxDistance)
	c.Yaw = math.Atan2(off.X(), off.Z())
	c.Pitch = mgl64.Clamp(math.Asin(off.Y()/d), -maxPitch, maxPitch)
}

// Position returns the eye position
func (c *Camera) Position() vmath.Vec3 {
	cp := math.Cos(c.Pitch)
	return c.Target.Add(vmath.Vec3{
		c.Distance * cp * math.Sin(c.Yaw),
		c.Distance * math.Sin(c.Pitch),
		c.Distance * cp * math.Cos(c.Yaw),
	})
}

// Orbit rotates around the target; pitch stays short of the poles
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = mgl64.Clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
}

// Zoom scales the distance to the target
func (c *Camera) Zoom(factor float64) {
	if !(factor > 0) {
		return
	}
	c.Distance = mgl64.Clamp(c.Distance*factor, MinDistance, MaxDistance)
}

// View returns the world-to-camera matrix
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position(), c.Target, worldUp)
}

// Projection returns the perspective matrix for a w x h cell viewport
func (c *Camera) Projection(w, h int) mgl64.Mat4 {
	return mgl64.Perspective(c.FovY, aspect(w, h), c.Near, c.Far)
}

// Project maps p to cell coordinates; false when p is behind the near plane
func (c *Camera) Project(p vmath.Vec3, w, h int) (Projected, bool) {
	if w <= 0 || h <= 0 {
		return Projected{}, false
	}
	view := c.View()
	depth := -view.Mul4x1(p.Vec4(1)).Z()
	if depth <= c.Near {
		return Projected{}, false
	}

	win := mgl64.Project(p, view, c.Projection(w, h), 0, 0, w, h)
	return Projected{
		X:     win.X(),
		Y:     float64(h) - win.Y(),
		Depth: depth,
		Scale: float64(h) / 2 / (math.Tan(c.FovY/2) * depth),
	}, true
}

// Ray returns the world ray through cell coordinates (sx, sy)
// Pass cell centers (x+0.5, y+0.5) to pick what is drawn in a cell
func (c *Camera) Ray(sx, sy float64, w, h int) vmath.Ray {
	view := c.View()
	proj := c.Projection(w, h)
	wy := float64(h) - sy

	near, errNear := mgl64.UnProject(mgl64.Vec3{sx, wy, 0}, view, proj, 0, 0, w, h)
	far, errFar := mgl64.UnProject(mgl64.Vec3{sx, wy, 1}, view, proj, 0, 0, w, h)
	if errNear != nil || errFar != nil {
		eye := c.Position()
		return vmath.NewRay(eye, c.Target.Sub(eye))
	}
	return vmath.NewRay(near, far.Sub(near))
}

func aspect(w, h int) float64 {
	if h <= 0 {
		return 1
	}
	return float64(w) / (float64(h) * CellAspect)
}
