package render

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/engine"
	"github.com/lixenwraith/gravsim/physics"
	"github.com/lixenwraith/gravsim/vmath"
)

// Palette
var (
	Background   = colorful.Color{R: 0.04, G: 0.04, B: 0.07}
	white        = colorful.Color{R: 1, G: 1, B: 1}
	hudColor     = colorful.Color{R: 0.75, G: 0.78, B: 0.85}
	dimColor     = colorful.Color{R: 0.4, G: 0.4, B: 0.45}
	pausedColor  = colorful.Color{R: 1, G: 0.78, B: 0.2}
	runningColor = colorful.Color{R: 0.35, G: 0.9, B: 0.45}
)

// Fallback light in camera space when the scene has no star
var headLight = vmath.SafeNormalize(vmath.Vec3{-0.4, 0.5, 0.77})

const (
	trajectoryRune = '·'
	tinyBodyRune   = '•'
	ambient        = 0.12
)

// View is everything the renderer draws for one frame
type View struct {
	Bodies   []body.Body
	Selected body.ID
	Frame    engine.FrameResult
	State    engine.RunState
	SimTime  float64
	Steps    int
	Muted    bool

	DrawTrajectories bool
	DrawVelocities   bool

	Message string
	Metrics []string
}

// Renderer composes the scene into a Buffer and flushes it to a tcell screen
type Renderer struct {
	Camera *Camera

	buf   *Buffer
	projs []Projected
	vis   []bool
	order []int
}

// NewRenderer creates a renderer drawing through cam
func NewRenderer(cam *Camera) *Renderer {
	return &Renderer{
		Camera: cam,
		buf:    NewBuffer(0, 0, Background),
	}
}

// Buffer exposes the last composed frame
func (r *Renderer) Buffer() *Buffer {
	return r.buf
}

// Draw composes v at the screen size and shows it
func (r *Renderer) Draw(screen tcell.Screen, v View) {
	w, h := screen.Size()
	r.Compose(w, h, v)
	r.buf.Flush(screen)
	screen.Show()
}

// RayAt returns the pick ray through the center of cell (x, y)
func (r *Renderer) RayAt(x, y, w, h int) vmath.Ray {
	return r.Camera.Ray(float64(x)+0.5, float64(y)+0.5, w, h)
}

// Compose draws trajectories, bodies far to near, overlays, then the HUD
func (r *Renderer) Compose(w, h int, v View) {
	if bw, bh := r.buf.Bounds(); bw != w || bh != h {
		r.buf.Resize(w, h)
	} else {
		r.buf.Clear()
	}
	if w == 0 || h == 0 {
		return
	}

	for i := range v.Frame.Trajectories {
		r.drawPolyline(&v.Frame.Trajectories[i], w, h)
	}

	r.projectBodies(v.Bodies, w, h)
	light, hasStar := brightestStar(v.Bodies)
	view := r.Camera.View()
	for _, i := range r.order {
		b := &v.Bodies[i]
		l := headLight
		if hasStar && !b.Kind.IsStar() {
			dir := vmath.SafeNormalize(light.Sub(b.Position))
			if dir != (vmath.Vec3{}) {
				l = view.Mul4x1(dir.Vec4(0)).Vec3()
			}
		}
		r.drawBody(b, r.projs[i], b.ID == v.Selected, l)
	}

	for _, a := range v.Frame.Arrows {
		r.drawArrow(a, w, h, '•')
	}
	for i, a := range v.Frame.Gizmo {
		r.drawArrow(a, w, h, rune('x'+i))
	}

	r.drawHUD(w, h, v)
}

func (r *Renderer) projectBodies(bodies []body.Body, w, h int) {
	n := len(bodies)
	if cap(r.projs) < n {
		r.projs = make([]Projected, n)
		r.vis = make([]bool, n)
		r.order = make([]int, 0, n)
	}
	r.projs = r.projs[:n]
	r.vis = r.vis[:n]
	r.order = r.order[:0]

	for i := range bodies {
		r.projs[i], r.vis[i] = r.Camera.Project(bodies[i].Position, w, h)
		if r.vis[i] {
			r.order = append(r.order, i)
		}
	}
	sort.SliceStable(r.order, func(a, b int) bool {
		return r.projs[r.order[a]].Depth > r.projs[r.order[b]].Depth
	})
}

func brightestStar(bodies []body.Body) (vmath.Vec3, bool) {
	best := 0.0
	var pos vmath.Vec3
	for i := range bodies {
		if li := bodies[i].LightIntensity(); li > best {
			best = li
			pos = bodies[i].Position
		}
	}
	return pos, best > 0
}

// glowExtent is how far past the disk a star's glow reaches, in radii
func glowExtent(intensity float64) float64 {
	if intensity <= 0 {
		return 0
	}
	return math.Min(2, 0.35*math.Log1p(intensity))
}

func (r *Renderer) drawBody(b *body.Body, p Projected, selected bool, light vmath.Vec3) {
	rr := b.Radius * p.Scale
	base := b.Color.Clamped()

	if rr < 0.35 {
		c := base
		if selected {
			c = white
		}
		r.buf.SetFgOnly(int(math.Floor(p.X)), int(math.Floor(p.Y)), tinyBodyRune, c, tcell.AttrBold)
		return
	}

	star := b.Kind.IsStar()
	glow := 1 + glowExtent(b.LightIntensity())
	rc := rr * CellAspect

	minX := int(math.Floor(p.X - rc*glow))
	maxX := int(math.Ceil(p.X + rc*glow))
	minY := int(math.Floor(p.Y - rr*glow))
	maxY := int(math.Ceil(p.Y + rr*glow))

	for sy := minY; sy <= maxY; sy++ {
		for sx := minX; sx <= maxX; sx++ {
			nx := (float64(sx) + 0.5 - p.X) / rc
			ny := (float64(sy) + 0.5 - p.Y) / rr
			d2 := nx*nx + ny*ny

			if d2 <= 1 {
				var c colorful.Color
				if star {
					core := 1 - math.Sqrt(d2)
					c = base.BlendRgb(white, 0.6*core)
				} else {
					nz := math.Sqrt(1 - d2)
					diff := math.Max(0, nx*light.X()-ny*light.Y()+nz*light.Z())
					c = Scale(base, ambient+(1-ambient)*diff)
				}
				if selected && d2 > 0.7 {
					c = c.BlendRgb(white, 0.5)
				}
				r.buf.Set(sx, sy, ' ', colorful.Color{}, c, BlendReplace, 1)
				continue
			}

			if star {
				d := math.Sqrt(d2)
				if d <= glow {
					fall := 0.6 * math.Exp(-3*(d-1)/(glow-1))
					r.buf.Set(sx, sy, 0, colorful.Color{}, base, BlendScreenBg, fall)
				}
			}
		}
	}
}

func (r *Renderer) drawPolyline(p *physics.Polyline, w, h int) {
	if len(p.Segments) == 0 {
		return
	}
	c := Scale(p.Color, 0.65)
	prev, prevOK := r.Camera.Project(p.Segments[0].From, w, h)
	for _, s := range p.Segments {
		next, ok := r.Camera.Project(s.To, w, h)
		if prevOK && ok {
			r.line(prev.X, prev.Y, next.X, next.Y, w, h, func(x, y int) {
				r.buf.SetFgOnly(x, y, trajectoryRune, c, tcell.AttrNone)
			})
		}
		prev, prevOK = next, ok
	}
}

func (r *Renderer) drawArrow(a engine.Arrow, w, h int, tip rune) {
	from, ok1 := r.Camera.Project(a.From, w, h)
	to, ok2 := r.Camera.Project(a.To, w, h)
	if !ok1 || !ok2 {
		return
	}
	c := a.Color.Clamped()
	shaft := lineRune(to.X-from.X, to.Y-from.Y)
	r.line(from.X, from.Y, to.X, to.Y, w, h, func(x, y int) {
		r.buf.SetFgOnly(x, y, shaft, c, tcell.AttrNone)
	})
	r.buf.SetFgOnly(int(math.Floor(to.X)), int(math.Floor(to.Y)), tip, c, tcell.AttrBold)
}

// line plots the clipped segment cell by cell
func (r *Renderer) line(x1, y1, x2, y2 float64, w, h int, plot func(x, y int)) {
	x1, y1, x2, y2, ok := vmath.ClipSegment(x1, y1, x2, y2, 0, 0, float64(w)-1e-9, float64(h)-1e-9)
	if !ok {
		return
	}
	vmath.Traverse(x1, y1, x2, y2, func(x, y int) bool {
		plot(x, y)
		return true
	})
}

// lineRune picks a box-drawing rune for a screen-space direction, correcting for cell aspect
func lineRune(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)*CellAspect
	switch {
	case ax > 2*ay:
		return '─'
	case ay > 2*ax:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}
