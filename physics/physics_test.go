package physics

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/vmath"
)

func mk(id body.ID, mass, radius float64, pos, vel vmath.Vec3) body.Body {
	b := body.New("b", body.Planet(), mass, radius, pos, vel, colorful.Color{R: 1})
	b.ID = id
	return b
}

func sunAndPlanet() []body.Body {
	return []body.Body{
		mk(1, 1e6, 10, vmath.Vec3{0, 0, 0}, vmath.Vec3{0, 0, 0}),
		mk(2, 1e3, 3, vmath.Vec3{100, 0, 0}, vmath.Vec3{0, 0, 100}),
	}
}

// --- Force law ---

func TestVelocityDeltaFormula(t *testing.T) {
	g := Gravity{G: 2}
	dv := g.VelocityDelta(vmath.Vec3{0, 0, 0}, vmath.Vec3{0, 4, 0}, 8, 0.5)
	// 0.5 * 2 * 8 / 16 = 0.5 toward +Y
	if !vmath.ApproxEqual(dv, vmath.Vec3{0, 0.5, 0}, 1e-12) {
		t.Errorf("Expected (0,0.5,0), got %v", dv)
	}
}

func TestVelocityDeltaCoincident(t *testing.T) {
	dv := Newtonian.VelocityDelta(vmath.Vec3{1, 1, 1}, vmath.Vec3{1, 1, 1}, 100, 1)
	if dv != (vmath.Vec3{}) {
		t.Errorf("Expected zero contribution for coincident bodies, got %v", dv)
	}
}

func TestVelocityDeltaNearCoincident(t *testing.T) {
	// distSq is subnormal, so G*m/distSq overflows
	dv := Newtonian.VelocityDelta(vmath.Vec3{}, vmath.Vec3{1e-155, 0, 0}, 1e6, 0.01)
	if dv != (vmath.Vec3{}) {
		t.Errorf("Expected zero contribution for near-coincident bodies, got %v", dv)
	}
}

func TestVelocityDeltaDecreasesWithDistance(t *testing.T) {
	prev := math.Inf(1)
	for _, d := range []float64{1, 10, 100, 1e3, 1e4, 1e6} {
		mag := Newtonian.VelocityDelta(vmath.Vec3{}, vmath.Vec3{d, 0, 0}, 1e3, 0.1).Len()
		if !(mag < prev) {
			t.Errorf("Expected monotonic decrease at distance %g: %g >= %g", d, mag, prev)
		}
		prev = mag
	}
	if prev > 1e-9 {
		t.Errorf("Expected near-zero delta at huge separation, got %g", prev)
	}
}

// --- Integrator ---

func TestIntegrateSymmetry(t *testing.T) {
	bodies := []body.Body{
		mk(1, 50, 1, vmath.Vec3{-5, 1, 2}, vmath.Vec3{}),
		mk(2, 50, 1, vmath.Vec3{7, -3, 4}, vmath.Vec3{}),
	}
	Integrate(bodies, 0.1)

	dv0, dv1 := bodies[0].Velocity, bodies[1].Velocity
	if math.Abs(dv0.Len()-dv1.Len()) > 1e-12 {
		t.Errorf("Expected equal magnitudes, got %g and %g", dv0.Len(), dv1.Len())
	}
	if !vmath.ApproxEqual(dv0.Add(dv1), vmath.Vec3{}, 1e-12) {
		t.Errorf("Expected opposite directions, sum is %v", dv0.Add(dv1))
	}
}

func TestIntegrateSingleBody(t *testing.T) {
	vel := vmath.Vec3{1.5, -2, 0.25}
	pos := vmath.Vec3{10, 20, 30}
	bodies := []body.Body{mk(1, 5, 1, pos, vel)}

	Integrate(bodies, 0.2)

	if bodies[0].Velocity != vel {
		t.Errorf("Expected velocity unchanged %v, got %v", vel, bodies[0].Velocity)
	}
	want := pos.Add(vel.Mul(0.2))
	if bodies[0].Position != want {
		t.Errorf("Expected position %v, got %v", want, bodies[0].Position)
	}
}

func TestIntegrateSemiImplicit(t *testing.T) {
	// Position must move by the updated velocity, not the old one
	bodies := []body.Body{
		mk(1, 1, 1, vmath.Vec3{0, 0, 0}, vmath.Vec3{}),
		mk(2, 100, 1, vmath.Vec3{10, 0, 0}, vmath.Vec3{}),
	}
	Integrate(bodies, 1)

	// dv = 1 * 100 / 100 = 1 toward +X, so position = 0 + 1*1
	if !vmath.ApproxEqual(bodies[0].Position, vmath.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("Expected (1,0,0), got %v", bodies[0].Position)
	}
}

func TestIntegrateOrderIndependent(t *testing.T) {
	a := []body.Body{
		mk(1, 10, 1, vmath.Vec3{0, 0, 0}, vmath.Vec3{1, 0, 0}),
		mk(2, 20, 1, vmath.Vec3{5, 1, 0}, vmath.Vec3{0, 1, 0}),
		mk(3, 30, 1, vmath.Vec3{-3, 4, 2}, vmath.Vec3{0, 0, 1}),
	}
	b := []body.Body{a[2], a[0], a[1]}

	Integrate(a, 0.05)
	Integrate(b, 0.05)

	byID := map[body.ID]body.Body{}
	for _, x := range b {
		byID[x.ID] = x
	}
	for _, x := range a {
		y := byID[x.ID]
		if !vmath.ApproxEqual(x.Position, y.Position, 1e-12) || !vmath.ApproxEqual(x.Velocity, y.Velocity, 1e-12) {
			t.Errorf("Body %d diverged between orderings: %v/%v vs %v/%v", x.ID, x.Position, x.Velocity, y.Position, y.Velocity)
		}
	}
}

func TestIntegrateCoincidentNoNaN(t *testing.T) {
	bodies := []body.Body{
		mk(1, 10, 1, vmath.Vec3{3, 3, 3}, vmath.Vec3{}),
		mk(2, 10, 1, vmath.Vec3{3, 3, 3}, vmath.Vec3{}),
	}
	Integrate(bodies, 0.1)
	for _, b := range bodies {
		if !vmath.IsFinite(b.Position) || !vmath.IsFinite(b.Velocity) {
			t.Errorf("Body %d produced non-finite state %v %v", b.ID, b.Position, b.Velocity)
		}
	}
}

func TestIntegrateNearCoincidentNoNaN(t *testing.T) {
	bodies := []body.Body{
		mk(1, 1e6, 10, vmath.Vec3{}, vmath.Vec3{}),
		mk(2, 1e3, 3, vmath.Vec3{1e-155, 0, 0}, vmath.Vec3{}),
	}
	for i := 0; i < 3; i++ {
		Integrate(bodies, 0.01)
	}
	for _, b := range bodies {
		if !vmath.IsFinite(b.Position) || !vmath.IsFinite(b.Velocity) {
			t.Errorf("Body %d produced non-finite state %v %v", b.ID, b.Position, b.Velocity)
		}
	}
}

func TestIntegrateInvalidParams(t *testing.T) {
	Integrate(nil, 0.1)

	bodies := sunAndPlanet()
	before := append([]body.Body(nil), bodies...)
	Integrate(bodies, 0)
	Integrate(bodies, -1)
	Integrate(bodies, math.NaN())
	for i := range bodies {
		if bodies[i] != before[i] {
			t.Errorf("Expected no-op for invalid dt, body %d changed", i)
		}
	}
}

func TestIntegratorReusesBuffers(t *testing.T) {
	in := NewIntegrator(Newtonian)
	a := sunAndPlanet()
	b := sunAndPlanet()
	for i := 0; i < 10; i++ {
		in.Integrate(a, 1.0/60)
		Integrate(b, 1.0/60)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Expected identical results from reused integrator, body %d differs", i)
		}
	}
}

func TestTwoBodyOrbitRegression(t *testing.T) {
	bodies := sunAndPlanet()
	in := NewIntegrator(Newtonian)
	dt := 1.0 / 60

	minD, maxD := math.Inf(1), 0.0
	for tick := 0; tick < 600; tick++ {
		in.Integrate(bodies, dt)
		d := vmath.Dist(bodies[0].Position, bodies[1].Position)
		minD = math.Min(minD, d)
		maxD = math.Max(maxD, d)
	}

	if minD < 95 || maxD > 105 {
		t.Errorf("Expected bounded orbit within [95,105], got [%f,%f]", minD, maxD)
	}

	wantPlanet := vmath.Vec3{-81.20075795096866, 0, -57.604352045087246}
	wantSun := vmath.Vec3{0.18120075795096977, 0, 1.0576043520450875}
	if !vmath.ApproxEqual(bodies[1].Position, wantPlanet, 1e-6) {
		t.Errorf("Planet at tick 600: expected %v, got %v", wantPlanet, bodies[1].Position)
	}
	if !vmath.ApproxEqual(bodies[0].Position, wantSun, 1e-6) {
		t.Errorf("Sun at tick 600: expected %v, got %v", wantSun, bodies[0].Position)
	}
}

// --- Predictor ---

func TestPredictSnapshotIsolation(t *testing.T) {
	bodies := sunAndPlanet()
	before := append([]body.Body(nil), bodies...)

	_ = PredictTrajectories(bodies, 200, DefaultPredictDt)

	for i := range bodies {
		if bodies[i].Position != before[i].Position || bodies[i].Velocity != before[i].Velocity {
			t.Errorf("Body %d mutated by prediction", i)
		}
	}
}

func TestPredictShape(t *testing.T) {
	bodies := sunAndPlanet()
	paths := PredictTrajectories(bodies, 25, DefaultPredictDt)

	if len(paths) != 2 {
		t.Fatalf("Expected 2 polylines, got %d", len(paths))
	}
	for i, p := range paths {
		if p.ID != bodies[i].ID {
			t.Errorf("Expected polyline %d for body %d, got %d", i, bodies[i].ID, p.ID)
		}
		if len(p.Segments) != 25 {
			t.Errorf("Expected 25 segments, got %d", len(p.Segments))
		}
		if p.Segments[0].From != bodies[i].Position {
			t.Errorf("Expected path to start at body position")
		}
		for s := 1; s < len(p.Segments); s++ {
			if p.Segments[s].From != p.Segments[s-1].To {
				t.Errorf("Polyline %d discontinuous at segment %d", i, s)
				break
			}
		}
	}
}

func TestPredictMatchesIntegrator(t *testing.T) {
	bodies := sunAndPlanet()
	paths := PredictTrajectories(bodies, 50, 0.01)

	sim := sunAndPlanet()
	for s := 0; s < 50; s++ {
		Integrate(sim, 0.01)
	}
	for i := range sim {
		end, ok := paths[i].End()
		if !ok {
			t.Fatalf("Expected non-empty path for body %d", i)
		}
		if !vmath.ApproxEqual(end, sim[i].Position, 1e-9) {
			t.Errorf("Body %d: predicted end %v, integrated %v", i, end, sim[i].Position)
		}
	}
}

func TestPredictSingleBodyStraightLine(t *testing.T) {
	bodies := []body.Body{mk(1, 1, 1, vmath.Vec3{0, 0, 0}, vmath.Vec3{1, 2, 0})}
	paths := PredictTrajectories(bodies, 10, 0.5)
	end, _ := paths[0].End()
	if !vmath.ApproxEqual(end, vmath.Vec3{5, 10, 0}, 1e-12) {
		t.Errorf("Expected straight line end (5,10,0), got %v", end)
	}
	if math.Abs(paths[0].Length()-vmath.Vec3{5, 10, 0}.Len()) > 1e-9 {
		t.Errorf("Expected path length %f, got %f", vmath.Vec3{5, 10, 0}.Len(), paths[0].Length())
	}
}

func TestPredictDegenerateInputs(t *testing.T) {
	if p := PredictTrajectories(nil, 10, 0.01); len(p) != 0 {
		t.Errorf("Expected empty output for no bodies, got %d", len(p))
	}
	if p := PredictTrajectories(sunAndPlanet(), 0, 0.01); len(p) != 0 {
		t.Errorf("Expected empty output for zero steps, got %d", len(p))
	}
	if p := PredictTrajectories(sunAndPlanet(), 10, 0); len(p) != 0 {
		t.Errorf("Expected empty output for zero dt, got %d", len(p))
	}
}

func TestPredictDegeneratePairsStayFinite(t *testing.T) {
	tests := []struct {
		name string
		posB vmath.Vec3
	}{
		{"coincident", vmath.Vec3{}},
		{"near coincident", vmath.Vec3{1e-155, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := []body.Body{
				mk(1, 1e6, 10, vmath.Vec3{}, vmath.Vec3{}),
				mk(2, 1e3, 3, tt.posB, vmath.Vec3{}),
			}
			paths := PredictTrajectories(bodies, 20, 0.01)
			if len(paths) != 2 {
				t.Fatalf("Expected 2 paths, got %d", len(paths))
			}
			for _, p := range paths {
				for i, seg := range p.Segments {
					if !vmath.IsFinite(seg.From) || !vmath.IsFinite(seg.To) {
						t.Fatalf("Body %d segment %d not finite: %v -> %v", p.ID, i, seg.From, seg.To)
					}
				}
			}
		})
	}
}

// --- Picker ---

func TestPickHitAndMiss(t *testing.T) {
	bodies := []body.Body{mk(7, 1, 5, vmath.Vec3{0, 0, 0}, vmath.Vec3{})}

	id, ok := Pick(bodies, vmath.NewRay(vmath.Vec3{0, 0, 100}, vmath.Vec3{0, 0, -1}))
	if !ok || id != 7 {
		t.Errorf("Expected hit on body 7, got %d (%v)", id, ok)
	}

	id, ok = Pick(bodies, vmath.NewRay(vmath.Vec3{10, 0, 100}, vmath.Vec3{0, 0, -1}))
	if ok {
		t.Errorf("Expected miss at perpendicular distance 10, got %d", id)
	}
}

func TestPickFirstInIterationOrder(t *testing.T) {
	bodies := []body.Body{
		mk(1, 1, 5, vmath.Vec3{0, 0, -50}, vmath.Vec3{}),
		mk(2, 1, 5, vmath.Vec3{0, 0, 50}, vmath.Vec3{}),
	}
	// Body 2 is nearer the origin of the ray but body 1 comes first
	id, ok := Pick(bodies, vmath.NewRay(vmath.Vec3{0, 0, 100}, vmath.Vec3{0, 0, -1}))
	if !ok || id != 1 {
		t.Errorf("Expected first body in iteration order (1), got %d", id)
	}
}

func TestPickBehindOriginCounts(t *testing.T) {
	bodies := []body.Body{mk(3, 1, 2, vmath.Vec3{0, 0, 200}, vmath.Vec3{})}
	id, ok := Pick(bodies, vmath.NewRay(vmath.Vec3{0, 0, 100}, vmath.Vec3{0, 0, -1}))
	if !ok || id != 3 {
		t.Errorf("Expected cylinder test to hit body behind origin, got %d (%v)", id, ok)
	}
}

func TestPickEmpty(t *testing.T) {
	if _, ok := Pick(nil, vmath.NewRay(vmath.Vec3{}, vmath.Vec3{0, 0, 1})); ok {
		t.Error("Expected no hit on empty set")
	}
}

// --- Orbital ---

func TestOrbitalInsert(t *testing.T) {
	v := Newtonian.OrbitalInsert(vmath.Vec3{}, vmath.Vec3{100, 0, 0}, 1e6)
	if !vmath.ApproxEqual(v, vmath.Vec3{0, 0, 100}, 1e-9) {
		t.Errorf("Expected (0,0,100), got %v", v)
	}
	if v := Newtonian.OrbitalInsert(vmath.Vec3{}, vmath.Vec3{0, 5, 0}, 1e6); v != (vmath.Vec3{}) {
		t.Errorf("Expected zero velocity on the Y axis, got %v", v)
	}
}
