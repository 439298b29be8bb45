package engine

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/physics"
	"github.com/lixenwraith/gravsim/status"
	"github.com/lixenwraith/gravsim/vmath"
)

// Accepted tick rates; outside this range a tick does not fit a positive time.Duration
const (
	MinTickHz = 1e-3
	MaxTickHz = 1e6
)

// Settings configures the frame stepper
type Settings struct {
	TickHz           float64
	MaxTicksPerFrame int
	G                float64
	PredictSteps     int
	PredictDt        float64
	DrawTrajectories bool
	DrawVelocities   bool
	MissPolicy       MissPolicy
}

// DefaultSettings returns 60 Hz ticks, G = 1 and a 500 step prediction at dt 0.01
func DefaultSettings() Settings {
	return Settings{
		TickHz:           60,
		MaxTicksPerFrame: 8,
		G:                physics.DefaultG,
		PredictSteps:     physics.DefaultPredictSteps,
		PredictDt:        physics.DefaultPredictDt,
		DrawTrajectories: true,
		DrawVelocities:   false,
		MissPolicy:       KeepOnMiss,
	}
}

// TickDt returns the fixed integration step in seconds
func (s Settings) TickDt() float64 {
	return 1 / s.TickHz
}

// TickDuration returns the fixed step as a duration, used for exact accumulation
func (s Settings) TickDuration() time.Duration {
	return time.Duration(float64(time.Second) / s.TickHz)
}

// ValidTickHz reports whether hz is finite, within range and yields a positive tick
func ValidTickHz(hz float64) bool {
	if !(hz >= MinTickHz && hz <= MaxTickHz) {
		return false
	}
	return Settings{TickHz: hz}.TickDuration() > 0
}

// FrameResult is what one frame produced for the renderer
type FrameResult struct {
	Ticks        int
	Dropped      int
	Trajectories []physics.Polyline
	Arrows       []Arrow
	Gizmo        []Arrow
}

// Simulation owns the live body set and runs the per-frame pass:
// integrate (while running) -> predict -> overlay; picks arrive through Click
// Not safe for concurrent use; the frame loop is the single owner
type Simulation struct {
	Registry *body.Registry
	Run      *RunControl
	Selector Selector

	settings   Settings
	integrator *physics.Integrator
	clock      TimeProvider
	log        *slog.Logger

	accumulator time.Duration
	simTime     float64

	ticks        *atomic.Int64
	dropped      *atomic.Int64
	bodies       *atomic.Int64
	steps        *atomic.Int64
	running      *atomic.Bool
	simTimeGauge *status.Gauge
	pausedGauge  *status.Gauge
	predictMs    *status.Gauge
	predictMaxMs *status.Gauge
}

// NewSimulation wires a stepper over reg
// Invalid tick rate, step cap or prediction parameters fall back to defaults
func NewSimulation(reg *body.Registry, settings Settings, clock TimeProvider, metrics *status.Registry) *Simulation {
	def := DefaultSettings()
	if !ValidTickHz(settings.TickHz) {
		settings.TickHz = def.TickHz
	}
	if settings.MaxTicksPerFrame <= 0 {
		settings.MaxTicksPerFrame = def.MaxTicksPerFrame
	}
	if !(settings.G > 0) {
		settings.G = def.G
	}
	if !(settings.PredictDt > 0) {
		settings.PredictDt = def.PredictDt
	}
	if settings.PredictSteps == 0 {
		settings.PredictSteps = def.PredictSteps
	}
	settings.PredictSteps = clampSteps(settings.PredictSteps)

	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if metrics == nil {
		metrics = status.NewRegistry()
	}

	s := &Simulation{
		Registry:   reg,
		Run:        NewRunControl(clock),
		Selector:   Selector{Policy: settings.MissPolicy},
		settings:   settings,
		integrator: physics.NewIntegrator(physics.Gravity{G: settings.G}),
		clock:      clock,
		log:        slog.Default().With("component", "engine"),

		ticks:        metrics.Counters.Get(status.KeyTicks),
		dropped:      metrics.Counters.Get(status.KeyDroppedTicks),
		bodies:       metrics.Counters.Get(status.KeyBodies),
		steps:        metrics.Counters.Get(status.KeyPredictSteps),
		running:      metrics.Flags.Get(status.KeyRunning),
		simTimeGauge: metrics.Gauges.Get(status.KeySimTime),
		pausedGauge:  metrics.Gauges.Get(status.KeyPausedSeconds),
		predictMs:    metrics.Gauges.Get(status.KeyPredictMs),
		predictMaxMs: metrics.Gauges.Get(status.KeyPredictMaxMs),
	}
	s.steps.Store(int64(settings.PredictSteps))
	s.bodies.Store(int64(reg.Len()))
	return s
}

// Settings returns a copy of the current settings
func (s *Simulation) Settings() Settings {
	return s.settings
}

// SimTime returns integrated simulation seconds
func (s *Simulation) SimTime() float64 {
	return s.simTime
}

// Frame advances the simulation by elapsed wall time
// While running, one fixed tick executes per whole tick accumulated, at most MaxTicksPerFrame;
// whole ticks beyond the cap are dropped and reported. While paused the accumulator is cleared
func (s *Simulation) Frame(elapsed time.Duration) FrameResult {
	var res FrameResult
	if elapsed < 0 {
		elapsed = 0
	}

	if s.Run.IsRunning() {
		tick := s.settings.TickDuration()
		s.accumulator += elapsed
		for s.accumulator >= tick && res.Ticks < s.settings.MaxTicksPerFrame {
			s.tick()
			s.accumulator -= tick
			res.Ticks++
		}
		if s.accumulator >= tick {
			res.Dropped = int(s.accumulator / tick)
			s.accumulator %= tick
			s.dropped.Add(int64(res.Dropped))
			s.log.Debug("ticks dropped", "count", res.Dropped)
		}
	} else {
		s.accumulator = 0
	}

	if s.settings.DrawTrajectories {
		res.Trajectories = s.Predict()
	}
	if s.settings.DrawVelocities {
		res.Arrows = VelocityArrows(s.Registry.Bodies())
	}
	if b, ok := s.Registry.SelectedBody(); ok {
		g := AxisGizmo(b)
		res.Gizmo = g[:]
	}

	s.bodies.Store(int64(s.Registry.Len()))
	s.running.Store(s.Run.IsRunning())
	s.pausedGauge.Set(s.Run.PausedFor().Seconds())
	return res
}

// Step executes exactly one tick regardless of run state
func (s *Simulation) Step() {
	s.tick()
}

func (s *Simulation) tick() {
	dt := s.settings.TickDt()
	s.integrator.Integrate(s.Registry.Bodies(), dt)
	s.simTime += dt
	s.ticks.Add(1)
	s.simTimeGauge.Set(s.simTime)
}

// Predict forward-simulates a snapshot with the configured steps and dt
func (s *Simulation) Predict() []physics.Polyline {
	start := s.clock.Now()
	out := s.integrator.Gravity.PredictTrajectories(s.Registry.Bodies(), s.settings.PredictSteps, s.settings.PredictDt)
	ms := float64(s.clock.Now().Sub(start)) / float64(time.Millisecond)
	s.predictMs.Set(ms)
	s.predictMaxMs.SetMax(ms)
	return out
}

// Click applies a pick along ray to the selection
func (s *Simulation) Click(ray vmath.Ray) (body.ID, bool) {
	id, hit := s.Selector.Apply(s.Registry, ray)
	if hit {
		s.log.Debug("body selected", "id", id)
	}
	return id, hit
}

// SetPredictSteps clamps n to the accepted range and returns the stored value
func (s *Simulation) SetPredictSteps(n int) int {
	s.settings.PredictSteps = clampSteps(n)
	s.steps.Store(int64(s.settings.PredictSteps))
	return s.settings.PredictSteps
}

// SetMissPolicy replaces the selection miss policy
func (s *Simulation) SetMissPolicy(p MissPolicy) {
	s.settings.MissPolicy = p
	s.Selector.Policy = p
}

func (s *Simulation) ToggleTrajectories() bool {
	s.settings.DrawTrajectories = !s.settings.DrawTrajectories
	return s.settings.DrawTrajectories
}

func (s *Simulation) ToggleVelocities() bool {
	s.settings.DrawVelocities = !s.settings.DrawVelocities
	return s.settings.DrawVelocities
}

// Reset pauses and clears accumulated and integrated time, leaving bodies untouched
func (s *Simulation) Reset() {
	s.Run.Pause()
	s.accumulator = 0
	s.simTime = 0
	s.simTimeGauge.Set(0)
	s.bodies.Store(int64(s.Registry.Len()))
}

func clampSteps(n int) int {
	switch {
	case n < physics.MinPredictSteps:
		return physics.MinPredictSteps
	case n > physics.MaxPredictSteps:
		return physics.MaxPredictSteps
	default:
		return n
	}
}
