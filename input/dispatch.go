package input

import (
	"fmt"
	"log/slog"

	"github.com/lixenwraith/gravsim/audio"
	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/engine"
	"github.com/lixenwraith/gravsim/render"
	"github.com/lixenwraith/gravsim/vmath"
)

// Editor step factors
const (
	MassFactor   = 1.25
	RadiusFactor = 1.1
	StepsFactor  = 2
	OrbitStep    = 0.1 // radians per key press
	ZoomFactor   = 0.85
)

// CuePlayer is the audio surface the dispatcher needs
type CuePlayer interface {
	Play(c audio.Cue)
	ToggleMute() bool
}

// SceneStore persists and restores the body set
type SceneStore interface {
	Save(reg *body.Registry, camera vmath.Vec3) (string, error)
	Reset(reg *body.Registry) (vmath.Vec3, error)
}

// Result reports what the frame loop must do after an intent
type Result struct {
	Quit    bool
	Message string
}

// Dispatcher applies intents to the simulation, camera, audio and scene store
// Audio and store are optional
type Dispatcher struct {
	Sim     *engine.Simulation
	Camera  *render.Camera
	Audio   CuePlayer
	Store   SceneStore
	Palette *body.Palette

	log *slog.Logger
}

// NewDispatcher wires a dispatcher; a nil palette gets a fixed seed
func NewDispatcher(sim *engine.Simulation, cam *render.Camera, player CuePlayer, store SceneStore, palette *body.Palette) *Dispatcher {
	if palette == nil {
		palette = body.NewPalette(1)
	}
	return &Dispatcher{
		Sim:     sim,
		Camera:  cam,
		Audio:   player,
		Store:   store,
		Palette: palette,
		log:     slog.Default().With("component", "input"),
	}
}

func (d *Dispatcher) cue(c audio.Cue) {
	if d.Audio != nil {
		d.Audio.Play(c)
	}
}

// Dispatch applies one intent; w and h are the current screen size in cells
func (d *Dispatcher) Dispatch(in *Intent, w, h int) Result {
	if in == nil {
		return Result{}
	}
	reg := d.Sim.Registry

	switch in.Type {
	case IntentQuit:
		return Result{Quit: true}

	case IntentToggleRun:
		st := d.Sim.Run.Toggle()
		if st == engine.Running {
			d.cue(audio.CueRun)
		} else {
			d.cue(audio.CuePause)
		}
		return Result{Message: st.String()}

	case IntentStep:
		d.Sim.Step()
		d.cue(audio.CueStep)
		return Result{Message: fmt.Sprintf("stepped to t=%.2fs", d.Sim.SimTime())}

	case IntentSelect:
		if w <= 0 || h <= 0 {
			return Result{}
		}
		ray := d.Camera.Ray(float64(in.X)+0.5, float64(in.Y)+0.5, w, h)
		if id, hit := d.Sim.Click(ray); hit {
			d.cue(audio.CueSelect)
			if b, ok := reg.Get(id); ok {
				return Result{Message: "selected " + b.Name}
			}
		}
		return Result{}

	case IntentDeselect:
		reg.Deselect()
		return Result{}

	case IntentDuplicate:
		sel, ok := reg.Selected()
		if !ok {
			return Result{Message: "nothing selected"}
		}
		if _, err := reg.Duplicate(sel, d.Palette.Next()); err != nil {
			return d.fail("duplicate", err)
		}
		d.cue(audio.CueSpawn)
		return Result{Message: fmt.Sprintf("duplicated, %d bodies", reg.Len())}

	case IntentSpawnAverage:
		if _, err := reg.SpawnAverage(d.Palette.Next()); err != nil {
			return d.fail("spawn", err)
		}
		d.cue(audio.CueSpawn)
		return Result{Message: fmt.Sprintf("spawned, %d bodies", reg.Len())}

	case IntentDelete:
		sel, ok := reg.Selected()
		if !ok {
			return Result{Message: "nothing selected"}
		}
		if err := reg.Despawn(sel); err != nil {
			return d.fail("delete", err)
		}
		d.cue(audio.CueDelete)
		return Result{Message: fmt.Sprintf("deleted, %d bodies", reg.Len())}

	case IntentMass:
		b, ok := reg.SelectedBody()
		if !ok {
			return Result{Message: "nothing selected"}
		}
		if err := reg.SetMass(b.ID, scaled(b.Mass, MassFactor, in.Sign)); err != nil {
			return d.fail("mass", err)
		}
		return Result{Message: fmt.Sprintf("mass %.4g", b.Mass)}

	case IntentRadius:
		b, ok := reg.SelectedBody()
		if !ok {
			return Result{Message: "nothing selected"}
		}
		if err := reg.SetRadius(b.ID, scaled(b.Radius, RadiusFactor, in.Sign)); err != nil {
			return d.fail("radius", err)
		}
		return Result{Message: fmt.Sprintf("radius %.4g", b.Radius)}

	case IntentToggleTrajectories:
		return Result{Message: "trajectories " + onOff(d.Sim.ToggleTrajectories())}

	case IntentToggleVelocities:
		return Result{Message: "velocities " + onOff(d.Sim.ToggleVelocities())}

	case IntentSteps:
		n := d.Sim.Settings().PredictSteps
		if in.Sign < 0 {
			n /= StepsFactor
		} else {
			n *= StepsFactor
		}
		return Result{Message: fmt.Sprintf("steps %d", d.Sim.SetPredictSteps(n))}

	case IntentOrbit:
		d.Camera.Orbit(float64(in.DYaw)*OrbitStep, float64(in.DPitch)*OrbitStep)
		return Result{}

	case IntentZoom:
		if in.Sign < 0 {
			d.Camera.Zoom(ZoomFactor)
		} else {
			d.Camera.Zoom(1 / ZoomFactor)
		}
		return Result{}

	case IntentSave:
		if d.Store == nil {
			return Result{Message: "no scene store"}
		}
		path, err := d.Store.Save(reg, d.Camera.Position())
		if err != nil {
			return d.fail("save", err)
		}
		d.log.Info("scene saved", "path", path, "bodies", reg.Len())
		return Result{Message: "saved " + path}

	case IntentReset:
		if d.Store == nil {
			return Result{Message: "no scene store"}
		}
		cam, err := d.Store.Reset(reg)
		if err != nil {
			return d.fail("reset", err)
		}
		d.Sim.Reset()
		d.Camera.LookFrom(cam)
		return Result{Message: "scene reset"}

	case IntentResetVelocities:
		reg.ResetVelocities()
		return Result{Message: "velocities reset"}

	case IntentMute:
		if d.Audio == nil {
			return Result{Message: "audio unavailable"}
		}
		if d.Audio.ToggleMute() {
			return Result{Message: "muted"}
		}
		return Result{Message: "unmuted"}
	}

	return Result{}
}

func (d *Dispatcher) fail(op string, err error) Result {
	d.log.Warn("intent failed", "op", op, "error", err)
	return Result{Message: op + ": " + err.Error()}
}

// scaled multiplies v by f for positive sign and divides otherwise
func scaled(v, f float64, sign int) float64 {
	if sign < 0 {
		return v / f
	}
	return v * f
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
