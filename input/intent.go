package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit
	IntentResize
	IntentMute

	// Run state
	IntentToggleRun
	IntentStep

	// Selection
	IntentSelect   // Mouse press; X, Y carry the cell
	IntentDeselect // Esc

	// Body editor
	IntentDuplicate
	IntentSpawnAverage
	IntentDelete
	IntentMass   // Sign: grow or shrink
	IntentRadius // Sign: grow or shrink

	// Visualization
	IntentToggleTrajectories
	IntentToggleVelocities
	IntentSteps // Sign: double or halve

	// Camera
	IntentOrbit // DYaw, DPitch
	IntentZoom  // Sign: -1 closer, +1 farther

	// Scene
	IntentSave
	IntentReset
	IntentResetVelocities
)

var intentNames = map[IntentType]string{
	IntentNone:               "none",
	IntentQuit:               "quit",
	IntentResize:             "resize",
	IntentMute:               "mute",
	IntentToggleRun:          "toggle_run",
	IntentStep:               "step",
	IntentSelect:             "select",
	IntentDeselect:           "deselect",
	IntentDuplicate:          "duplicate",
	IntentSpawnAverage:       "spawn_average",
	IntentDelete:             "delete",
	IntentMass:               "mass",
	IntentRadius:             "radius",
	IntentToggleTrajectories: "toggle_trajectories",
	IntentToggleVelocities:   "toggle_velocities",
	IntentSteps:              "steps",
	IntentOrbit:              "orbit",
	IntentZoom:               "zoom",
	IntentSave:               "save",
	IntentReset:              "reset",
	IntentResetVelocities:    "reset_velocities",
}

func (t IntentType) String() string {
	if s, ok := intentNames[t]; ok {
		return s
	}
	return "unknown"
}

// Intent is a parsed action; pure data with no engine dependencies
type Intent struct {
	Type   IntentType
	Sign   int // +1 or -1 for stepped editors
	DYaw   int // Orbit steps around the vertical axis
	DPitch int // Orbit steps toward the pole
	X, Y   int // Cell for mouse intents
}
