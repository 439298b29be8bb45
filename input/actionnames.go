package input

import "sort"

// actionRegistry maps canonical action names to KeyEntry templates
// Used by the keymap loader to resolve TOML action strings to bindings
var actionRegistry = map[string]KeyEntry{
	// Unbind sentinel
	"none": {},

	// System
	"quit": {Type: IntentQuit},
	"mute": {Type: IntentMute},

	// Run state
	"toggle_run": {Type: IntentToggleRun},
	"step":       {Type: IntentStep},

	// Selection and editing
	"deselect":      {Type: IntentDeselect},
	"duplicate":     {Type: IntentDuplicate},
	"spawn_average": {Type: IntentSpawnAverage},
	"delete":        {Type: IntentDelete},
	"mass_up":       {Type: IntentMass, Sign: 1},
	"mass_down":     {Type: IntentMass, Sign: -1},
	"radius_up":     {Type: IntentRadius, Sign: 1},
	"radius_down":   {Type: IntentRadius, Sign: -1},

	// Visualization
	"toggle_trajectories": {Type: IntentToggleTrajectories},
	"toggle_velocities":   {Type: IntentToggleVelocities},
	"steps_up":            {Type: IntentSteps, Sign: 1},
	"steps_down":          {Type: IntentSteps, Sign: -1},

	// Camera
	"orbit_left":  {Type: IntentOrbit, DYaw: -1},
	"orbit_right": {Type: IntentOrbit, DYaw: 1},
	"orbit_up":    {Type: IntentOrbit, DPitch: 1},
	"orbit_down":  {Type: IntentOrbit, DPitch: -1},
	"zoom_in":     {Type: IntentZoom, Sign: -1},
	"zoom_out":    {Type: IntentZoom, Sign: 1},

	// Scene
	"save":             {Type: IntentSave},
	"reset":            {Type: IntentReset},
	"reset_velocities": {Type: IntentResetVelocities},
}

// ActionEntry returns the binding template for an action name
func ActionEntry(name string) (KeyEntry, bool) {
	e, ok := actionRegistry[name]
	return e, ok
}

// ActionNames returns all bindable action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
