package input

import "github.com/gdamore/tcell/v2"

// KeyEntry is the intent template a key produces
type KeyEntry struct {
	Type   IntentType
	Sign   int
	DYaw   int
	DPitch int
}

func (e KeyEntry) intent() *Intent {
	return &Intent{Type: e.Type, Sign: e.Sign, DYaw: e.DYaw, DPitch: e.DPitch}
}

// KeyTable maps special keys and runes to intents
type KeyTable struct {
	Keys  map[tcell.Key]KeyEntry
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default bindings
// Lowercase a, d and s edit the scene, so WASD orbits with shift held
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {Type: IntentQuit},
			tcell.KeyCtrlQ:  {Type: IntentQuit},
			tcell.KeyEscape: {Type: IntentDeselect},
			tcell.KeyDelete: {Type: IntentDelete},
			tcell.KeyLeft:   {Type: IntentOrbit, DYaw: -1},
			tcell.KeyRight:  {Type: IntentOrbit, DYaw: 1},
			tcell.KeyUp:     {Type: IntentOrbit, DPitch: 1},
			tcell.KeyDown:   {Type: IntentOrbit, DPitch: -1},
		},
		Runes: map[rune]KeyEntry{
			'q': {Type: IntentQuit},
			' ': {Type: IntentToggleRun},
			'n': {Type: IntentStep},
			'd': {Type: IntentDuplicate},
			'a': {Type: IntentSpawnAverage},
			'x': {Type: IntentDelete},
			'+': {Type: IntentMass, Sign: 1},
			'=': {Type: IntentMass, Sign: 1},
			'-': {Type: IntentMass, Sign: -1},
			']': {Type: IntentRadius, Sign: 1},
			'[': {Type: IntentRadius, Sign: -1},
			't': {Type: IntentToggleTrajectories},
			'v': {Type: IntentToggleVelocities},
			'>': {Type: IntentSteps, Sign: 1},
			'.': {Type: IntentSteps, Sign: 1},
			'<': {Type: IntentSteps, Sign: -1},
			',': {Type: IntentSteps, Sign: -1},
			's': {Type: IntentSave},
			'W': {Type: IntentOrbit, DPitch: 1},
			'S': {Type: IntentOrbit, DPitch: -1},
			'A': {Type: IntentOrbit, DYaw: -1},
			'D': {Type: IntentOrbit, DYaw: 1},
			'z': {Type: IntentZoom, Sign: -1},
			'Z': {Type: IntentZoom, Sign: 1},
			'r': {Type: IntentReset},
			'R': {Type: IntentResetVelocities},
			'm': {Type: IntentMute},
		},
	}
}
