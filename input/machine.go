package input

import "github.com/gdamore/tcell/v2"

// Machine parses tcell events into semantic intents
// Tracks mouse button state so a held button selects once
type Machine struct {
	keyTable *KeyTable
	buttons  tcell.ButtonMask
}

// NewMachine creates a machine with the default bindings
func NewMachine() *Machine {
	return NewMachineWithKeys(DefaultKeyTable())
}

// NewMachineWithKeys creates a machine with a custom key table
func NewMachineWithKeys(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt}
}

// Reset clears tracked button state
func (m *Machine) Reset() {
	m.buttons = tcell.ButtonNone
}

// Process parses an event and returns an Intent
// Returns nil for events with no binding
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventError:
		return &Intent{Type: IntentQuit}
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	if ev.Key() == tcell.KeyRune {
		if e, ok := m.keyTable.Runes[ev.Rune()]; ok {
			return e.intent()
		}
		return nil
	}
	if e, ok := m.keyTable.Keys[ev.Key()]; ok {
		return e.intent()
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	btn := ev.Buttons()
	prev := m.buttons
	m.buttons = btn

	// Press edge only; drag and release are ignored
	if btn&tcell.Button1 != 0 && prev&tcell.Button1 == 0 {
		x, y := ev.Position()
		return &Intent{Type: IntentSelect, X: x, Y: y}
	}

	switch {
	case btn&tcell.WheelUp != 0:
		return &Intent{Type: IntentZoom, Sign: -1}
	case btn&tcell.WheelDown != 0:
		return &Intent{Type: IntentZoom, Sign: 1}
	}
	return nil
}
