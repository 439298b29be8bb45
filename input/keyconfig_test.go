package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestLoadKeyConfig(t *testing.T) {
	data := []byte(`
[runes]
p = "toggle_run"
space = "none"
"+" = "radius_up"

[keys]
F5 = "save"
`)
	kt, err := LoadKeyConfig(data)
	if err != nil {
		t.Fatalf("LoadKeyConfig: %v", err)
	}

	if e := kt.Runes['p']; e.Type != IntentToggleRun {
		t.Errorf("Expected p bound to toggle_run, got %v", e.Type)
	}
	if e := kt.Runes['+']; e.Type != IntentRadius || e.Sign != 1 {
		t.Errorf("Expected + bound to radius_up, got %+v", e)
	}
	if e, ok := kt.Runes[' ']; !ok || e.Type != IntentNone {
		t.Errorf("Expected space alias to parse as unbind, got %+v (present %v)", e, ok)
	}
	if e := kt.Keys[tcell.KeyF5]; e.Type != IntentSave {
		t.Errorf("Expected F5 bound to save, got %v", e.Type)
	}
}

func TestLoadKeyConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown action", "[runes]\np = \"fly\"\n"},
		{"multi-char rune", "[runes]\npp = \"step\"\n"},
		{"unknown key name", "[keys]\nhyper = \"step\"\n"},
		{"unknown section", "[modes]\np = \"step\"\n"},
		{"malformed", "[runes\n"},
	}
	for _, tt := range tests {
		if _, err := LoadKeyConfig([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

func TestMergeKeyTable(t *testing.T) {
	override := &KeyTable{
		Runes: map[rune]KeyEntry{
			' ': {},
			'p': {Type: IntentToggleRun},
		},
	}
	base := DefaultKeyTable()
	merged := MergeKeyTable(base, override)

	if _, ok := merged.Runes[' ']; ok {
		t.Error("Expected space to be unbound")
	}
	if merged.Runes['p'].Type != IntentToggleRun {
		t.Errorf("Expected p bound, got %v", merged.Runes['p'].Type)
	}
	if _, ok := base.Runes[' ']; !ok {
		t.Error("Expected base table to be unchanged")
	}
	if merged.Keys[tcell.KeyEscape].Type != IntentDeselect {
		t.Error("Expected special keys carried over")
	}
}

func TestLoadKeyConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	if err := os.WriteFile(path, []byte("[runes]\np = \"toggle_run\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	kt, err := LoadKeyConfigFile(path)
	if err != nil {
		t.Fatalf("LoadKeyConfigFile: %v", err)
	}

	m := NewMachineWithKeys(kt)
	for _, r := range []rune{'p', ' '} {
		in := m.Process(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		if in == nil || in.Type != IntentToggleRun {
			t.Errorf("%q: expected toggle_run, got %+v", r, in)
		}
	}

	if _, err := LoadKeyConfigFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestActionNamesSorted(t *testing.T) {
	names := ActionNames()
	if len(names) != len(actionRegistry) {
		t.Fatalf("Expected %d names, got %d", len(actionRegistry), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Expected sorted names, got %q before %q", names[i-1], names[i])
		}
	}
}
