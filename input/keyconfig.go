package input

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"equals":    '=',
	"lbracket":  '[',
	"rbracket":  ']',
}

// keyByName resolves tcell key names ("left", "esc", "ctrl-c") case-insensitively
var keyByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// keymapFile is the on-disk keymap layout
//
//	[runes]
//	p = "toggle_run"
//	[keys]
//	f5 = "save"
type keymapFile struct {
	Runes map[string]string `toml:"runes"`
	Keys  map[string]string `toml:"keys"`
}

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Returns error on unknown action names, invalid key names, or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var f keymapFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("keymap: unknown section or key %q", undecoded[0].String())
	}

	kt := &KeyTable{}

	if f.Runes != nil {
		kt.Runes = make(map[rune]KeyEntry, len(f.Runes))
		for keyStr, action := range f.Runes {
			r, err := resolveRune(keyStr)
			if err != nil {
				return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
			}
			entry, err := resolveAction(action)
			if err != nil {
				return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
			}
			kt.Runes[r] = entry
		}
	}

	if f.Keys != nil {
		kt.Keys = make(map[tcell.Key]KeyEntry, len(f.Keys))
		for keyStr, action := range f.Keys {
			k, ok := keyByName[strings.ToLower(keyStr)]
			if !ok {
				return nil, fmt.Errorf("[keys] unknown key name: %q", keyStr)
			}
			entry, err := resolveAction(action)
			if err != nil {
				return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
			}
			kt.Keys[k] = entry
		}
	}

	return kt, nil
}

// LoadKeyConfigFile reads a keymap file and merges it over the default bindings
func LoadKeyConfigFile(path string) (*KeyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keymap %s: %w", path, err)
	}
	override, err := LoadKeyConfig(data)
	if err != nil {
		return nil, fmt.Errorf("keymap %s: %w", path, err)
	}
	return MergeKeyTable(DefaultKeyTable(), override), nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// resolveAction converts an action name string to a KeyEntry
func resolveAction(name string) (KeyEntry, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	entry, ok := ActionEntry(name)
	if !ok {
		return KeyEntry{}, fmt.Errorf("unknown action: %q", name)
	}
	return entry, nil
}

// Clone returns a deep copy of the table
func (kt *KeyTable) Clone() *KeyTable {
	c := &KeyTable{
		Keys:  make(map[tcell.Key]KeyEntry, len(kt.Keys)),
		Runes: make(map[rune]KeyEntry, len(kt.Runes)),
	}
	for k, v := range kt.Keys {
		c.Keys[k] = v
	}
	for r, v := range kt.Runes {
		c.Runes[r] = v
	}
	return c
}

// MergeKeyTable returns a new KeyTable with base values overridden by non-nil override maps
// Override entries bound to "none" delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	mergeMap(result.Keys, override.Keys)
	mergeMap(result.Runes, override.Runes)
	return result
}

func mergeMap[K comparable](base, override map[K]KeyEntry) {
	for k, v := range override {
		if v.Type == IntentNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
