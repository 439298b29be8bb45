package scene

import (
	"fmt"
	"sort"
)

var presets = map[string]func() *Scene{
	"binary": binaryPreset,
	"mutual": mutualPreset,
	"system": systemPreset,
}

// DefaultPreset is loaded when neither a scene file nor a preset is requested
const DefaultPreset = "binary"

// PresetNames returns the built in preset names, sorted
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset builds a fresh copy of the named preset
func Preset(name string) (*Scene, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", name, PresetNames())
	}
	return build(), nil
}

// Sun with a light planet on a fast, slightly eccentric path
func binaryPreset() *Scene {
	return &Scene{
		Camera: DefaultCamera,
		Bodies: []BodySpec{
			{Name: "Sun", Kind: "star", Luminosity: 1, Mass: 1e6, Radius: 10, Color: "#ffff00"},
			{Name: "Planet", Kind: "planet", Mass: 1e3, Radius: 3,
				Position: [3]float64{100, 0, 0}, Velocity: [3]float64{0, 0, 100}, Color: "#0000ff"},
		},
	}
}

// Two equal masses; the second starts with the binary planet's velocity
func mutualPreset() *Scene {
	return &Scene{
		Camera: DefaultCamera,
		Bodies: []BodySpec{
			{Name: "Sun", Kind: "star", Luminosity: 1, Mass: 1e6, Radius: 10, Color: "#ffff00"},
			{Name: "Planet", Kind: "planet", Mass: 1e6, Radius: 10,
				Position: [3]float64{100, 0, 0}, Velocity: [3]float64{0, 0, 100}, Color: "#0000ff"},
		},
	}
}

func systemPreset() *Scene {
	return &Scene{
		Camera:    [3]float64{0, 250, 450},
		AutoOrbit: true,
		Bodies: []BodySpec{
			{Name: "Sun", Kind: "star", Luminosity: 1.5, Mass: 1e6, Radius: 12, Color: "#ffd24a"},
			{Name: "Mercury", Kind: "planet", Mass: 50, Radius: 2, Position: [3]float64{60, 0, 0}, Color: "#b0a090"},
			{Name: "Earth", Kind: "planet", Mass: 300, Radius: 3, Position: [3]float64{0, 0, 130}, Color: "#3f7fff"},
			{Name: "Jupiter", Kind: "planet", Mass: 2000, Radius: 6, Position: [3]float64{-220, 0, 0}, Color: "#d9a066"},
		},
	}
}
