package scene

import (
	"fmt"

	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/vmath"
)

// DefaultSavePath is used when the session did not start from a file
const DefaultSavePath = "scenes/saved.toml"

// Store remembers the scene a session started from and where saves go
type Store struct {
	Path    string
	initial *Scene
}

// NewStore keeps initial for Reset; path may be empty
func NewStore(initial *Scene, path string) *Store {
	if path == "" {
		path = DefaultSavePath
	}
	return &Store{Path: path, initial: initial}
}

// Save captures reg with the camera position and writes it to Path
func (s *Store) Save(reg *body.Registry, camera vmath.Vec3) (string, error) {
	var g float64
	if s.initial != nil {
		g = s.initial.G
	}
	if err := Capture(reg, camera, g).Save(s.Path); err != nil {
		return "", err
	}
	return s.Path, nil
}

// Reset reapplies the initial scene and returns its camera position
func (s *Store) Reset(reg *body.Registry) (vmath.Vec3, error) {
	if s.initial == nil {
		return vmath.Vec3{}, fmt.Errorf("reset: no initial scene")
	}
	if err := s.initial.Apply(reg); err != nil {
		return vmath.Vec3{}, fmt.Errorf("reset: %w", err)
	}
	return s.initial.CameraPosition(), nil
}
