// Package scene reads and writes TOML scene files and builds the preset scenes
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/physics"
	"github.com/lixenwraith/gravsim/vmath"
)

// ErrInvalidScene is wrapped by every validation failure
var ErrInvalidScene = errors.New("invalid scene")

// DefaultCamera is used when a scene omits the camera position
var DefaultCamera = [3]float64{0, 150, 300}

// BodySpec is one [[bodies]] entry
type BodySpec struct {
	Name       string     `toml:"name"`
	Kind       string     `toml:"kind"`
	Luminosity float64    `toml:"luminosity,omitempty"`
	Mass       float64    `toml:"mass"`
	Radius     float64    `toml:"radius"`
	Position   [3]float64 `toml:"position"`
	Velocity   [3]float64 `toml:"velocity"`
	Color      string     `toml:"color"`
}

// Scene is the persisted layout: camera, gravity constant and bodies
type Scene struct {
	Camera    [3]float64 `toml:"camera"`
	G         float64    `toml:"g,omitempty"`
	AutoOrbit bool       `toml:"auto_orbit"`
	Bodies    []BodySpec `toml:"bodies"`
}

// Parse decodes and validates a TOML scene
func Parse(data []byte) (*Scene, error) {
	var sc Scene
	md, err := toml.Decode(string(data), &sc)
	if err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		slog.Warn("scene has unknown keys", "component", "scene", "keys", fmt.Sprint(keys))
	}
	if sc.Camera == ([3]float64{}) {
		sc.Camera = DefaultCamera
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads a scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	return sc, nil
}

// Encode writes the scene as TOML
func (s *Scene) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Save writes the scene to path through a temp file in the same directory
func (s *Scene) Save(path string) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".scene-*.toml")
	if err != nil {
		return fmt.Errorf("failed to save scene %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save scene %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save scene %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save scene %s: %w", path, err)
	}
	return nil
}

// Validate checks every body; errors name the body index
func (s *Scene) Validate() error {
	if s.G < 0 {
		return fmt.Errorf("%w: negative g %g", ErrInvalidScene, s.G)
	}
	for i, b := range s.Bodies {
		if _, err := parseKind(b.Kind, b.Luminosity); err != nil {
			return fmt.Errorf("%w: body %d (%q): %v", ErrInvalidScene, i, b.Name, err)
		}
		if !(b.Mass > 0) {
			return fmt.Errorf("%w: body %d (%q): %w", ErrInvalidScene, i, b.Name, body.ErrInvalidMass)
		}
		if !(b.Radius > 0) {
			return fmt.Errorf("%w: body %d (%q): %w", ErrInvalidScene, i, b.Name, body.ErrInvalidRadius)
		}
	}
	return nil
}

// Gravity returns the scene's force law; zero G means the default constant
func (s *Scene) Gravity() physics.Gravity {
	if s.G > 0 {
		return physics.Gravity{G: s.G}
	}
	return physics.Newtonian
}

// CameraPosition returns the camera as a vector
func (s *Scene) CameraPosition() vmath.Vec3 {
	return vmath.Vec3(s.Camera)
}

// Apply replaces the registry contents with the scene bodies, in file order
// With auto_orbit, every body after the first that has zero velocity is put on a circular
// orbit around the first body in the XZ plane
func (s *Scene) Apply(reg *body.Registry) error {
	if err := s.Validate(); err != nil {
		return err
	}
	reg.Clear()

	g := s.Gravity()
	var center body.Body
	for i, spec := range s.Bodies {
		kind, _ := parseKind(spec.Kind, spec.Luminosity)
		b := body.New(spec.Name, kind, spec.Mass, spec.Radius,
			vmath.Vec3(spec.Position), vmath.Vec3(spec.Velocity), body.ParseColor(spec.Color))

		if s.AutoOrbit && i > 0 && b.Velocity == (vmath.Vec3{}) {
			b.Velocity = center.Velocity.Add(g.OrbitalInsert(center.Position, b.Position, center.Mass))
			b.InitialVelocity = b.Velocity
		}
		if i == 0 {
			center = b
		}
		if _, err := reg.Spawn(b); err != nil {
			return fmt.Errorf("body %d (%q): %w", i, spec.Name, err)
		}
	}
	return nil
}

// Capture snapshots the live registry into a scene
// Velocities are the current ones, so auto_orbit is off in the result
func Capture(reg *body.Registry, camera vmath.Vec3, g float64) *Scene {
	sc := &Scene{
		Camera: [3]float64(camera),
		G:      g,
		Bodies: make([]BodySpec, 0, reg.Len()),
	}
	for _, b := range reg.Bodies() {
		sc.Bodies = append(sc.Bodies, BodySpec{
			Name:       b.Name,
			Kind:       b.Kind.String(),
			Luminosity: b.Kind.Luminosity,
			Mass:       b.Mass,
			Radius:     b.Radius,
			Position:   [3]float64(b.Position),
			Velocity:   [3]float64(b.Velocity),
			Color:      hex(b.Color),
		})
	}
	return sc
}

func hex(c colorful.Color) string {
	return c.Clamped().Hex()
}

func parseKind(s string, luminosity float64) (body.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "planet":
		return body.Planet(), nil
	case "star":
		return body.Star(luminosity), nil
	default:
		return body.Kind{}, fmt.Errorf("unknown kind %q", s)
	}
}
