package body

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravsim/vmath"
)

var (
	ErrNotFound      = errors.New("body not found")
	ErrInvalidMass   = errors.New("mass must be positive")
	ErrInvalidRadius = errors.New("radius must be positive")
)

// ID is a stable handle for a live body, unique within one Registry
type ID uint64

// NoID is never assigned
const NoID ID = 0

// KindType discriminates Kind variants
type KindType uint8

const (
	KindPlanet KindType = iota
	KindStar
)

// Kind affects only emission, never physics
type Kind struct {
	Type       KindType
	Luminosity float64 // Star only
}

// Planet returns the planet kind
func Planet() Kind { return Kind{Type: KindPlanet} }

// Star returns a star kind with the given luminosity factor
func Star(luminosity float64) Kind { return Kind{Type: KindStar, Luminosity: luminosity} }

func (k Kind) IsStar() bool { return k.Type == KindStar }

func (k Kind) String() string {
	if k.Type == KindStar {
		return "star"
	}
	return "planet"
}

// Body is one simulated celestial object
type Body struct {
	ID     ID
	Name   string
	Kind   Kind
	Mass   float64
	Radius float64

	Position vmath.Vec3
	Velocity vmath.Vec3

	// InitialVelocity is the velocity at spawn, restored by Registry.ResetVelocities
	InitialVelocity vmath.Vec3

	Color colorful.Color
}

// New creates a body with velocity and initial velocity set to vel
func New(name string, kind Kind, mass, radius float64, pos, vel vmath.Vec3, color colorful.Color) Body {
	return Body{
		Name:            name,
		Kind:            kind,
		Mass:            mass,
		Radius:          radius,
		Position:        pos,
		Velocity:        vel,
		InitialVelocity: vel,
		Color:           color,
	}
}

// LightIntensity is the emission strength used by the renderer
// Stars emit proportionally to luminosity and surface area; planets do not emit
func (b *Body) LightIntensity() float64 {
	if !b.Kind.IsStar() {
		return 0
	}
	return b.Kind.Luminosity * b.Radius * b.Radius
}

// Validate checks the invariants editors must uphold before handing a body to the core
func (b *Body) Validate() error {
	if !(b.Mass > 0) {
		return fmt.Errorf("%q: %w (got %g)", b.Name, ErrInvalidMass, b.Mass)
	}
	if !(b.Radius > 0) {
		return fmt.Errorf("%q: %w (got %g)", b.Name, ErrInvalidRadius, b.Radius)
	}
	return nil
}
