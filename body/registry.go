package body

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravsim/vmath"
)

// Registry is the authoritative live body set
// Bodies are stored densely in spawn order; iteration order is stable between mutations of the set
// Not safe for concurrent use: the frame loop is the single owner
type Registry struct {
	bodies   []Body
	index    map[ID]int
	nextID   ID
	selected ID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		bodies: make([]Body, 0, 16),
		index:  make(map[ID]int),
		nextID: 1,
	}
}

// Len returns the number of live bodies
func (r *Registry) Len() int {
	return len(r.bodies)
}

// Bodies returns the live backing slice
// Callers may mutate kinematic fields in place but must not append or reslice
func (r *Registry) Bodies() []Body {
	return r.bodies
}

// Snapshot returns a copy of the live set
func (r *Registry) Snapshot() []Body {
	out := make([]Body, len(r.bodies))
	copy(out, r.bodies)
	return out
}

// Spawn validates b, assigns a fresh ID and appends it
func (r *Registry) Spawn(b Body) (ID, error) {
	if err := b.Validate(); err != nil {
		return NoID, fmt.Errorf("spawn: %w", err)
	}
	b.ID = r.nextID
	r.nextID++
	r.index[b.ID] = len(r.bodies)
	r.bodies = append(r.bodies, b)
	return b.ID, nil
}

// Despawn removes a body, preserving the order of the remaining bodies
// Clears the selection when the removed body was selected
func (r *Registry) Despawn(id ID) error {
	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("despawn %d: %w", id, ErrNotFound)
	}

	r.bodies = append(r.bodies[:i], r.bodies[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.bodies); j++ {
		r.index[r.bodies[j].ID] = j
	}

	if r.selected == id {
		r.selected = NoID
	}
	return nil
}

// Clear removes every body and the selection; IDs are not reused
func (r *Registry) Clear() {
	r.bodies = r.bodies[:0]
	clear(r.index)
	r.selected = NoID
}

// Index returns the dense index of id, -1 if absent
func (r *Registry) Index(id ID) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

// Get returns a pointer into the live set
// The pointer is invalidated by the next Spawn, Despawn or Clear
func (r *Registry) Get(id ID) (*Body, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return &r.bodies[i], true
}

// --- Selection ---

// Selected returns the selected id, if any
func (r *Registry) Selected() (ID, bool) {
	return r.selected, r.selected != NoID
}

// SelectedBody returns the selected body, if any
func (r *Registry) SelectedBody() (*Body, bool) {
	if r.selected == NoID {
		return nil, false
	}
	return r.Get(r.selected)
}

// Select moves the single selection marker to id
func (r *Registry) Select(id ID) error {
	if _, ok := r.index[id]; !ok {
		return fmt.Errorf("select %d: %w", id, ErrNotFound)
	}
	r.selected = id
	return nil
}

// Deselect clears the selection
func (r *Registry) Deselect() {
	r.selected = NoID
}

// --- Editor accessors ---

func (r *Registry) mutate(id ID, fn func(b *Body) error) error {
	b, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("edit %d: %w", id, ErrNotFound)
	}
	return fn(b)
}

// SetMass rejects non-positive mass
func (r *Registry) SetMass(id ID, mass float64) error {
	return r.mutate(id, func(b *Body) error {
		if !(mass > 0) {
			return fmt.Errorf("set mass on %q: %w (got %g)", b.Name, ErrInvalidMass, mass)
		}
		b.Mass = mass
		return nil
	})
}

// SetRadius rejects non-positive radius
func (r *Registry) SetRadius(id ID, radius float64) error {
	return r.mutate(id, func(b *Body) error {
		if !(radius > 0) {
			return fmt.Errorf("set radius on %q: %w (got %g)", b.Name, ErrInvalidRadius, radius)
		}
		b.Radius = radius
		return nil
	})
}

func (r *Registry) SetPosition(id ID, pos vmath.Vec3) error {
	return r.mutate(id, func(b *Body) error {
		b.Position = pos
		return nil
	})
}

func (r *Registry) SetVelocity(id ID, vel vmath.Vec3) error {
	return r.mutate(id, func(b *Body) error {
		b.Velocity = vel
		return nil
	})
}

func (r *Registry) SetColor(id ID, c colorful.Color) error {
	return r.mutate(id, func(b *Body) error {
		b.Color = c.Clamped()
		return nil
	})
}

func (r *Registry) SetName(id ID, name string) error {
	return r.mutate(id, func(b *Body) error {
		b.Name = name
		return nil
	})
}

// ResetVelocities restores every body's velocity to its spawn velocity
func (r *Registry) ResetVelocities() {
	for i := range r.bodies {
		r.bodies[i].Velocity = r.bodies[i].InitialVelocity
	}
}

// --- Spawning helpers ---

// Duplicate copies mass, radius and velocity of id into a new planet offset by radius on every axis
// The copy becomes selected
func (r *Registry) Duplicate(id ID, color colorful.Color) (ID, error) {
	src, ok := r.Get(id)
	if !ok {
		return NoID, fmt.Errorf("duplicate %d: %w", id, ErrNotFound)
	}

	dup := New("Planet", Planet(), src.Mass, src.Radius,
		src.Position.Add(vmath.One.Mul(src.Radius)), src.Velocity, color)

	newID, err := r.Spawn(dup)
	if err != nil {
		return NoID, err
	}
	r.selected = newID
	return newID, nil
}

// SpawnAverage adds a planet whose mass, radius, position and velocity are the mean of the live set
// With exactly one body the new planet is offset by its radius so the two do not coincide
// The new body becomes selected
func (r *Registry) SpawnAverage(color colorful.Color) (ID, error) {
	n := len(r.bodies)
	if n == 0 {
		b := New("New Planet", Planet(), 1, 1, vmath.Zero, vmath.Zero, color)
		id, err := r.Spawn(b)
		if err == nil {
			r.selected = id
		}
		return id, err
	}

	var mass, radius float64
	var pos, vel vmath.Vec3
	for i := range r.bodies {
		b := &r.bodies[i]
		mass += b.Mass
		radius += b.Radius
		pos = pos.Add(b.Position)
		vel = vel.Add(b.Velocity)
	}
	inv := 1.0 / float64(n)
	mass *= inv
	radius *= inv
	pos = pos.Mul(inv)
	vel = vel.Mul(inv)

	if n == 1 {
		pos = pos.Add(vmath.One.Mul(radius))
	}

	id, err := r.Spawn(New("New Planet", Planet(), mass, radius, pos, vel, color))
	if err != nil {
		return NoID, err
	}
	r.selected = id
	return id, nil
}
