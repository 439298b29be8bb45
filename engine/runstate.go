package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// RunState gates the integrator; prediction and picking ignore it
type RunState uint8

const (
	Paused RunState = iota
	Running
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "paused"
	}
}

// RunControl holds the run state and tracks how long the simulation has been paused
// Starts Paused; state reads are lock-free
type RunControl struct {
	running atomic.Bool
	toggles atomic.Int64

	mu          sync.Mutex
	clock       TimeProvider
	pausedSince time.Time
	totalPaused time.Duration
}

// NewRunControl creates a paused control reading time from clock
func NewRunControl(clock TimeProvider) *RunControl {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &RunControl{
		clock:       clock,
		pausedSince: clock.Now(),
	}
}

// State returns the current state
func (rc *RunControl) State() RunState {
	if rc.running.Load() {
		return Running
	}
	return Paused
}

func (rc *RunControl) IsRunning() bool {
	return rc.running.Load()
}

// Resume switches to Running, reporting whether the state changed
func (rc *RunControl) Resume() bool {
	if !rc.running.CompareAndSwap(false, true) {
		return false
	}
	rc.mu.Lock()
	if !rc.pausedSince.IsZero() {
		rc.totalPaused += rc.clock.Now().Sub(rc.pausedSince)
		rc.pausedSince = time.Time{}
	}
	rc.mu.Unlock()
	rc.toggles.Add(1)
	return true
}

// Pause switches to Paused, reporting whether the state changed
func (rc *RunControl) Pause() bool {
	if !rc.running.CompareAndSwap(true, false) {
		return false
	}
	rc.mu.Lock()
	rc.pausedSince = rc.clock.Now()
	rc.mu.Unlock()
	rc.toggles.Add(1)
	return true
}

// Toggle flips the state and returns the new one
func (rc *RunControl) Toggle() RunState {
	if rc.Pause() {
		return Paused
	}
	rc.Resume()
	return rc.State()
}

// Toggles returns the number of state changes since creation
func (rc *RunControl) Toggles() int64 {
	return rc.toggles.Load()
}

// PausedFor returns cumulative paused time, including the current pause
func (rc *RunControl) PausedFor() time.Duration {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	total := rc.totalPaused
	if !rc.running.Load() && !rc.pausedSince.IsZero() {
		total += rc.clock.Now().Sub(rc.pausedSince)
	}
	return total
}
