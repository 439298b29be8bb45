package engine

import "time"

// TimeProvider supplies wall-clock readings to the frame loop and the run control
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock; readings carry the monotonic component
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a system time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
