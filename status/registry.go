package status

import (
	"fmt"
	"sync/atomic"
)

// Metric keys published by the simulation
const (
	KeyTicks         = "sim.ticks"
	KeyBodies        = "sim.bodies"
	KeySimTime       = "sim.time"
	KeyPausedSeconds = "sim.paused_s"
	KeyDroppedTicks  = "sim.dropped_ticks"
	KeyPredictMs     = "predict.ms"
	KeyPredictMaxMs  = "predict.max_ms"
	KeyPredictSteps  = "predict.steps"
	KeyFPS           = "frame.fps"
	KeyRunning       = "sim.running"
)

// Registry groups counters, gauges and flags
// Producers cache cell pointers at construction; the HUD reads them every frame
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
	Flags    *MetricMap[atomic.Bool]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
		Flags:    NewMetricMap[atomic.Bool](),
	}
}

// TotalCount returns the number of registered metrics of every kind
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count() + r.Flags.Count()
}

// Lines renders every metric as "key=value", counters first, each group in key order
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Counters.Range(func(k string, c *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s=%d", k, c.Load()))
	})
	r.Gauges.Range(func(k string, g *Gauge) {
		lines = append(lines, fmt.Sprintf("%s=%.2f", k, g.Get()))
	})
	r.Flags.Range(func(k string, f *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s=%t", k, f.Load()))
	})
	return lines
}
