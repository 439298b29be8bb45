package status

import (
	"sort"
	"sync"
)

// MetricMap is a keyed set of metric cells of type T
// Lookup-or-create takes the lock; writers cache the returned pointer and update it lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	cells map[string]*T
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{cells: make(map[string]*T)}
}

// Get returns the cell for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	cell, ok := m.cells[key]
	m.mu.RUnlock()
	if ok {
		return cell
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cell, ok = m.cells[key]; ok {
		return cell
	}
	cell = new(T)
	m.cells[key] = cell
	return cell
}

// Lookup returns the cell for key without creating it
func (m *MetricMap[T]) Lookup(key string) (*T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cell, ok := m.cells[key]
	return cell, ok
}

// Range visits every cell in key order
func (m *MetricMap[T]) Range(fn func(key string, cell *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.cells))
	for k := range m.cells {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m.cells[k])
	}
}

// Count returns the number of cells
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cells)
}
