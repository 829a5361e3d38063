// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"sync"
	"time"
)

// DriftSnapshot is one recorded void-density observation.
type DriftSnapshot struct {
	Density float64   `json:"density" yaml:"density"`
	Time    time.Time `json:"time" yaml:"time"`
}

// DriftTracker records void-density snapshots over time so callers can
// tell whether a void is closing or expanding across repeated mappings.
type DriftTracker struct {
	mu        sync.Mutex
	snapshots []DriftSnapshot
}

// Record appends one density observation.
func (t *DriftTracker) Record(density float64, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snapshots = append(t.snapshots, DriftSnapshot{Density: density, Time: at})
}

// Rate returns first density minus last: positive means the void is
// shrinking. Fewer than two snapshots yield 0.
func (t *DriftTracker) Rate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.snapshots) < 2 {
		return 0
	}
	return t.snapshots[0].Density - t.snapshots[len(t.snapshots)-1].Density
}

// Snapshots returns a copy of the recorded observations.
func (t *DriftTracker) Snapshots() []DriftSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]DriftSnapshot, len(t.snapshots))
	copy(out, t.snapshots)
	return out
}
