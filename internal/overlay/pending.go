// Package overlay holds in-flight threshold edits and merges them over
// server-fetched categories, so the UI reflects a drag immediately while the
// commit round-trip is still outstanding.
package overlay

import (
	"sync"

	"github.com/dookkeobi/leakpot/internal/model"
)

// Pending maps category IDs to locally-held threshold values not yet
// confirmed by the server. Last local write wins until the commit settles
// and the entry is cleared.
type Pending struct {
	thresholds map[int64]int64
	mu         sync.RWMutex
}

// NewPending creates an empty pending-threshold overlay.
func NewPending() *Pending {
	return &Pending{thresholds: make(map[int64]int64)}
}

// Set records a pending threshold for a category, overwriting any previous
// pending value for the same ID.
func (p *Pending) Set(id, threshold int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.thresholds[id] = threshold
}

// Get returns the pending threshold for a category, if any.
func (p *Pending) Get(id int64) (int64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.thresholds[id]
	return v, ok
}

// Clear removes the pending entry for a category. Called when the commit
// settles, success or failure.
func (p *Pending) Clear(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.thresholds, id)
}

// Len returns the number of pending entries.
func (p *Pending) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.thresholds)
}

// Materialize returns the effective category list: the server baseline with
// every pending threshold applied on top. The input is never mutated.
func (p *Pending) Materialize(server []model.Category) []model.Category {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]model.Category, len(server))
	copy(out, server)
	for i := range out {
		if v, ok := p.thresholds[out[i].ID]; ok {
			out[i].Threshold = v
		}
	}
	return out
}
