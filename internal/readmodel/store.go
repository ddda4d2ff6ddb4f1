// Package readmodel is the client-side read cache for fetched budget data:
// one value cell per period, with whole-value snapshot and restore so a
// failed optimistic write can be rolled back exactly.
package readmodel

import (
	"sync"

	"github.com/dookkeobi/leakpot/internal/model"
)

// Store maps periods to their cached category lists. All categories of a
// period share one cell, so rollback always replaces the whole list rather
// than merging per field.
type Store struct {
	cells map[model.Period][]model.Category
	mu    sync.RWMutex
}

// NewStore creates an empty read-model store.
func NewStore() *Store {
	return &Store{cells: make(map[model.Period][]model.Category)}
}

// Get returns a copy of the cached list for a period, if one exists.
func (s *Store) Get(period model.Period) ([]model.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cell, ok := s.cells[period]
	if !ok {
		return nil, false
	}
	return cloneCategories(cell), true
}

// Set replaces the cached list for a period. The input is copied, so later
// mutation by the caller cannot alias cache state.
func (s *Store) Set(period model.Period, categories []model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[period] = cloneCategories(categories)
}

// SetThreshold applies an optimistic threshold write to one category within
// a period's cell. Unknown periods and IDs are no-ops.
func (s *Store) SetThreshold(period model.Period, id, threshold int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell, ok := s.cells[period]
	if !ok {
		return
	}
	for i := range cell {
		if cell[i].ID == id {
			cell[i].Threshold = threshold
			return
		}
	}
}

// Snapshot captures the current cell for a period. The second return is
// false when no cell exists, which Restore interprets as "delete".
func (s *Store) Snapshot(period model.Period) ([]model.Category, bool) {
	return s.Get(period)
}

// Restore puts a period's cell back to a previously captured snapshot. A
// snapshot taken when no cell existed removes the cell again, so a rollback
// can never invent data.
func (s *Store) Restore(period model.Period, snapshot []model.Category, existed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !existed {
		delete(s.cells, period)
		return
	}
	s.cells[period] = cloneCategories(snapshot)
}

// Invalidate drops the cached cell for a period, forcing the next reader to
// refetch.
func (s *Store) Invalidate(period model.Period) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cells, period)
}

func cloneCategories(in []model.Category) []model.Category {
	out := make([]model.Category, len(in))
	copy(out, in)
	return out
}
