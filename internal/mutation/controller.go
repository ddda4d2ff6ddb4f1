// Package mutation commits threshold edits to the server optimistically:
// the read cache reflects the edit immediately, a failed commit restores the
// exact pre-write snapshot, and stale completions from superseded attempts
// are discarded.
package mutation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dookkeobi/leakpot/internal/model"
	"github.com/dookkeobi/leakpot/internal/overlay"
	"github.com/dookkeobi/leakpot/internal/readmodel"
)

// BudgetUpdater issues the server-side threshold update. *api.Client
// satisfies it.
type BudgetUpdater interface {
	UpdateBudget(ctx context.Context, budgetID, budget int64) error
}

// Controller runs one optimistic commit per fired debounce timer. A new
// edit never waits for an in-flight request; instead every attempt carries
// a per-category sequence number, and only the newest attempt for a
// category may settle visible state when it completes.
type Controller struct {
	updater BudgetUpdater
	cells   *readmodel.Store
	pending *overlay.Pending
	logger  *slog.Logger
	seqs    map[int64]uint64
	mu      sync.Mutex
}

// NewController creates a controller wiring the read cache, the pending
// overlay, and the server updater together.
func NewController(updater BudgetUpdater, cells *readmodel.Store, pending *overlay.Pending) *Controller {
	return &Controller{
		updater: updater,
		cells:   cells,
		pending: pending,
		seqs:    make(map[int64]uint64),
		logger:  slog.Default().With("component", "mutation"),
	}
}

// Commit performs one mutation attempt for a category: snapshot the
// period's cache cell, apply the optimistic write, call the server, then
// settle. The committed value is whatever the pending overlay holds at call
// time, so a burst of edits collapsed by the debounce window commits its
// final value.
//
// Settling is guarded: if a newer attempt for the same category was issued
// while this one was in flight, neither the rollback nor the
// pending-override clear is applied here; the newer attempt owns them.
func (c *Controller) Commit(ctx context.Context, period model.Period, id int64) error {
	value, ok := c.pending.Get(id)
	if !ok {
		// Edit already settled or was never recorded; nothing to commit.
		return nil
	}

	seq := c.nextSeq(id)

	snapshot, existed := c.cells.Snapshot(period)
	c.cells.SetThreshold(period, id, value)

	err := c.updater.UpdateBudget(ctx, id, value)

	if !c.isLatest(id, seq) {
		c.logger.Debug("Discarding stale commit completion",
			"category_id", id, "seq", seq, "error", err)
		return nil
	}

	if err != nil {
		c.cells.Restore(period, snapshot, existed)
		c.pending.Clear(id)
		c.logger.Error("Budget commit failed, rolled back",
			"category_id", id, "period", period.String(), "error", err)
		return err
	}

	c.pending.Clear(id)
	c.logger.Debug("Budget commit succeeded",
		"category_id", id, "period", period.String(), "budget", value)
	return nil
}

// nextSeq issues the next attempt number for a category, superseding any
// attempt still in flight.
func (c *Controller) nextSeq(id int64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seqs[id]++
	return c.seqs[id]
}

func (c *Controller) isLatest(id int64, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seqs[id] == seq
}
