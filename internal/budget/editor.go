// Package budget wires the threshold-editing flow together: immediate
// pending overlay, debounced commit scheduling, and optimistic server
// mutation for one period's category list.
package budget

import (
	"context"
	"log/slog"
	"time"

	"github.com/dookkeobi/leakpot/internal/debounce"
	"github.com/dookkeobi/leakpot/internal/leak"
	"github.com/dookkeobi/leakpot/internal/model"
	"github.com/dookkeobi/leakpot/internal/mutation"
	"github.com/dookkeobi/leakpot/internal/overlay"
	"github.com/dookkeobi/leakpot/internal/readmodel"
)

// Editor owns the editing state for one budget period. Reads always see the
// server baseline with pending edits overlaid; writes are debounced and
// committed optimistically.
type Editor struct {
	pending   *overlay.Pending
	cells     *readmodel.Store
	scheduler *debounce.Scheduler
	ctrl      *mutation.Controller
	logger    *slog.Logger
	ctx       context.Context
	period    model.Period
}

// NewEditor creates an editor for a period. The window controls commit
// debouncing; zero selects the default. The context bounds commit requests
// fired by the scheduler.
func NewEditor(ctx context.Context, updater mutation.BudgetUpdater, period model.Period, window time.Duration) *Editor {
	e := &Editor{
		pending: overlay.NewPending(),
		cells:   readmodel.NewStore(),
		period:  period,
		ctx:     ctx,
		logger:  slog.Default().With("component", "budget"),
	}
	e.ctrl = mutation.NewController(updater, e.cells, e.pending)
	e.scheduler = debounce.NewScheduler(window, e.commit)
	return e
}

// SetBaseline installs the server-fetched category list for the period.
func (e *Editor) SetBaseline(categories []model.Category) {
	e.cells.Set(e.period, categories)
}

// HasBaseline reports whether server data has been installed.
func (e *Editor) HasBaseline() bool {
	_, ok := e.cells.Get(e.period)
	return ok
}

// OnThresholdChange records a threshold edit. The pending overlay is
// updated synchronously so the next Categories call reflects the drag with
// zero latency, and the category's commit window restarts.
func (e *Editor) OnThresholdChange(id, value int64) {
	e.pending.Set(id, value)
	e.scheduler.Trigger(id)
}

// Categories returns the effective category list: the cached server
// baseline (or the default set when nothing is cached) with pending edits
// overlaid.
func (e *Editor) Categories() []model.Category {
	baseline, ok := e.cells.Get(e.period)
	if !ok {
		baseline = model.DefaultCategories()
	}
	return e.pending.Materialize(baseline)
}

// Leaks derives the leaking set and total over-spend from the effective
// category list.
func (e *Editor) Leaks() ([]model.LeakingCategory, int64) {
	return leak.Derive(e.Categories())
}

// Flush commits a category's pending edit immediately, bypassing the
// debounce window. Used when the user leaves the page with an edit still
// waiting.
func (e *Editor) Flush(id int64) error {
	e.scheduler.Cancel(id)
	return e.ctrl.Commit(e.ctx, e.period, id)
}

// Close cancels all outstanding commit timers. No commit fires after Close;
// requests already in flight settle through the controller's staleness
// guard.
func (e *Editor) Close() {
	e.scheduler.Close()
}

func (e *Editor) commit(id int64) {
	if err := e.ctrl.Commit(e.ctx, e.period, id); err != nil {
		// Failure already rolled back and logged; nothing to surface here.
		e.logger.Debug("Scheduled commit failed", "category_id", id)
	}
}
