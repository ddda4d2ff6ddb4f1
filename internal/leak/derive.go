// Package leak computes which budget categories are leaking and by how much.
// Everything here is pure: no I/O, no shared state, identical output for
// identical input.
package leak

import (
	"github.com/dookkeobi/leakpot/internal/model"
)

// Derive returns the categories whose spending strictly exceeds their
// threshold, each annotated with its index in the input list, together with
// the aggregate over-spend across exactly that set.
//
// Order in the result follows input order, so anchor slots derived from
// OriginalIndex are stable across calls.
func Derive(categories []model.Category) ([]model.LeakingCategory, int64) {
	leaking := make([]model.LeakingCategory, 0, len(categories))
	var total int64

	for i, cat := range categories {
		if cat.Spending > cat.Threshold {
			leaking = append(leaking, model.LeakingCategory{
				Category:      cat,
				OriginalIndex: i,
			})
			total += cat.Spending - cat.Threshold
		}
	}

	return leaking, total
}

// BuildYearIndex builds a (year, month) -> leaked lookup from a yearly
// summary. Entries with malformed period keys are skipped rather than
// failing the whole index; they only drive navigation coloring.
func BuildYearIndex(summaries []model.MonthSummary) map[model.Period]bool {
	index := make(map[model.Period]bool, len(summaries))
	for _, s := range summaries {
		period, err := model.ParsePeriod(s.BudgetDate)
		if err != nil {
			continue
		}
		index[period] = s.Leaked
	}
	return index
}
