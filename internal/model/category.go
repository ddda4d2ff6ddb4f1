package model

// Category represents one budget line item for a period: what was actually
// spent and the threshold the user has set for themselves. Spending is
// server-authoritative; Threshold is the only user-editable field.
type Category struct {
	Name      string
	ID        int64
	Spending  int64
	Threshold int64
}

// Leaking reports whether spending strictly exceeds the threshold.
func (c Category) Leaking() bool {
	return c.Spending > c.Threshold
}

// LeakAmount returns the over-spend for a leaking category, 0 otherwise.
func (c Category) LeakAmount() int64 {
	if c.Spending > c.Threshold {
		return c.Spending - c.Threshold
	}
	return 0
}

// LeakingCategory is a Category annotated with its position in the source
// list. The index deterministically maps the leak to a visual anchor slot.
type LeakingCategory struct {
	Category
	OriginalIndex int
}

// DefaultCategories returns the fallback category set used when no server
// data is available for a period. Every threshold equals its spending, so
// the fallback is leak-free and clearly distinguishable from real data.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: "Food", Spending: 300000, Threshold: 300000},
		{ID: 2, Name: "Shopping", Spending: 220000, Threshold: 220000},
		{ID: 3, Name: "Transport", Spending: 150000, Threshold: 150000},
		{ID: 4, Name: "Hobby", Spending: 100000, Threshold: 100000},
		{ID: 5, Name: "Housing", Spending: 550000, Threshold: 550000},
		{ID: 6, Name: "Education", Spending: 280000, Threshold: 280000},
		{ID: 7, Name: "Communication", Spending: 90000, Threshold: 90000},
		{ID: 8, Name: "Pets", Spending: 100000, Threshold: 100000},
		{ID: 9, Name: "Health", Spending: 80000, Threshold: 80000},
		{ID: 10, Name: "Events", Spending: 120000, Threshold: 120000},
		{ID: 11, Name: "Savings", Spending: 200000, Threshold: 200000},
		{ID: 12, Name: "Etc", Spending: 50000, Threshold: 50000},
	}
}
