// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"
	"time"
)

// Period identifies one budget cycle: a (year, month) pair.
type Period struct {
	Year  int
	Month int
}

// CurrentPeriod returns the period containing now.
func CurrentPeriod() Period {
	now := time.Now()
	return Period{Year: now.Year(), Month: int(now.Month())}
}

// Valid reports whether the period has a plausible year and a month in 1..12.
func (p Period) Valid() bool {
	return p.Year >= 1 && p.Month >= 1 && p.Month <= 12
}

// String renders the period as "YYYY-MM", the server's budgetDate format.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// ParsePeriod parses a "YYYY-MM" key into a Period.
func ParsePeriod(s string) (Period, error) {
	var p Period
	if _, err := fmt.Sscanf(s, "%4d-%2d", &p.Year, &p.Month); err != nil {
		return Period{}, fmt.Errorf("invalid period key %q: %w", s, err)
	}
	// Sscanf stops at the first non-digit, so round-trip through String to
	// reject trailing garbage and unpadded fields.
	if !p.Valid() || p.String() != s {
		return Period{}, fmt.Errorf("invalid period key %q", s)
	}
	return p, nil
}

// MonthSummary is one entry of the yearly budget summary: whether the
// period's budget leaked.
type MonthSummary struct {
	BudgetDate string
	Leaked     bool
}
