package storage

import (
	"context"
	"fmt"

	"github.com/dookkeobi/leakpot/internal/model"
)

// SaveBudgets replaces the cached category list for one period. Positions
// are preserved so the offline view keeps the server's ordering.
func (s *SQLiteStorage) SaveBudgets(ctx context.Context, period model.Period, categories []model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if !period.Valid() {
		return fmt.Errorf("invalid period %s", period)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM budget_cache WHERE year = ? AND month = ?`,
		period.Year, period.Month); err != nil {
		return fmt.Errorf("failed to clear budget cache: %w", err)
	}

	for i, cat := range categories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO budget_cache (year, month, category_id, position, name, spending, threshold, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			period.Year, period.Month, cat.ID, i, cat.Name, cat.Spending, cat.Threshold); err != nil {
			return fmt.Errorf("failed to cache category %d: %w", cat.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit budget cache: %w", err)
	}
	return nil
}

// GetBudgets returns the cached category list for a period, in the order it
// was fetched. An empty slice means no cache entry exists.
func (s *SQLiteStorage) GetBudgets(ctx context.Context, period model.Period) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, name, spending, threshold
		FROM budget_cache
		WHERE year = ? AND month = ?
		ORDER BY position`,
		period.Year, period.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget cache: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Spending, &cat.Threshold); err != nil {
			return nil, fmt.Errorf("failed to scan cached category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read budget cache: %w", err)
	}

	return categories, nil
}

// SaveLeakSummary replaces the cached yearly leak summary.
func (s *SQLiteStorage) SaveLeakSummary(ctx context.Context, summaries []model.MonthSummary) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leak_summary`); err != nil {
		return fmt.Errorf("failed to clear leak summary: %w", err)
	}

	for _, summary := range summaries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO leak_summary (budget_date, leaked, fetched_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)`,
			summary.BudgetDate, summary.Leaked); err != nil {
			return fmt.Errorf("failed to cache summary %s: %w", summary.BudgetDate, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit leak summary: %w", err)
	}
	return nil
}

// GetLeakSummary returns the cached yearly leak summary.
func (s *SQLiteStorage) GetLeakSummary(ctx context.Context) ([]model.MonthSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT budget_date, leaked FROM leak_summary ORDER BY budget_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leak summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []model.MonthSummary
	for rows.Next() {
		var summary model.MonthSummary
		if err := rows.Scan(&summary.BudgetDate, &summary.Leaked); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leak summary: %w", err)
	}

	return summaries, nil
}
