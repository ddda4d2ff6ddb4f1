package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dookkeobi/leakpot/internal/model"
)

// budgetEntry is the wire shape of one monthly budget row.
type budgetEntry struct {
	Category      string `json:"category"`
	ID            int64  `json:"id"`
	Budget        int64  `json:"budget"`
	Spending      int64  `json:"spending"`
	InitialBudget int64  `json:"initialBudget"`
}

// GetMonthlyBudgets fetches the budget categories for one period. The
// server's "budget" field is the user threshold.
func (c *Client) GetMonthlyBudgets(ctx context.Context, period model.Period) ([]model.Category, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("invalid period %s", period)
	}

	var entries []budgetEntry
	path := fmt.Sprintf("/api/budgets/%d/%d", period.Year, period.Month)
	if err := c.get(ctx, path, &entries); err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0, len(entries))
	for _, e := range entries {
		categories = append(categories, model.Category{
			ID:        e.ID,
			Name:      e.Category,
			Spending:  e.Spending,
			Threshold: e.Budget,
		})
	}

	c.logger.Debug("Fetched monthly budgets", "period", period.String(), "count", len(categories))
	return categories, nil
}

// UpdateBudget commits a new threshold for one budget category.
func (c *Client) UpdateBudget(ctx context.Context, budgetID, budget int64) error {
	body := struct {
		BudgetID int64 `json:"budgetId"`
		Budget   int64 `json:"budget"`
	}{BudgetID: budgetID, Budget: budget}

	var resp struct {
		BudgetID int64 `json:"budgetId"`
		Budget   int64 `json:"budget"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/budgets", body, &resp); err != nil {
		return err
	}

	c.logger.Debug("Updated budget", "budget_id", budgetID, "budget", budget)
	return nil
}

// GetYearlyBudgets fetches the per-month leak summary for the current year.
func (c *Client) GetYearlyBudgets(ctx context.Context) ([]model.MonthSummary, error) {
	var entries []struct {
		BudgetDate string `json:"budgetDate"`
		Leaked     bool   `json:"leaked"`
	}
	if err := c.get(ctx, "/api/budgets", &entries); err != nil {
		return nil, err
	}

	summaries := make([]model.MonthSummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, model.MonthSummary{
			BudgetDate: e.BudgetDate,
			Leaked:     e.Leaked,
		})
	}
	return summaries, nil
}
