package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dookkeobi/leakpot/internal/model"
)

// Transaction timestamps arrive without a zone, occasionally without
// seconds.
var transactionTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// GetYearTransactions fetches the per-month spending totals for the current
// year.
func (c *Client) GetYearTransactions(ctx context.Context) ([]model.YearTotal, error) {
	var entries []struct {
		Date        string `json:"date"`
		TotalAmount int64  `json:"totalAmount"`
		Leaked      bool   `json:"leaked"`
	}
	if err := c.get(ctx, "/api/transactions", &entries); err != nil {
		return nil, err
	}

	totals := make([]model.YearTotal, 0, len(entries))
	for _, e := range entries {
		totals = append(totals, model.YearTotal{
			Date:        e.Date,
			TotalAmount: e.TotalAmount,
			Leaked:      e.Leaked,
		})
	}
	return totals, nil
}

// GetMonthlyTransactions fetches the individual transactions of one period.
func (c *Client) GetMonthlyTransactions(ctx context.Context, period model.Period) ([]model.Transaction, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("invalid period %s", period)
	}

	var entries []struct {
		TransactionDateTime string `json:"transactionDateTime"`
		MerchantName        string `json:"merchantName"`
		Category            string `json:"category"`
		ID                  int64  `json:"id"`
		Amount              int64  `json:"amount"`
	}
	path := fmt.Sprintf("/api/transactions/%d/%d", period.Year, period.Month)
	if err := c.get(ctx, path, &entries); err != nil {
		return nil, err
	}

	transactions := make([]model.Transaction, 0, len(entries))
	for _, e := range entries {
		transactions = append(transactions, model.Transaction{
			ID:           e.ID,
			DateTime:     parseTransactionTime(e.TransactionDateTime, c),
			Amount:       e.Amount,
			MerchantName: e.MerchantName,
			Category:     e.Category,
		})
	}
	return transactions, nil
}

// UpdateTransactionCategory moves a transaction to another category label.
func (c *Client) UpdateTransactionCategory(ctx context.Context, transactionID int64, category string) error {
	body := struct {
		Category string `json:"category"`
	}{Category: category}

	path := fmt.Sprintf("/api/transactions/%d/category", transactionID)
	if err := c.do(ctx, http.MethodPatch, path, body, nil); err != nil {
		return err
	}

	c.logger.Debug("Updated transaction category", "transaction_id", transactionID, "category", category)
	return nil
}

func parseTransactionTime(value string, c *Client) time.Time {
	for _, layout := range transactionTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	c.logger.Error("Failed to parse transaction timestamp", "value", value)
	return time.Time{}
}
