package api

import (
	"context"
	"fmt"

	"github.com/dookkeobi/leakpot/internal/model"
)

// CategoryPrediction is the AI advisor's spending prediction for one
// category: the expected range, the current pace, and whether the category
// is on track.
type CategoryPrediction struct {
	Min     int64   `json:"min"`
	Max     int64   `json:"max"`
	Current int64   `json:"current"`
	Real    int64   `json:"real"`
	Avg     float64 `json:"avg"`
	Result  bool    `json:"result"`
}

// AdviceReport is one month of advisor output.
type AdviceReport struct {
	Predictions     map[string]CategoryPrediction `json:"categories_prediction"`
	Year            int                           `json:"year"`
	Month           int                           `json:"month"`
	CategoriesCount int                           `json:"categories_count"`
}

// GetAdvice fetches the AI advisor's report. With a zero period the server
// returns every available month.
func (c *Client) GetAdvice(ctx context.Context, period model.Period) ([]AdviceReport, error) {
	path := "/api/ai/data/doojo"
	if period.Valid() {
		path = fmt.Sprintf("%s?year=%d&month=%d", path, period.Year, period.Month)
	}

	var payload struct {
		FileID  string         `json:"file_id"`
		Reports []AdviceReport `json:"doojo"`
	}
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}

	return payload.Reports, nil
}
