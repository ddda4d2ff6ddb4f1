package budget

import (
	"context"
	"log/slog"

	"github.com/dookkeobi/leakpot/internal/model"
)

// Fetcher loads budget data from the backend.
type Fetcher interface {
	GetMonthlyBudgets(ctx context.Context, period model.Period) ([]model.Category, error)
	GetYearlyBudgets(ctx context.Context) ([]model.MonthSummary, error)
}

// Cache persists fetched budget data for offline use.
type Cache interface {
	SaveBudgets(ctx context.Context, period model.Period, categories []model.Category) error
	GetBudgets(ctx context.Context, period model.Period) ([]model.Category, error)
	SaveLeakSummary(ctx context.Context, summaries []model.MonthSummary) error
	GetLeakSummary(ctx context.Context) ([]model.MonthSummary, error)
}

// CachedService reads budgets through the backend and keeps the local cache
// warm. When the backend is unreachable it serves the last cached data, so
// the pot keeps working offline. Cache write failures never fail a read.
type CachedService struct {
	fetcher Fetcher
	cache   Cache
	logger  *slog.Logger
}

// NewCachedService wraps a fetcher with an optional cache. A nil cache makes
// the service a pass-through.
func NewCachedService(fetcher Fetcher, cache Cache) *CachedService {
	return &CachedService{
		fetcher: fetcher,
		cache:   cache,
		logger:  slog.Default().With("component", "budget"),
	}
}

// GetMonthlyBudgets fetches one period's categories, falling back to the
// cache when the backend fails.
func (s *CachedService) GetMonthlyBudgets(ctx context.Context, period model.Period) ([]model.Category, error) {
	categories, err := s.fetcher.GetMonthlyBudgets(ctx, period)
	if err == nil {
		if s.cache != nil {
			if saveErr := s.cache.SaveBudgets(ctx, period, categories); saveErr != nil {
				s.logger.Warn("Failed to cache budgets", "period", period.String(), "error", saveErr)
			}
		}
		return categories, nil
	}

	if s.cache != nil {
		cached, cacheErr := s.cache.GetBudgets(ctx, period)
		if cacheErr == nil && len(cached) > 0 {
			s.logger.Warn("Backend unreachable, serving cached budgets",
				"period", period.String(), "error", err)
			return cached, nil
		}
	}

	return nil, err
}

// GetYearlyBudgets fetches the yearly leak summary, falling back to the
// cache when the backend fails.
func (s *CachedService) GetYearlyBudgets(ctx context.Context) ([]model.MonthSummary, error) {
	summaries, err := s.fetcher.GetYearlyBudgets(ctx)
	if err == nil {
		if s.cache != nil {
			if saveErr := s.cache.SaveLeakSummary(ctx, summaries); saveErr != nil {
				s.logger.Warn("Failed to cache leak summary", "error", saveErr)
			}
		}
		return summaries, nil
	}

	if s.cache != nil {
		cached, cacheErr := s.cache.GetLeakSummary(ctx)
		if cacheErr == nil && len(cached) > 0 {
			s.logger.Warn("Backend unreachable, serving cached leak summary", "error", err)
			return cached, nil
		}
	}

	return nil, err
}
