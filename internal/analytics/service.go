package analytics

import (
	"context"

	"github.com/nulzo/summary-gateway/internal/store"
	"github.com/nulzo/summary-gateway/internal/store/model"
)

const (
	DefaultDays = 7
	MaxDays     = 90
)

type Service interface {
	GetUsageOverview(ctx context.Context, days int) ([]model.DailyStats, error)
	GetRequestAttempts(ctx context.Context, requestID string) ([]model.AttemptLog, error)
}

type service struct {
	repo store.Repository
}

func NewService(repo store.Repository) Service {
	return &service{
		repo: repo,
	}
}

// ClampDays bounds a requested window to [1, MaxDays]. Callers apply
// DefaultDays themselves when no window was requested.
func ClampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

// GetUsageOverview returns per-provider daily stats for the last days days.
func (s *service) GetUsageOverview(ctx context.Context, days int) ([]model.DailyStats, error) {
	stats, err := s.repo.Attempts().GetDailyStats(ctx, ClampDays(days))
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []model.DailyStats{}
	}
	return stats, nil
}

func (s *service) GetRequestAttempts(ctx context.Context, requestID string) ([]model.AttemptLog, error) {
	attempts, err := s.repo.Attempts().ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []model.AttemptLog{}
	}
	return attempts, nil
}
