package store

import (
	"context"

	"github.com/nulzo/summary-gateway/internal/store/model"
)

type contextKey string

const (
	ContextKeyAppName   contextKey = "app_name"
	ContextKeyRequestID contextKey = "request_id"
)

// Repository is the main contract for the data layer.
type Repository interface {
	Attempts() AttemptRepository

	// transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	Close() error
}

type AttemptRepository interface {
	// Log stores one provider attempt.
	Log(ctx context.Context, attempt *model.AttemptLog) error
	// ListByRequest returns every attempt made for one gateway request, in order.
	ListByRequest(ctx context.Context, requestID string) ([]model.AttemptLog, error)
	// GetDailyStats returns per-provider aggregates grouped by day.
	GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error)
}
