package model

import (
	"time"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeCached  = "cached"
)

// AttemptLog is one provider call made while serving a gateway request.
type AttemptLog struct {
	ID         string    `db:"id" json:"id"`
	RequestID  string    `db:"request_id" json:"request_id"`
	AppName    string    `db:"app_name" json:"app_name"`
	Provider   string    `db:"provider" json:"provider"`
	Model      string    `db:"model" json:"model"`
	Position   int       `db:"position" json:"position"`
	Outcome    string    `db:"outcome" json:"outcome"`
	Error      string    `db:"error" json:"error,omitempty"`
	StatusCode int       `db:"status_code" json:"status_code,omitempty"`
	Strategy   string    `db:"strategy" json:"strategy,omitempty"`
	LatencyMS  int64     `db:"latency_ms" json:"latency_ms"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// DailyStats represents aggregated attempt data for one provider on one day.
type DailyStats struct {
	Date           string  `db:"date" json:"date"`
	Provider       string  `db:"provider" json:"provider"`
	TotalAttempts  int     `db:"total_attempts" json:"total_attempts"`
	Successes      int     `db:"successes" json:"successes"`
	Failures       int     `db:"failures" json:"failures"`
	AverageLatency float64 `db:"avg_latency" json:"avg_latency"`
}
