package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nulzo/summary-gateway/internal/store"
	"github.com/nulzo/summary-gateway/internal/store/model"
)

// DB defines the interface for database operations (satisfied by *sqlx.DB and *sqlx.Tx)
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SqliteRepository implements store.Repository
type SqliteRepository struct {
	db       *sqlx.DB // Required for starting new transactions
	executor DB       // Used for actual queries (can be *sqlx.DB or *sqlx.Tx)
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{
		db:       db,
		executor: db,
	}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	txRepo := &SqliteRepository{
		db:       r.db,
		executor: tx,
	}

	if err := fn(txRepo); err != nil {
		// attempt rollback, but prioritize original error
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *SqliteRepository) Attempts() store.AttemptRepository {
	return &attemptRepo{db: r.executor}
}

type attemptRepo struct {
	db DB
}

func (r *attemptRepo) Log(ctx context.Context, attempt *model.AttemptLog) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO attempt_logs (
		id, request_id, app_name, provider, model, position,
		outcome, error, status_code, strategy, latency_ms, created_at
	) VALUES (
		:id, :request_id, :app_name, :provider, :model, :position,
		:outcome, :error, :status_code, :strategy, :latency_ms, :created_at
	)`
	if _, err := r.db.NamedExecContext(ctx, query, attempt); err != nil {
		return fmt.Errorf("failed to log attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) ListByRequest(ctx context.Context, requestID string) ([]model.AttemptLog, error) {
	var attempts []model.AttemptLog
	query := `SELECT * FROM attempt_logs WHERE request_id = ? ORDER BY position ASC, created_at ASC`
	err := r.db.SelectContext(ctx, &attempts, query, requestID)
	return attempts, err
}

func (r *attemptRepo) GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error) {
	var stats []model.DailyStats
	query := `
	SELECT
		DATE(created_at) as date,
		provider,
		COUNT(*) as total_attempts,
		COALESCE(SUM(CASE WHEN outcome = 'success' THEN 1 ELSE 0 END), 0) as successes,
		COALESCE(SUM(CASE WHEN outcome = 'failure' THEN 1 ELSE 0 END), 0) as failures,
		COALESCE(AVG(latency_ms), 0) as avg_latency
	FROM attempt_logs
	WHERE created_at >= DATE('now', ?)
	GROUP BY DATE(created_at), provider
	ORDER BY date ASC, provider ASC`

	modifier := fmt.Sprintf("-%d days", days)
	if err := r.db.SelectContext(ctx, &stats, query, modifier); err != nil {
		return nil, err
	}
	return stats, nil
}
