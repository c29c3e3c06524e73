package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nulzo/summary-gateway/internal/store"
	"github.com/nulzo/summary-gateway/internal/store/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) store.Repository {
	t.Helper()
	repo, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestAttempts_LogAndListByRequest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Attempts().Log(ctx, &model.AttemptLog{
		RequestID: "req-1", Provider: "groq", Position: 1, Outcome: model.OutcomeSuccess, Strategy: "openai", LatencyMS: 120,
	}))
	require.NoError(t, repo.Attempts().Log(ctx, &model.AttemptLog{
		RequestID: "req-1", Provider: "gemini", Position: 0, Outcome: model.OutcomeFailure, Error: "Gemini 500", LatencyMS: 40,
	}))
	require.NoError(t, repo.Attempts().Log(ctx, &model.AttemptLog{
		RequestID: "req-2", Provider: "gemini", Outcome: model.OutcomeSuccess,
	}))

	attempts, err := repo.Attempts().ListByRequest(ctx, "req-1")
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "gemini", attempts[0].Provider)
	assert.Equal(t, "Gemini 500", attempts[0].Error)
	assert.Equal(t, "groq", attempts[1].Provider)
	assert.NotEmpty(t, attempts[1].ID)
}

func TestAttempts_DailyStatsPerProvider(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, a := range []model.AttemptLog{
		{RequestID: "a", Provider: "gemini", Outcome: model.OutcomeFailure, LatencyMS: 100, CreatedAt: now},
		{RequestID: "a", Provider: "groq", Outcome: model.OutcomeSuccess, LatencyMS: 300, CreatedAt: now},
		{RequestID: "b", Provider: "gemini", Outcome: model.OutcomeSuccess, LatencyMS: 200, CreatedAt: now},
		{RequestID: "old", Provider: "gemini", Outcome: model.OutcomeSuccess, CreatedAt: now.AddDate(0, 0, -30)},
	} {
		a := a
		require.NoError(t, repo.Attempts().Log(ctx, &a))
	}

	stats, err := repo.Attempts().GetDailyStats(ctx, 7)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "gemini", stats[0].Provider)
	assert.Equal(t, 2, stats[0].TotalAttempts)
	assert.Equal(t, 1, stats[0].Successes)
	assert.Equal(t, 1, stats[0].Failures)
	assert.InDelta(t, 150.0, stats[0].AverageLatency, 0.01)

	assert.Equal(t, "groq", stats[1].Provider)
	assert.Equal(t, 1, stats[1].Successes)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.WithTx(ctx, func(tx store.Repository) error {
		require.NoError(t, tx.Attempts().Log(ctx, &model.AttemptLog{RequestID: "tx", Provider: "openai", Outcome: model.OutcomeSuccess}))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	attempts, err := repo.Attempts().ListByRequest(ctx, "tx")
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestFileDSN(t *testing.T) {
	assert.Equal(t, ":memory:", fileDSN(":memory:"))
	assert.Equal(t, "file:gateway.db?_journal_mode=WAL&_busy_timeout=5000", fileDSN("gateway.db"))
	assert.Equal(t, "file:x.db?mode=ro", fileDSN("file:x.db?mode=ro"))
}

func TestNewSQLiteStorage_FileUsesWAL(t *testing.T) {
	repo, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "gateway.db"))
	require.NoError(t, err)
	defer repo.Close()

	var mode string
	require.NoError(t, repo.(*SqliteRepository).db.Get(&mode, "PRAGMA journal_mode"))
	assert.Equal(t, "wal", mode)
}
