package sqlite

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/nulzo/summary-gateway/internal/platform/logger"
	"github.com/nulzo/summary-gateway/internal/store"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var fs embed.FS

// NewSQLiteStorage opens the database at path and applies pending migrations.
// Use ":memory:" in tests; the pool is pinned to one connection so the
// in-memory database survives between queries.
func NewSQLiteStorage(path string) (store.Repository, error) {
	db, err := sqlx.Connect("sqlite3", fileDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSqliteRepository(db), nil
}

// fileDSN turns a plain file path into a go-sqlite3 DSN with WAL and a busy
// timeout, so the stats endpoint can read while the ingestor writes. DSNs that
// already carry options and in-memory databases are left alone.
func fileDSN(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") || strings.Contains(path, "?") {
		return path
	}
	return "file:" + path + "?_journal_mode=WAL&_busy_timeout=5000"
}

func runMigrations(db *sqlx.DB) error {
	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return err
	}

	d, err := iofs.New(fs, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, _, _ := m.Version()
	logger.Debug("Database migrations applied", zap.Uint("version", version))
	return nil
}
