package snapshot

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Backend names a snapshot persistence backend.
type Backend string

const (
	MemoryBackend   Backend = "memory"
	SQLiteBackend   Backend = "sqlite"
	PostgresBackend Backend = "postgres"
)

// IsValid reports whether the backend name is one we know how to open.
func (b Backend) IsValid() bool {
	switch b {
	case MemoryBackend, SQLiteBackend, PostgresBackend:
		return true
	}
	return false
}

// Config carries the settings needed to open a snapshot store.
type Config struct {
	Backend     Backend
	SQLitePath  string
	PostgresURL string
}

// Open creates the configured snapshot store, running schema migrations for
// the SQL backends. The returned cleanup func releases the store's resources.
func Open(cfg Config, logger *slog.Logger) (Store, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Backend.IsValid() {
		return nil, nil, fmt.Errorf("invalid snapshot backend: %s", cfg.Backend)
	}

	switch cfg.Backend {
	case MemoryBackend:
		logger.Info("initialized in-memory snapshot store")
		store := NewMemoryStore()
		return store, store.Close, nil

	case SQLiteBackend:
		if cfg.SQLitePath == "" {
			return nil, nil, fmt.Errorf("sqlite backend requires a database path")
		}
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite database: %w", err)
		}
		if err := RunMigrations(db, "sqlite"); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("initialized sqlite snapshot store", "path", cfg.SQLitePath)
		store := NewSQLStore(db)
		return store, store.Close, nil

	case PostgresBackend:
		if cfg.PostgresURL == "" {
			return nil, nil, fmt.Errorf("postgres backend requires a connection URL")
		}
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres database: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping postgres database: %w", err)
		}
		if err := RunMigrations(db, "postgres"); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("initialized postgres snapshot store")
		store := NewSQLStore(db)
		return store, store.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported snapshot backend: %s", cfg.Backend)
}
