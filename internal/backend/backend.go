package backend

import (
	"fmt"
	"log/slog"

	"keur/internal/config"
	"keur/internal/memory"
	"keur/internal/storage"
	"keur/internal/store"
)

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result pairs the opened store with its cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Type identifies the persistence backend.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Open creates the store named by cfg.DataBackend.
func Open(cfg config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case MemoryBackend:
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.NewStore()}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", t)
	}
}
