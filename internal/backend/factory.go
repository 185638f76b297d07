package backend

import (
	"context"
	"fmt"
	"log/slog"

	"expensevis/internal/kv"
	"expensevis/internal/sheets"
	"expensevis/internal/storage"
)

// Type selects the persistence backend.
type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
	Sheets Type = "sheets"
)

func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory, Sheets:
		return true
	}
	return false
}

// Config holds what the factory needs to build a backend.
type Config struct {
	Type         Type
	SQLiteDBPath string
}

// Result pairs a backend with its cleanup hook.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// New builds the configured backend.
//
// The sheets backend holds only the expense records remotely (that is the
// document list the original synced); users, budgets, reminders and the
// import ledger stay in the local document store alongside it.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %q", cfg.Type)
	}

	switch cfg.Type {
	case SQLite:
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Backend: repo, Cleanup: repo.Close}, nil

	case Sheets:
		cli, err := sheets.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets backend: %w", err)
		}
		local := NewKV(kv.NewMemory())
		logger.Info("Initialized Google Sheets backend")
		return &Result{Backend: &composite{
			RecordStore:   cli,
			ImportLedger:  local,
			BudgetStore:   local,
			ReminderStore: local,
			UserStore:     local,
		}}, nil

	default:
		logger.Info("Initialized memory backend")
		return &Result{Backend: NewKV(kv.NewMemory())}, nil
	}
}

// composite assembles a Backend from per-concern implementations.
type composite struct {
	RecordStore
	ImportLedger
	BudgetStore
	ReminderStore
	UserStore
}
