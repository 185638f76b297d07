// Package backend selects and assembles a persistence backend. Ports are
// narrow per-concern interfaces; the factory wires a concrete
// implementation (sqlite, memory, sheets) behind all of them.
package backend

import (
	"context"

	"expensevis/internal/core"
)

type (
	// RecordStore owns ExpenseRecord lifetime: created on append, never
	// mutated in place, destroyed on remove. List returns records in the
	// order they were appended.
	RecordStore interface {
		AppendRecord(ctx context.Context, account string, rec core.ExpenseRecord) (id string, err error)
		ListRecords(ctx context.Context, account string) ([]core.ExpenseRecord, error)
		RemoveRecord(ctx context.Context, account, id string) error
	}

	// ImportLedger is the duplicate-import guard. Register fails with
	// importer.ErrDuplicateImport when guardKey was already registered for
	// the account.
	ImportLedger interface {
		RegisterImport(ctx context.Context, account, guardKey, filename string) error
	}

	BudgetStore interface {
		SaveBudget(ctx context.Context, account string, cfg core.BudgetConfig) error
		// GetBudget returns core.ErrNotFound when the user never saved one.
		GetBudget(ctx context.Context, account string) (core.BudgetConfig, error)
	}

	ReminderStore interface {
		AppendReminder(ctx context.Context, account string, rem core.PaymentReminder) (id string, err error)
		ListReminders(ctx context.Context, account string) ([]core.PaymentReminder, error)
		RemoveReminder(ctx context.Context, account, id string) error
	}

	UserStore interface {
		// CreateUser fails with core.ErrUserExists on a taken username.
		CreateUser(ctx context.Context, u core.User) error
		// GetUser returns core.ErrNotFound for unknown usernames.
		GetUser(ctx context.Context, username string) (core.User, error)
	}
)

// Backend is the full persistence surface the services run on.
type Backend interface {
	RecordStore
	ImportLedger
	BudgetStore
	ReminderStore
	UserStore
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error
