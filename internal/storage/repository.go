// Package storage is the SQLite persistence backend. All rows carry the
// sanitized account key; records follow delete-and-reload semantics, so
// there is no UPDATE path for expenses.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"expensevis/internal/core"
	"expensevis/internal/importer"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) AppendRecord(ctx context.Context, account string, rec core.ExpenseRecord) (string, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (account, name, amount_cents, tax_cents, category, expense_date, payment_type, comments, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account, rec.Name, rec.Amount.Cents, rec.Tax.Cents, rec.Category,
		rec.Date.ISO(), rec.PaymentType, rec.Comments, string(rec.Currency),
	)
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("expense id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"account", account,
		"name", rec.Name,
		"amount_cents", rec.Amount.Cents,
		"category", rec.Category)

	return strconv.FormatInt(id, 10), nil
}

// ListRecords returns the account's expenses in append order; callers
// depend on that order for chronological display and first-seen grouping.
func (r *Repository) ListRecords(ctx context.Context, account string) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, amount_cents, tax_cents, category, expense_date, payment_type, comments, currency
		FROM expenses WHERE account = ? ORDER BY id`,
		account,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		var (
			id       int64
			rec      core.ExpenseRecord
			date     string
			currency string
		)
		if err := rows.Scan(&id, &rec.Name, &rec.Amount.Cents, &rec.Tax.Cents,
			&rec.Category, &date, &rec.PaymentType, &rec.Comments, &currency); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		d, err := core.ParseISODate(date)
		if err != nil {
			return nil, fmt.Errorf("expense %d has bad date %q: %w", id, date, err)
		}
		rec.ID = strconv.FormatInt(id, 10)
		rec.Date = d
		rec.Currency = core.Currency(currency)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) RemoveRecord(ctx context.Context, account, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE account = ? AND id = ?`, account, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) RegisterImport(ctx context.Context, account, guardKey, filename string) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM imports WHERE account = ? AND guard_key = ?)`,
		account, guardKey,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check import guard: %w", err)
	}
	if exists {
		return importer.ErrDuplicateImport
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO imports (account, guard_key, filename) VALUES (?, ?, ?)`,
		account, guardKey, filename,
	)
	if err != nil {
		return fmt.Errorf("register import: %w", err)
	}
	return nil
}

func (r *Repository) SaveBudget(ctx context.Context, account string, cfg core.BudgetConfig) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (account, monthly_budget_cents, currency, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(account) DO UPDATE SET
			monthly_budget_cents = excluded.monthly_budget_cents,
			currency             = excluded.currency,
			updated_at           = CURRENT_TIMESTAMP`,
		account, cfg.MonthlyBudget.Cents, string(cfg.Currency),
	)
	if err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}

func (r *Repository) GetBudget(ctx context.Context, account string) (core.BudgetConfig, error) {
	var (
		cents    int64
		currency string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT monthly_budget_cents, currency FROM budgets WHERE account = ?`,
		account,
	).Scan(&cents, &currency)
	if errors.Is(err, sql.ErrNoRows) {
		return core.BudgetConfig{}, core.ErrNotFound
	}
	if err != nil {
		return core.BudgetConfig{}, fmt.Errorf("get budget: %w", err)
	}
	return core.BudgetConfig{
		MonthlyBudget: core.Money{Cents: cents},
		Currency:      core.Currency(currency),
	}, nil
}

func (r *Repository) AppendReminder(ctx context.Context, account string, rem core.PaymentReminder) (string, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (account, reminder_type, amount_cents, currency, due_date)
		VALUES (?, ?, ?, ?, ?)`,
		account, rem.Type, rem.Amount.Cents, string(rem.Currency), rem.DueDate.ISO(),
	)
	if err != nil {
		return "", fmt.Errorf("insert reminder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("reminder id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

func (r *Repository) ListReminders(ctx context.Context, account string) ([]core.PaymentReminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, reminder_type, amount_cents, currency, due_date
		FROM reminders WHERE account = ? ORDER BY id`,
		account,
	)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var out []core.PaymentReminder
	for rows.Next() {
		var (
			id       int64
			rem      core.PaymentReminder
			currency string
			due      string
		)
		if err := rows.Scan(&id, &rem.Type, &rem.Amount.Cents, &currency, &due); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		d, err := core.ParseISODate(due)
		if err != nil {
			return nil, fmt.Errorf("reminder %d has bad due date %q: %w", id, due, err)
		}
		rem.ID = strconv.FormatInt(id, 10)
		rem.Currency = core.Currency(currency)
		rem.DueDate = d
		out = append(out, rem)
	}
	return out, rows.Err()
}

func (r *Repository) RemoveReminder(ctx context.Context, account, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE account = ? AND id = ?`, account, id)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) CreateUser(ctx context.Context, u core.User) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, u.Username,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if exists {
		return core.ErrUserExists
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, first_name, password_hash) VALUES (?, ?, ?, ?)`,
		u.Username, u.Email, u.FirstName, u.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "username", u.Username)
	return nil
}

func (r *Repository) GetUser(ctx context.Context, username string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT username, email, first_name, password_hash FROM users WHERE username = ?`,
		username,
	).Scan(&u.Username, &u.Email, &u.FirstName, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
