package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"expensevis/internal/backend"
	"expensevis/internal/config"
	"expensevis/internal/core"
	"expensevis/internal/importer"
	"expensevis/internal/log"
)

// DefaultPageSize matches the listing page size of the web client.
const DefaultPageSize = 5

// Page is one page of expense records.
type Page struct {
	Items      []core.ExpenseRecord `json:"items"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	TotalItems int                  `json:"totalItems"`
	TotalPages int                  `json:"totalPages"`
}

// ImportResult reports what an accepted import batch persisted.
type ImportResult struct {
	Filename string `json:"filename"`
	Saved    int    `json:"saved"`
}

// ExpenseService orchestrates expense writes, listing, and CSV round trips
// over the configured backend.
type ExpenseService struct {
	store     backend.Backend
	reports   *ReportService
	guardMode string
	pageSize  int
}

func NewExpenseService(store backend.Backend, reports *ReportService, cfg *config.Config) *ExpenseService {
	guardMode := config.GuardModeFilename
	pageSize := DefaultPageSize
	if cfg != nil {
		if cfg.ImportGuardMode != "" {
			guardMode = cfg.ImportGuardMode
		}
		if cfg.PageSize > 0 {
			pageSize = cfg.PageSize
		}
	}
	return &ExpenseService{
		store:     store,
		reports:   reports,
		guardMode: guardMode,
		pageSize:  pageSize,
	}
}

// SubmitExpense validates and persists a single record. A monthly budget
// must exist for the account before any expense is accepted.
func (s *ExpenseService) SubmitExpense(ctx context.Context, account string, rec core.ExpenseRecord) (string, error) {
	rec.ApplyDefaults()
	if err := rec.Validate(); err != nil {
		return "", err
	}

	if _, err := s.store.GetBudget(ctx, account); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", core.ErrBudgetNotSet
		}
		return "", fmt.Errorf("check budget: %w", err)
	}

	id, err := s.store.AppendRecord(ctx, account, rec)
	if err != nil {
		return "", fmt.Errorf("save expense: %w", err)
	}
	s.invalidate(account)

	fields := log.NewFields().
		WithComponent(log.ComponentExpense).
		WithOperation(log.OpCreate).
		WithAccount(account).
		WithRecord(rec.Name, rec.Amount.Cents, rec.Category)
	slog.InfoContext(ctx, "Expense saved", fields.ToSlice()...)
	return id, nil
}

// DeleteExpense removes one record.
func (s *ExpenseService) DeleteExpense(ctx context.Context, account, id string) error {
	if err := s.store.RemoveRecord(ctx, account, id); err != nil {
		return err
	}
	s.invalidate(account)
	return nil
}

// ListExpenses returns one page of records, newest layout left to the
// caller; records keep backend append order. Pages are 1-based and an
// out-of-range page yields an empty item list.
func (s *ExpenseService) ListExpenses(ctx context.Context, account string, page int) (Page, error) {
	if page < 1 {
		page = 1
	}

	records, err := s.store.ListRecords(ctx, account)
	if err != nil {
		return Page{}, fmt.Errorf("list expenses: %w", err)
	}

	total := len(records)
	totalPages := (total + s.pageSize - 1) / s.pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * s.pageSize
	if start > total {
		start = total
	}
	end := start + s.pageSize
	if end > total {
		end = total
	}

	return Page{
		Items:      records[start:end],
		Page:       page,
		PageSize:   s.pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// ListAllExpenses returns every record for the account in append order.
func (s *ExpenseService) ListAllExpenses(ctx context.Context, account string) ([]core.ExpenseRecord, error) {
	return s.store.ListRecords(ctx, account)
}

// ImportCSV parses and persists one uploaded file. The whole batch is
// validated before anything is written, so a bad row rejects the upload
// without partial saves. Repeating an already-registered upload returns
// importer.ErrDuplicateImport.
func (s *ExpenseService) ImportCSV(ctx context.Context, account, filename string, r io.Reader, schema importer.Schema) (ImportResult, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read upload: %w", err)
	}

	records, err := importer.Parse(bytes.NewReader(content), schema)
	if err != nil {
		return ImportResult{}, err
	}

	guardKey := filename
	if s.guardMode == config.GuardModeContentHash {
		sum := sha256.Sum256(content)
		guardKey = hex.EncodeToString(sum[:])
	}
	if err := s.store.RegisterImport(ctx, account, guardKey, filename); err != nil {
		return ImportResult{}, err
	}

	// Writes happen one record at a time so the stored order matches the
	// file order the grouping operations depend on.
	saved := 0
	for _, rec := range records {
		if _, err := s.store.AppendRecord(ctx, account, rec); err != nil {
			slog.ErrorContext(ctx, "Import write failed",
				"account", account,
				"filename", filename,
				"saved", saved,
				"error", err)
			return ImportResult{Filename: filename, Saved: saved}, fmt.Errorf("save imported record %d: %w", saved+1, err)
		}
		saved++
	}
	s.invalidate(account)

	slog.InfoContext(ctx, "Import batch saved",
		"account", account,
		"filename", filename,
		"row_count", saved)
	return ImportResult{Filename: filename, Saved: saved}, nil
}

// ExportCSV writes every record for the account to w in the given schema
// and format, and returns a timestamped download filename.
func (s *ExpenseService) ExportCSV(ctx context.Context, account string, w io.Writer, schema importer.Schema, format importer.Format) error {
	records, err := s.store.ListRecords(ctx, account)
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}
	return importer.Export(w, records, schema, format)
}

// SaveBudget stores the monthly budget for the account.
func (s *ExpenseService) SaveBudget(ctx context.Context, account string, cfg core.BudgetConfig) error {
	if cfg.MonthlyBudget.Cents < 0 {
		return core.ErrInvalidAmount
	}
	if err := s.store.SaveBudget(ctx, account, cfg); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	s.invalidate(account)
	return nil
}

// GetBudget returns the stored monthly budget, core.ErrNotFound when none
// is set.
func (s *ExpenseService) GetBudget(ctx context.Context, account string) (core.BudgetConfig, error) {
	return s.store.GetBudget(ctx, account)
}

func (s *ExpenseService) invalidate(account string) {
	if s.reports != nil {
		s.reports.InvalidateAccount(account)
	}
}
