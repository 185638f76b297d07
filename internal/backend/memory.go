package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"expensevis/internal/core"
	"expensevis/internal/importer"
	"expensevis/internal/kv"
)

// kvBackend adapts the document-store collaborator onto the backend ports.
// Every key is namespaced under the sanitized account key.
type kvBackend struct {
	store kv.Store
}

// NewKV wraps a document store as a full Backend.
func NewKV(store kv.Store) Backend {
	return &kvBackend{store: store}
}

var _ Backend = (*kvBackend)(nil)

// Document shapes stored as JSON. Amounts are cents, dates canonical ISO.
type (
	recordDoc struct {
		Name        string `json:"name"`
		AmountCents int64  `json:"totalAmountCents"`
		TaxCents    int64  `json:"taxAmountCents"`
		Category    string `json:"category"`
		Date        string `json:"date"`
		PaymentType string `json:"paymentType"`
		Comments    string `json:"comments"`
		Currency    string `json:"currency,omitempty"`
	}

	budgetDoc struct {
		MonthlyBudgetCents int64  `json:"monthlyBudgetCents"`
		Currency           string `json:"currency"`
	}

	reminderDoc struct {
		Type        string `json:"type"`
		AmountCents int64  `json:"amountCents"`
		Currency    string `json:"currency"`
		DueDate     string `json:"dueDate"`
	}

	importDoc struct {
		Filename string `json:"filename"`
	}

	userDoc struct {
		Username     string `json:"username"`
		Email        string `json:"email"`
		FirstName    string `json:"firstName"`
		PasswordHash string `json:"passwordHash"`
	}
)

func (b *kvBackend) AppendRecord(ctx context.Context, account string, rec core.ExpenseRecord) (string, error) {
	doc := recordDoc{
		Name:        rec.Name,
		AmountCents: rec.Amount.Cents,
		TaxCents:    rec.Tax.Cents,
		Category:    rec.Category,
		Date:        rec.Date.ISO(),
		PaymentType: rec.PaymentType,
		Comments:    rec.Comments,
		Currency:    string(rec.Currency),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	id, err := b.store.Append(ctx, kv.UserPath("expenses", account), raw)
	if err != nil {
		return "", fmt.Errorf("append record: %w", err)
	}
	return id, nil
}

func (b *kvBackend) ListRecords(ctx context.Context, account string) ([]core.ExpenseRecord, error) {
	entries, err := b.store.List(ctx, kv.UserPath("expenses", account))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	records := make([]core.ExpenseRecord, 0, len(entries))
	for _, e := range entries {
		var doc recordDoc
		if err := json.Unmarshal(e.Value, &doc); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", e.ID, err)
		}
		date, err := core.ParseISODate(doc.Date)
		if err != nil {
			return nil, fmt.Errorf("decode record %s date %q: %w", e.ID, doc.Date, err)
		}
		records = append(records, core.ExpenseRecord{
			ID:          e.ID,
			Name:        doc.Name,
			Amount:      core.Money{Cents: doc.AmountCents},
			Tax:         core.Money{Cents: doc.TaxCents},
			Category:    doc.Category,
			Date:        date,
			PaymentType: doc.PaymentType,
			Comments:    doc.Comments,
			Currency:    core.Currency(doc.Currency),
		})
	}
	return records, nil
}

func (b *kvBackend) RemoveRecord(ctx context.Context, account, id string) error {
	return b.store.Remove(ctx, kv.UserPath("expenses", account), id)
}

func (b *kvBackend) RegisterImport(ctx context.Context, account, guardKey, filename string) error {
	key := kv.UserPath("imports", account) + "/" + core.SanitizeAccountKey(guardKey)
	_, exists, err := b.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("check import guard: %w", err)
	}
	if exists {
		return importer.ErrDuplicateImport
	}
	raw, err := json.Marshal(importDoc{Filename: filename})
	if err != nil {
		return fmt.Errorf("marshal import entry: %w", err)
	}
	return b.store.Set(ctx, key, raw)
}

func (b *kvBackend) SaveBudget(ctx context.Context, account string, cfg core.BudgetConfig) error {
	raw, err := json.Marshal(budgetDoc{
		MonthlyBudgetCents: cfg.MonthlyBudget.Cents,
		Currency:           string(cfg.Currency),
	})
	if err != nil {
		return fmt.Errorf("marshal budget: %w", err)
	}
	return b.store.Set(ctx, kv.UserPath("budgets", account), raw)
}

func (b *kvBackend) GetBudget(ctx context.Context, account string) (core.BudgetConfig, error) {
	raw, ok, err := b.store.Get(ctx, kv.UserPath("budgets", account))
	if err != nil {
		return core.BudgetConfig{}, fmt.Errorf("get budget: %w", err)
	}
	if !ok {
		return core.BudgetConfig{}, core.ErrNotFound
	}
	var doc budgetDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return core.BudgetConfig{}, fmt.Errorf("decode budget: %w", err)
	}
	return core.BudgetConfig{
		MonthlyBudget: core.Money{Cents: doc.MonthlyBudgetCents},
		Currency:      core.Currency(doc.Currency),
	}, nil
}

func (b *kvBackend) AppendReminder(ctx context.Context, account string, rem core.PaymentReminder) (string, error) {
	raw, err := json.Marshal(reminderDoc{
		Type:        rem.Type,
		AmountCents: rem.Amount.Cents,
		Currency:    string(rem.Currency),
		DueDate:     rem.DueDate.ISO(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal reminder: %w", err)
	}
	return b.store.Append(ctx, kv.UserPath("reminders", account), raw)
}

func (b *kvBackend) ListReminders(ctx context.Context, account string) ([]core.PaymentReminder, error) {
	entries, err := b.store.List(ctx, kv.UserPath("reminders", account))
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	out := make([]core.PaymentReminder, 0, len(entries))
	for _, e := range entries {
		var doc reminderDoc
		if err := json.Unmarshal(e.Value, &doc); err != nil {
			return nil, fmt.Errorf("decode reminder %s: %w", e.ID, err)
		}
		due, err := core.ParseISODate(doc.DueDate)
		if err != nil {
			return nil, fmt.Errorf("decode reminder %s due date: %w", e.ID, err)
		}
		out = append(out, core.PaymentReminder{
			ID:       e.ID,
			Type:     doc.Type,
			Amount:   core.Money{Cents: doc.AmountCents},
			Currency: core.Currency(doc.Currency),
			DueDate:  due,
		})
	}
	return out, nil
}

func (b *kvBackend) RemoveReminder(ctx context.Context, account, id string) error {
	return b.store.Remove(ctx, kv.UserPath("reminders", account), id)
}

func (b *kvBackend) CreateUser(ctx context.Context, u core.User) error {
	key := kv.UserPath("users", u.Username)
	_, exists, err := b.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if exists {
		return core.ErrUserExists
	}
	raw, err := json.Marshal(userDoc{
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		PasswordHash: u.PasswordHash,
	})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return b.store.Set(ctx, key, raw)
}

func (b *kvBackend) GetUser(ctx context.Context, username string) (core.User, error) {
	raw, ok, err := b.store.Get(ctx, kv.UserPath("users", username))
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return core.User{}, core.ErrNotFound
	}
	var doc userDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return core.User{}, fmt.Errorf("decode user: %w", err)
	}
	return core.User{
		Username:     doc.Username,
		Email:        doc.Email,
		FirstName:    doc.FirstName,
		PasswordHash: doc.PasswordHash,
	}, nil
}
