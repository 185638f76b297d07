package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Defaults applied to optional expense fields when the user leaves them blank.
const (
	DefaultCategory    = "Unassigned"
	DefaultPaymentType = "Debit"
	DefaultComments    = "No comments"
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// ExpenseRecord is one logged spending event. Records are never mutated
	// in place: callers delete and re-create.
	ExpenseRecord struct {
		ID          string   `json:"id,omitempty"`
		Name        string   `json:"name"`
		Amount      Money    `json:"totalAmount"`
		Tax         Money    `json:"taxAmount"`
		Category    string   `json:"category"`
		Date        Date     `json:"date"`
		PaymentType string   `json:"paymentType"`
		Comments    string   `json:"comments"`
		Currency    Currency `json:"currency,omitempty"` // empty when the user never tagged one
	}
)

var (
	ErrEmptyName     = errors.New("empty expense name")
	ErrInvalidAmount = errors.New("total amount must be positive")
	ErrInvalidTax    = errors.New("tax amount cannot be negative")
	ErrInvalidDate   = errors.New("invalid date")
	ErrNotFound      = errors.New("not found")
)

// ValidationError identifies the field (and, for imports, the source row)
// that failed validation.
type ValidationError struct {
	Row   int // 1-based data row; 0 for single-record entry
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: field %q: %v", e.Row, e.Field, e.Err)
	}
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseISODate parses the canonical YYYY-MM-DD form.
func ParseISODate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ISO renders the canonical YYYY-MM-DD form.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// US renders MM/DD/YYYY, the format used by CSV export.
func (d Date) US() string {
	return d.Format("01/02/2006")
}

// WeekdayIndex maps the date onto 0=Monday .. 6=Sunday.
func (d Date) WeekdayIndex() int {
	wd := int(d.Weekday()) // 0=Sunday per time package
	if wd == 0 {
		return 6
	}
	return wd - 1
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks the record invariants: non-empty name, positive amount,
// non-negative tax, non-zero date.
func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	if r.Amount.Cents <= 0 {
		return &ValidationError{Field: "totalAmount", Err: ErrInvalidAmount}
	}
	if r.Tax.Cents < 0 {
		return &ValidationError{Field: "taxAmount", Err: ErrInvalidTax}
	}
	if err := r.Date.Validate(); err != nil {
		return &ValidationError{Field: "date", Err: err}
	}
	return nil
}

// ApplyDefaults fills the optional fields the original form leaves blank.
func (r *ExpenseRecord) ApplyDefaults() {
	if strings.TrimSpace(r.Category) == "" {
		r.Category = DefaultCategory
	}
	if strings.TrimSpace(r.PaymentType) == "" {
		r.PaymentType = DefaultPaymentType
	}
	if strings.TrimSpace(r.Comments) == "" {
		r.Comments = DefaultComments
	}
}

// SanitizeAccountKey normalizes an account identifier into a storage-safe
// key: every non-alphanumeric rune becomes an underscore, so "a.b@c.d"
// and "a_b@c_d" collide the same way the original's `.` -> `_` rule did.
func SanitizeAccountKey(account string) string {
	var b strings.Builder
	b.Grow(len(account))
	for _, r := range account {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
