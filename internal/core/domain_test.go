package core

import (
	"errors"
	"testing"
)

func TestExpenseRecordValidate(t *testing.T) {
	good := ExpenseRecord{
		Name:   "Groceries run",
		Amount: Money{Cents: 10000},
		Tax:    Money{Cents: 500},
		Date:   NewDate(2024, 11, 5),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name  string
		rec   ExpenseRecord
		field string
	}{
		{"empty name", ExpenseRecord{Amount: Money{Cents: 1}, Date: NewDate(2024, 1, 1)}, "name"},
		{"zero amount", ExpenseRecord{Name: "a", Amount: Money{Cents: 0}, Date: NewDate(2024, 1, 1)}, "totalAmount"},
		{"negative amount", ExpenseRecord{Name: "a", Amount: Money{Cents: -500}, Date: NewDate(2024, 1, 1)}, "totalAmount"},
		{"negative tax", ExpenseRecord{Name: "a", Amount: Money{Cents: 1}, Tax: Money{Cents: -1}, Date: NewDate(2024, 1, 1)}, "taxAmount"},
		{"zero date", ExpenseRecord{Name: "a", Amount: Money{Cents: 1}}, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if ve.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, ve.Field)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	r := ExpenseRecord{Name: "Coffee", Amount: Money{Cents: 350}, Date: NewDate(2024, 3, 3)}
	r.ApplyDefaults()
	if r.Category != "Unassigned" {
		t.Errorf("category default: got %q", r.Category)
	}
	if r.PaymentType != "Debit" {
		t.Errorf("payment type default: got %q", r.PaymentType)
	}
	if r.Comments != "No comments" {
		t.Errorf("comments default: got %q", r.Comments)
	}

	set := ExpenseRecord{Category: "Dining out", PaymentType: "Credit", Comments: "team lunch"}
	set.ApplyDefaults()
	if set.Category != "Dining out" || set.PaymentType != "Credit" || set.Comments != "team lunch" {
		t.Errorf("defaults overwrote explicit values: %+v", set)
	}
}

func TestWeekdayIndex(t *testing.T) {
	// 2024-11-04 is a Monday, 2024-11-10 a Sunday.
	cases := []struct {
		d    Date
		want int
	}{
		{NewDate(2024, 11, 4), 0},
		{NewDate(2024, 11, 6), 2},
		{NewDate(2024, 11, 9), 5},
		{NewDate(2024, 11, 10), 6},
	}
	for _, tc := range cases {
		if got := tc.d.WeekdayIndex(); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.d.ISO(), tc.want, got)
		}
	}
}

func TestDateFormats(t *testing.T) {
	d, err := ParseISODate("2024-11-05")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.ISO() != "2024-11-05" {
		t.Errorf("ISO: got %q", d.ISO())
	}
	if d.US() != "11/05/2024" {
		t.Errorf("US: got %q", d.US())
	}
	if _, err := ParseISODate("05-11-2024"); err == nil {
		t.Error("expected error for non-ISO input")
	}
}

func TestSanitizeAccountKey(t *testing.T) {
	cases := map[string]string{
		"john.doe":         "john_doe",
		"jane@example.com": "jane_example_com",
		"plain123":         "plain123",
	}
	for in, want := range cases {
		if got := SanitizeAccountKey(in); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}
