package sheets

import (
	"testing"

	"expensevis/internal/core"
)

func TestRowRoundTrip(t *testing.T) {
	rec := core.ExpenseRecord{
		Name:        "Rent",
		Amount:      core.Money{Cents: 120000},
		Tax:         core.Money{Cents: 0},
		Category:    "Housing",
		Date:        core.NewDate(2024, 11, 5),
		PaymentType: "Debit",
		Comments:    "monthly",
		Currency:    core.USD,
	}
	row := recordToRow("jane_doe", rec)
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = v.(string)
	}

	back, err := rowToRecord(cells)
	if err != nil {
		t.Fatalf("rowToRecord: %v", err)
	}
	if back.Name != rec.Name || back.Amount != rec.Amount || back.Date.ISO() != rec.Date.ISO() ||
		back.Category != rec.Category || back.Currency != rec.Currency {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", rec, back)
	}
}

func TestRowToRecordDefaults(t *testing.T) {
	cells := []string{"acct", "Coffee", "3.50", "0.00", "", "2024-11-05", "", ""}
	rec, err := rowToRecord(cells)
	if err != nil {
		t.Fatalf("rowToRecord: %v", err)
	}
	if rec.Category != "Unassigned" || rec.PaymentType != "Debit" || rec.Comments != "No comments" {
		t.Errorf("defaults not applied: %+v", rec)
	}
}

func TestRowToRecordBadAmount(t *testing.T) {
	cells := []string{"acct", "Coffee", "not-a-number", "0", "", "2024-11-05", "", ""}
	if _, err := rowToRecord(cells); err == nil {
		t.Fatal("expected error")
	}
}

func TestRowFromUpdatedRange(t *testing.T) {
	cases := map[string]int{
		"Expenses!A7:I7": 7,
		"Expenses!A123":  123,
		"A2:I2":          2,
	}
	for in, want := range cases {
		got, err := rowFromUpdatedRange(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q: expected %d, got %d", in, want, got)
		}
	}
	if _, err := rowFromUpdatedRange("Expenses!AB"); err == nil {
		t.Error("expected error for range without row number")
	}
}
