package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"expensevis/internal/core"
)

const classicCSV = `name,totalAmount,taxAmount,category,date,paymentType,comments
Weekly shop,100.00,5.00,Groceries,04-11-2024,Credit,big run
Coffee,3.50,0.00,,05-11-2024,,
`

func TestParseClassic(t *testing.T) {
	records, err := Parse(strings.NewReader(classicCSV), SchemaClassic)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Name != "Weekly shop" || first.Amount.Cents != 10000 || first.Tax.Cents != 500 {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Date.ISO() != "2024-11-04" {
		t.Errorf("date not normalized to ISO: %s", first.Date.ISO())
	}

	second := records[1]
	if second.Category != "Unassigned" || second.PaymentType != "Debit" || second.Comments != "No comments" {
		t.Errorf("defaults not applied: %+v", second)
	}
}

func TestParseWithCurrency(t *testing.T) {
	in := `name,currency,totalAmount,taxAmount,category,date,paymentType,comments
Rent,USD,1200.00,0.00,Housing,11/05/2024,Debit,monthly
Dinner,Euro,45.50,2.30,Dining out,11/06/2024,Credit,
`
	records, err := Parse(strings.NewReader(in), SchemaWithCurrency)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if records[0].Currency != core.USD || records[1].Currency != core.EUR {
		t.Errorf("currency tags wrong: %q %q", records[0].Currency, records[1].Currency)
	}
	if records[1].Date.ISO() != "2024-11-06" {
		t.Errorf("date not normalized: %s", records[1].Date.ISO())
	}
}

func TestParseRejectsNegativeAmount(t *testing.T) {
	in := `name,totalAmount,taxAmount,category,date,paymentType,comments
Bad,-5,0,X,04-11-2024,,
`
	records, err := Parse(strings.NewReader(in), SchemaClassic)
	if err == nil {
		t.Fatal("expected error")
	}
	var ve *core.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.Row != 1 || ve.Field != "totalAmount" {
		t.Errorf("expected row 1 field totalAmount, got %+v", ve)
	}
	if records != nil {
		t.Errorf("failed import must keep no records, got %d", len(records))
	}
}

func TestParseHaltsOnFirstBadRow(t *testing.T) {
	in := `name,totalAmount,taxAmount,category,date,paymentType,comments
Fine,10.00,0,X,04-11-2024,,
,10.00,0,X,05-11-2024,,
Also fine,10.00,0,X,06-11-2024,,
`
	_, err := Parse(strings.NewReader(in), SchemaClassic)
	var ve *core.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Row != 2 || ve.Field != "name" {
		t.Errorf("expected row 2 field name, got row %d field %s", ve.Row, ve.Field)
	}
}

func TestParseRejectsUnsupportedCurrency(t *testing.T) {
	in := `name,currency,totalAmount,taxAmount,category,date,paymentType,comments
Trip,JPY,100.00,0,Travel,11/05/2024,,
`
	_, err := Parse(strings.NewReader(in), SchemaWithCurrency)
	var ve *core.ValidationError
	if !errors.As(err, &ve) || ve.Field != "currency" {
		t.Fatalf("expected currency ValidationError, got %v", err)
	}
}

func TestParseRejectsWrongDateFormat(t *testing.T) {
	// ISO date inside a classic (DD-MM-YYYY) file.
	in := `name,totalAmount,taxAmount,category,date,paymentType,comments
Shop,10.00,0,X,2024-11-04,,
`
	_, err := Parse(strings.NewReader(in), SchemaClassic)
	var ve *core.ValidationError
	if !errors.As(err, &ve) || ve.Field != "date" {
		t.Fatalf("expected date ValidationError, got %v", err)
	}
}

func TestParseStructuralError(t *testing.T) {
	in := "name,totalAmount,taxAmount,category,date,paymentType,comments\n\"unterminated,10.00,0,X,04-11-2024,,\n"
	if _, err := Parse(strings.NewReader(in), SchemaClassic); err == nil {
		t.Fatal("expected structural parse error")
	}
}

func TestParseMissingColumn(t *testing.T) {
	in := "name,taxAmount,date\nA,0,04-11-2024\n"
	if _, err := Parse(strings.NewReader(in), SchemaClassic); err == nil {
		t.Fatal("expected missing column error")
	}
}

func TestExportRoundTrip(t *testing.T) {
	records := []core.ExpenseRecord{
		{
			Name: "Rent", Currency: core.USD,
			Amount: core.Money{Cents: 120000}, Tax: core.Money{Cents: 0},
			Category: "Housing", Date: core.NewDate(2024, 11, 5),
			PaymentType: "Debit", Comments: "monthly",
		},
		{
			Name: "Dinner", Currency: core.EUR,
			Amount: core.Money{Cents: 4550}, Tax: core.Money{Cents: 230},
			Category: "Dining out", Date: core.NewDate(2024, 11, 6),
			PaymentType: "Credit", Comments: "No comments",
		},
	}

	var buf bytes.Buffer
	if err := Export(&buf, records, SchemaWithCurrency, FormatCSV); err != nil {
		t.Fatalf("export: %v", err)
	}

	back, err := Parse(&buf, SchemaWithCurrency)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if len(back) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(back))
	}
	for i := range records {
		want, got := records[i], back[i]
		if want.Name != got.Name || want.Amount != got.Amount || want.Tax != got.Tax ||
			want.Category != got.Category || want.Date.ISO() != got.Date.ISO() ||
			want.PaymentType != got.PaymentType || want.Comments != got.Comments ||
			want.Currency != got.Currency {
			t.Errorf("record %d mismatch:\nwant %+v\ngot  %+v", i, want, got)
		}
	}
}

func TestExportTSV(t *testing.T) {
	records := []core.ExpenseRecord{
		{Name: "Coffee", Amount: core.Money{Cents: 350}, Date: core.NewDate(2024, 11, 5), Category: "Food", PaymentType: "Debit", Comments: "No comments"},
	}
	var buf bytes.Buffer
	if err := Export(&buf, records, SchemaClassic, FormatTSV); err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "\t") {
		t.Errorf("TSV row has no tabs: %q", lines[1])
	}
	if !strings.Contains(lines[1], "11/05/2024") {
		t.Errorf("export dates must render MM/DD/YYYY: %q", lines[1])
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 11, 5, 14, 30, 12, 0, time.UTC)
	if got := ExportFilename(now, FormatCSV); got != "expenses_20241105_143012.csv" {
		t.Errorf("unexpected filename: %s", got)
	}
	if got := ExportFilename(now, FormatTSV); got != "expenses_20241105_143012.tsv" {
		t.Errorf("unexpected tsv filename: %s", got)
	}
}
