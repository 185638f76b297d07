package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"expensevis/internal/core"
)

// ErrDuplicateImport signals a re-import of an already-registered file for
// the same account. The guard itself lives with the import ledger; this is
// its shared sentinel.
var ErrDuplicateImport = errors.New("file already imported for this account")

var errMissingColumn = errors.New("missing required column")

// Parse reads a whole CSV document and returns validated expense records in
// source row order.
//
// A structural parser error (malformed quoting, uneven quoting inside a
// field) rejects the entire import with a single error. Validation then
// runs row by row in field order; the first failing row aborts the batch
// with a ValidationError naming row and field, and no records from the
// batch survive.
func Parse(r io.Reader, schema Schema) ([]core.ExpenseRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse csv: %w: empty file", errMissingColumn)
	}

	cols, err := headerIndex(rows[0], schema)
	if err != nil {
		return nil, err
	}

	var records []core.ExpenseRecord
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec, err := parseRow(row, cols, schema, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// columnIndex maps schema fields onto positions in the header row.
type columnIndex struct {
	name, currency, total, tax, category, date, payment, comments int
}

func headerIndex(header []string, schema Schema) (columnIndex, error) {
	pos := map[string]int{}
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	lookup := func(name string) int {
		if i, ok := pos[strings.ToLower(name)]; ok {
			return i
		}
		return -1
	}

	cols := columnIndex{
		name:     lookup("name"),
		currency: lookup("currency"),
		total:    lookup("totalAmount"),
		tax:      lookup("taxAmount"),
		category: lookup("category"),
		date:     lookup("date"),
		payment:  lookup("paymentType"),
		comments: lookup("comments"),
	}

	for col, idx := range map[string]int{"name": cols.name, "totalAmount": cols.total, "taxAmount": cols.tax, "date": cols.date} {
		if idx < 0 {
			return cols, fmt.Errorf("%w: %s", errMissingColumn, col)
		}
	}
	if schema.HasCurrency && cols.currency < 0 {
		return cols, fmt.Errorf("%w: currency", errMissingColumn)
	}
	return cols, nil
}

func parseRow(row []string, cols columnIndex, schema Schema, rowNum int) (core.ExpenseRecord, error) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rec := core.ExpenseRecord{
		Name:        field(cols.name),
		Category:    field(cols.category),
		PaymentType: field(cols.payment),
		Comments:    field(cols.comments),
	}

	// Validation order mirrors the column order users see: name, currency,
	// amounts, then date.
	if rec.Name == "" {
		return rec, &core.ValidationError{Row: rowNum, Field: "name", Err: core.ErrEmptyName}
	}

	if schema.HasCurrency {
		cur, err := core.ParseCurrency(field(cols.currency))
		if err != nil {
			return rec, &core.ValidationError{Row: rowNum, Field: "currency", Err: err}
		}
		rec.Currency = cur
	}

	totalCents, err := core.ParseAmountToCents(field(cols.total))
	if err != nil || totalCents <= 0 {
		return rec, &core.ValidationError{Row: rowNum, Field: "totalAmount", Err: core.ErrInvalidAmount}
	}
	rec.Amount = core.Money{Cents: totalCents}

	taxCents, err := core.ParseAmountToCents(field(cols.tax))
	if err != nil {
		return rec, &core.ValidationError{Row: rowNum, Field: "taxAmount", Err: core.ErrInvalidTax}
	}
	rec.Tax = core.Money{Cents: taxCents}

	date, err := parseDate(field(cols.date), schema.DateLayout)
	if err != nil {
		return rec, &core.ValidationError{Row: rowNum, Field: "date", Err: err}
	}
	rec.Date = date

	rec.ApplyDefaults()
	return rec, nil
}

// parseDate requires the value to match the schema layout exactly; Go's
// parser tolerates unpadded components, so the round-trip render is
// compared against the input.
func parseDate(s, layout string) (core.Date, error) {
	if s == "" {
		return core.Date{}, core.ErrInvalidDate
	}
	t, err := time.Parse(layout, s)
	if err != nil || t.Format(layout) != s {
		return core.Date{}, core.ErrInvalidDate
	}
	return core.Date{Time: t}, nil
}

func isBlankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
