package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"expensevis/internal/core"
)

// Format selects the column separator for an export.
type Format int

const (
	FormatCSV Format = iota // comma, for download
	FormatTSV               // tab, for share
)

func (f Format) separator() rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

// ContentType returns the MIME type served with the export.
func (f Format) ContentType() string {
	if f == FormatTSV {
		return "text/tab-separated-values"
	}
	return "text/csv"
}

// Export writes records using the schema's column layout with dates
// rendered MM/DD/YYYY. Exports produced with SchemaWithCurrency round-trip
// through Parse field for field (ids aside).
func Export(w io.Writer, records []core.ExpenseRecord, schema Schema, format Format) error {
	cw := csv.NewWriter(w)
	cw.Comma = format.separator()

	if err := cw.Write(schema.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Name}
		if schema.HasCurrency {
			row = append(row, string(r.Currency))
		}
		row = append(row,
			r.Amount.String(),
			r.Tax.String(),
			r.Category,
			r.Date.US(),
			r.PaymentType,
			r.Comments,
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename builds the download name, e.g. expenses_20241105_143012.csv.
func ExportFilename(now time.Time, format Format) string {
	ext := "csv"
	if format == FormatTSV {
		ext = "tsv"
	}
	return fmt.Sprintf("expenses_%s.%s", now.Format("20060102_150405"), ext)
}
