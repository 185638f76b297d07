// Package importer parses tabular expense files into validated records and
// renders records back out as CSV/TSV.
package importer

import "errors"

// Schema describes one accepted CSV layout. The two variants match the two
// file formats users actually upload: a classic sheet without a currency
// column using DD-MM-YYYY dates, and a currency-tagged sheet using
// MM/DD/YYYY. The date must match the schema's layout exactly; no format
// sniffing happens per row.
type Schema struct {
	Name        string
	HasCurrency bool
	DateLayout  string
}

var (
	// SchemaClassic: name,totalAmount,taxAmount,category,date,paymentType,comments
	SchemaClassic = Schema{Name: "classic", HasCurrency: false, DateLayout: "02-01-2006"}

	// SchemaWithCurrency: name,currency,totalAmount,taxAmount,category,date,paymentType,comments
	SchemaWithCurrency = Schema{Name: "currency", HasCurrency: true, DateLayout: "01/02/2006"}
)

var ErrUnknownSchema = errors.New("unknown import schema")

// SchemaByName resolves a schema from its config/request name.
func SchemaByName(name string) (Schema, error) {
	switch name {
	case "", SchemaClassic.Name:
		return SchemaClassic, nil
	case SchemaWithCurrency.Name:
		return SchemaWithCurrency, nil
	default:
		return Schema{}, ErrUnknownSchema
	}
}

// Header returns the expected header row for the schema.
func (s Schema) Header() []string {
	if s.HasCurrency {
		return []string{"name", "currency", "totalAmount", "taxAmount", "category", "date", "paymentType", "comments"}
	}
	return []string{"name", "totalAmount", "taxAmount", "category", "date", "paymentType", "comments"}
}
