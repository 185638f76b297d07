package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"expensevis/internal/core"
)

func recordToRow(account string, rec core.ExpenseRecord) []any {
	return []any{
		account,
		rec.Name,
		rec.Amount.String(),
		rec.Tax.String(),
		rec.Category,
		rec.Date.ISO(),
		rec.PaymentType,
		rec.Comments,
		string(rec.Currency),
	}
}

func rowToRecord(cells []string) (core.ExpenseRecord, error) {
	get := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	amount, err := core.ParseAmountToCents(get(2))
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("bad totalAmount %q: %w", get(2), err)
	}
	tax, err := core.ParseAmountToCents(get(3))
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("bad taxAmount %q: %w", get(3), err)
	}
	date, err := core.ParseISODate(get(5))
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("bad date %q: %w", get(5), err)
	}

	rec := core.ExpenseRecord{
		Name:        get(1),
		Amount:      core.Money{Cents: amount},
		Tax:         core.Money{Cents: tax},
		Category:    get(4),
		Date:        date,
		PaymentType: get(6),
		Comments:    get(7),
		Currency:    core.Currency(get(8)),
	}
	rec.ApplyDefaults()
	return rec, nil
}

// rowFromUpdatedRange extracts the row number from an A1-notation range
// like "Expenses!A7:I7".
func rowFromUpdatedRange(rng string) (int, error) {
	if i := strings.IndexByte(rng, '!'); i >= 0 {
		rng = rng[i+1:]
	}
	if i := strings.IndexByte(rng, ':'); i >= 0 {
		rng = rng[:i]
	}
	digits := strings.TrimLeftFunc(rng, func(r rune) bool { return r < '0' || r > '9' })
	row, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("parse updated range %q: %w", rng, err)
	}
	return row, nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
