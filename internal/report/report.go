// Package report derives grouped sums, trend series and chart payloads
// from a set of expense records. Every function is pure: full input in,
// fresh result out, so concurrent report requests never interact.
//
// Grouping order is first-seen order of the input sequence, not
// alphabetical. Consumers that need sorted output sort explicitly.
package report

import (
	"expensevis/internal/core"
)

type (
	// CategorySummary is one grouped total, lifetime one report computation.
	CategorySummary struct {
		Category string     `json:"category"`
		Total    core.Money `json:"totalAmount"`
	}

	PaymentTypeSummary struct {
		PaymentType string     `json:"paymentType"`
		Total       core.Money `json:"totalAmount"`
		Tax         core.Money `json:"taxAmount"`
		Count       int        `json:"count"`
	}

	// SeriesPoint is one raw trend-line entry. DailySeries emits one per
	// record in input order; callers rely on entry order for chronological
	// display, so no resampling and no sorting happens here.
	SeriesPoint struct {
		Date   string     `json:"date"`
		Amount core.Money `json:"amount"`
	}

	// HeatmapBucket is one (weekday, category, amount) cell. Buckets are
	// per record, not aggregated across identical day+category pairs.
	HeatmapBucket struct {
		Weekday  int        `json:"weekday"` // 0=Mon .. 6=Sun
		Category string     `json:"category"`
		Amount   core.Money `json:"amount"`
	}
)

// SumByCategory groups records by category in first-occurrence order and
// sums totalAmount. Empty input yields an empty slice.
func SumByCategory(records []core.ExpenseRecord) []CategorySummary {
	return sumBy(records, func(r core.ExpenseRecord) int64 { return r.Amount.Cents })
}

// SumTaxByCategory is SumByCategory over taxAmount.
func SumTaxByCategory(records []core.ExpenseRecord) []CategorySummary {
	return sumBy(records, func(r core.ExpenseRecord) int64 { return r.Tax.Cents })
}

func sumBy(records []core.ExpenseRecord, amount func(core.ExpenseRecord) int64) []CategorySummary {
	out := []CategorySummary{}
	index := make(map[string]int, len(records))
	for _, r := range records {
		i, seen := index[r.Category]
		if !seen {
			index[r.Category] = len(out)
			out = append(out, CategorySummary{Category: r.Category})
			i = len(out) - 1
		}
		out[i].Total.Cents += amount(r)
	}
	return out
}

// SummaryByPaymentType accumulates total, tax and record count per payment
// type, again in first-seen order.
func SummaryByPaymentType(records []core.ExpenseRecord) []PaymentTypeSummary {
	out := []PaymentTypeSummary{}
	index := make(map[string]int, len(records))
	for _, r := range records {
		i, seen := index[r.PaymentType]
		if !seen {
			index[r.PaymentType] = len(out)
			out = append(out, PaymentTypeSummary{PaymentType: r.PaymentType})
			i = len(out) - 1
		}
		out[i].Total.Cents += r.Amount.Cents
		out[i].Tax.Cents += r.Tax.Cents
		out[i].Count++
	}
	return out
}

// DailySeries emits one point per record in input order.
func DailySeries(records []core.ExpenseRecord) []SeriesPoint {
	out := make([]SeriesPoint, len(records))
	for i, r := range records {
		out[i] = SeriesPoint{Date: r.Date.ISO(), Amount: r.Amount}
	}
	return out
}

// MovingAverage smooths a series with a trailing (lagging, not centered)
// window. Indexes below period-1 emit 0 rather than being dropped, so the
// smoothed series stays the same length as its input and chart series line
// up point for point.
func MovingAverage(values []float64, period int) []float64 {
	if period < 1 {
		period = 1
	}
	out := make([]float64, len(values))
	var window float64
	for i, v := range values {
		window += v
		if i >= period {
			window -= values[i-period]
		}
		if i >= period-1 {
			out[i] = window / float64(period)
		}
	}
	return out
}

// HeatmapBuckets maps each record onto a weekday/category cell.
func HeatmapBuckets(records []core.ExpenseRecord) []HeatmapBucket {
	out := make([]HeatmapBucket, len(records))
	for i, r := range records {
		out[i] = HeatmapBucket{
			Weekday:  r.Date.WeekdayIndex(),
			Category: r.Category,
			Amount:   r.Amount,
		}
	}
	return out
}

// ConversionPolicy decides what happens to records whose currency tag is
// absent from the rate table.
type ConversionPolicy int

const (
	// PassThroughUnknown keeps unconvertible records untouched. This is the
	// historical behavior; it silently mixes currencies in report totals.
	PassThroughUnknown ConversionPolicy = iota
	// RejectUnknown fails the conversion instead.
	RejectUnknown
)

// ConvertToReportingCurrency scales totalAmount and taxAmount of each
// record by the rate for its currency tag and returns a new slice; input
// records are never modified. Untagged records and, under
// PassThroughUnknown, records with no rate entry pass through unchanged.
func ConvertToReportingCurrency(records []core.ExpenseRecord, rates core.RateTable, policy ConversionPolicy) ([]core.ExpenseRecord, error) {
	out := make([]core.ExpenseRecord, len(records))
	for i, r := range records {
		out[i] = r
		if r.Currency == "" {
			continue
		}
		rate, ok := rates[r.Currency]
		if !ok {
			if policy == RejectUnknown {
				return nil, &core.ValidationError{Row: i + 1, Field: "currency", Err: core.ErrUnknownCurrency}
			}
			continue
		}
		out[i].Amount = r.Amount.MulRate(rate)
		out[i].Tax = r.Tax.MulRate(rate)
	}
	return out, nil
}
