package report

import (
	"expensevis/internal/core"
)

// Weekdays labels the heatmap x axis, index-aligned with Date.WeekdayIndex.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Chart payloads mirror what the visualization client feeds straight into
// its chart library: parallel label/value slices, amounts as floats.
type (
	PieSlice struct {
		Name string  `json:"name"`
		Y    float64 `json:"y"`
	}

	ColumnChart struct {
		Categories []string  `json:"categories"`
		Values     []float64 `json:"values"`
	}

	LineChart struct {
		Dates  []string  `json:"dates"`
		Values []float64 `json:"values"`
	}

	StackedSeries struct {
		Name   string    `json:"name"`
		Values []float64 `json:"values"`
	}

	StackedChart struct {
		Dates  []string        `json:"dates"`
		Series []StackedSeries `json:"series"`
	}

	TrendChart struct {
		Dates         []string  `json:"dates"`
		Values        []float64 `json:"values"`
		MovingAverage []float64 `json:"movingAverage"`
	}

	HeatmapCell struct {
		X     int     `json:"x"` // weekday, 0=Mon
		Y     int     `json:"y"` // index into Categories
		Value float64 `json:"value"`
	}

	HeatmapChart struct {
		Weekdays   []string      `json:"weekdays"`
		Categories []string      `json:"categories"`
		Cells      []HeatmapCell `json:"cells"`
	}

	// Bundle is everything the visualization page renders for one user.
	Bundle struct {
		Pie      []PieSlice           `json:"pie"`
		Column   ColumnChart          `json:"column"`
		Line     LineChart            `json:"line"`
		Stacked  StackedChart         `json:"stacked"`
		Trend    TrendChart           `json:"trend"`
		Heatmap  HeatmapChart         `json:"heatmap"`
		Payments []PaymentTypeSummary `json:"payments"`
		TaxPie   []PieSlice           `json:"taxPie"`
	}
)

// MovingAveragePeriod is the trailing window the trend chart overlays.
const MovingAveragePeriod = 3

// PieChart shapes the category summary for a pie rendering.
func PieChart(records []core.ExpenseRecord) []PieSlice {
	sums := SumByCategory(records)
	out := make([]PieSlice, len(sums))
	for i, s := range sums {
		out[i] = PieSlice{Name: s.Category, Y: s.Total.Float()}
	}
	return out
}

// CategoryColumns shapes category totals as parallel label/value slices.
func CategoryColumns(records []core.ExpenseRecord) ColumnChart {
	sums := SumByCategory(records)
	chart := ColumnChart{
		Categories: make([]string, len(sums)),
		Values:     make([]float64, len(sums)),
	}
	for i, s := range sums {
		chart.Categories[i] = s.Category
		chart.Values[i] = s.Total.Float()
	}
	return chart
}

// TrendLine is the raw expense trend, one point per record in entry order.
func TrendLine(records []core.ExpenseRecord) LineChart {
	series := DailySeries(records)
	chart := LineChart{
		Dates:  make([]string, len(series)),
		Values: make([]float64, len(series)),
	}
	for i, p := range series {
		chart.Dates[i] = p.Date
		chart.Values[i] = p.Amount.Float()
	}
	return chart
}

// StackedByDate buckets amounts by distinct date (first-seen order) and
// category, one stacked series per category.
func StackedByDate(records []core.ExpenseRecord) StackedChart {
	chart := StackedChart{}
	dateIndex := map[string]int{}
	for _, r := range records {
		d := r.Date.ISO()
		if _, seen := dateIndex[d]; !seen {
			dateIndex[d] = len(chart.Dates)
			chart.Dates = append(chart.Dates, d)
		}
	}

	seriesIndex := map[string]int{}
	for _, r := range records {
		i, seen := seriesIndex[r.Category]
		if !seen {
			seriesIndex[r.Category] = len(chart.Series)
			chart.Series = append(chart.Series, StackedSeries{
				Name:   r.Category,
				Values: make([]float64, len(chart.Dates)),
			})
			i = len(chart.Series) - 1
		}
		chart.Series[i].Values[dateIndex[r.Date.ISO()]] += r.Amount.Float()
	}
	return chart
}

// TrendWithAverage overlays the trailing moving average on the raw trend.
func TrendWithAverage(records []core.ExpenseRecord) TrendChart {
	line := TrendLine(records)
	return TrendChart{
		Dates:         line.Dates,
		Values:        line.Values,
		MovingAverage: MovingAverage(line.Values, MovingAveragePeriod),
	}
}

// Heatmap shapes weekday/category buckets with category rows in first-seen
// order.
func Heatmap(records []core.ExpenseRecord) HeatmapChart {
	chart := HeatmapChart{Weekdays: Weekdays}
	catIndex := map[string]int{}
	buckets := HeatmapBuckets(records)
	for i, b := range buckets {
		y, seen := catIndex[b.Category]
		if !seen {
			catIndex[b.Category] = len(chart.Categories)
			chart.Categories = append(chart.Categories, b.Category)
			y = len(chart.Categories) - 1
		}
		chart.Cells = append(chart.Cells, HeatmapCell{
			X:     buckets[i].Weekday,
			Y:     y,
			Value: b.Amount.Float(),
		})
	}
	return chart
}

// BuildBundle computes every chart payload for one record set.
func BuildBundle(records []core.ExpenseRecord) Bundle {
	taxSums := SumTaxByCategory(records)
	taxPie := make([]PieSlice, len(taxSums))
	for i, s := range taxSums {
		taxPie[i] = PieSlice{Name: s.Category, Y: s.Total.Float()}
	}
	return Bundle{
		Pie:      PieChart(records),
		Column:   CategoryColumns(records),
		Line:     TrendLine(records),
		Stacked:  StackedByDate(records),
		Trend:    TrendWithAverage(records),
		Heatmap:  Heatmap(records),
		Payments: SummaryByPaymentType(records),
		TaxPie:   taxPie,
	}
}
