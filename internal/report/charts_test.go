package report

import (
	"testing"

	"expensevis/internal/core"
)

func chartRecords() []core.ExpenseRecord {
	return []core.ExpenseRecord{
		rec("shop", "Groceries", 10000, 500, core.NewDate(2024, 11, 4)),
		rec("fruit", "Groceries", 5000, 250, core.NewDate(2024, 11, 5)),
		rec("pizza", "Dining out", 3000, 150, core.NewDate(2024, 11, 5)),
	}
}

func TestPieChart(t *testing.T) {
	pie := PieChart(chartRecords())
	if len(pie) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(pie))
	}
	if pie[0].Name != "Groceries" || pie[0].Y != 150.0 {
		t.Errorf("unexpected first slice: %+v", pie[0])
	}
	if pie[1].Name != "Dining out" || pie[1].Y != 30.0 {
		t.Errorf("unexpected second slice: %+v", pie[1])
	}
}

func TestStackedByDate(t *testing.T) {
	chart := StackedByDate(chartRecords())
	if len(chart.Dates) != 2 {
		t.Fatalf("expected 2 distinct dates, got %v", chart.Dates)
	}
	if len(chart.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(chart.Series))
	}
	groceries := chart.Series[0]
	if groceries.Name != "Groceries" {
		t.Fatalf("expected Groceries first, got %s", groceries.Name)
	}
	if groceries.Values[0] != 100.0 || groceries.Values[1] != 50.0 {
		t.Errorf("unexpected groceries values: %v", groceries.Values)
	}
	dining := chart.Series[1]
	if dining.Values[0] != 0 || dining.Values[1] != 30.0 {
		t.Errorf("unexpected dining values: %v", dining.Values)
	}
}

func TestTrendWithAverageAligned(t *testing.T) {
	chart := TrendWithAverage(chartRecords())
	if len(chart.Values) != len(chart.MovingAverage) {
		t.Fatalf("series length mismatch: %d vs %d", len(chart.Values), len(chart.MovingAverage))
	}
	if chart.MovingAverage[0] != 0 || chart.MovingAverage[1] != 0 {
		t.Errorf("leading placeholders must be zero: %v", chart.MovingAverage)
	}
	want := (100.0 + 50.0 + 30.0) / 3.0
	if chart.MovingAverage[2] != want {
		t.Errorf("expected %v, got %v", want, chart.MovingAverage[2])
	}
}

func TestHeatmapChart(t *testing.T) {
	chart := Heatmap(chartRecords())
	if len(chart.Cells) != 3 {
		t.Fatalf("expected one cell per record, got %d", len(chart.Cells))
	}
	if chart.Categories[0] != "Groceries" || chart.Categories[1] != "Dining out" {
		t.Errorf("category rows out of order: %v", chart.Categories)
	}
	// 2024-11-04 is a Monday, 2024-11-05 a Tuesday.
	if chart.Cells[0].X != 0 || chart.Cells[1].X != 1 {
		t.Errorf("weekday mapping wrong: %+v", chart.Cells)
	}
	if chart.Cells[2].Y != 1 {
		t.Errorf("dining cell should sit on row 1: %+v", chart.Cells[2])
	}
}

func TestBuildBundle(t *testing.T) {
	bundle := BuildBundle(chartRecords())
	if len(bundle.Pie) == 0 || len(bundle.Payments) == 0 || len(bundle.Heatmap.Cells) == 0 {
		t.Fatalf("bundle incomplete: %+v", bundle)
	}
	if bundle.Payments[0].PaymentType != "Debit" || bundle.Payments[0].Count != 3 {
		t.Errorf("unexpected payments summary: %+v", bundle.Payments)
	}
}
