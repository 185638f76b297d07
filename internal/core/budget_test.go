package core

import "testing"

func records(amounts ...int64) []ExpenseRecord {
	out := make([]ExpenseRecord, len(amounts))
	for i, a := range amounts {
		out[i] = ExpenseRecord{
			Name:   "r",
			Amount: Money{Cents: a},
			Date:   NewDate(2024, 11, 1),
		}
	}
	return out
}

func TestEvaluateBudget(t *testing.T) {
	cases := []struct {
		name       string
		spentCents []int64
		budget     int64
		wantPct    float64
		wantStatus BudgetStatus
	}{
		{"under", []int64{30000, 20000}, 100000, 50, BudgetUnder},
		{"at", []int64{60000, 40000}, 100000, 100, BudgetAt},
		{"over", []int64{90000, 40000}, 100000, 130, BudgetOver},
		{"zero budget no spend", nil, 0, 0, BudgetAt},
		{"zero budget with spend", []int64{100}, 0, 0, BudgetOver},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateBudget(records(tc.spentCents...), BudgetConfig{
				MonthlyBudget: Money{Cents: tc.budget},
				Currency:      USD,
			})
			if got.Percentage != tc.wantPct {
				t.Errorf("percentage: expected %v, got %v", tc.wantPct, got.Percentage)
			}
			if got.Status != tc.wantStatus {
				t.Errorf("status: expected %s, got %s", tc.wantStatus, got.Status)
			}
		})
	}
}

func TestEvaluateBudgetTotals(t *testing.T) {
	report := EvaluateBudget(records(1050, 2025, 30), BudgetConfig{MonthlyBudget: Money{Cents: 100000}})
	if report.TotalSpent.Cents != 3105 {
		t.Errorf("expected 3105 cents, got %d", report.TotalSpent.Cents)
	}
}
