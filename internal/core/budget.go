package core

import "errors"

// BudgetStatus compares total spend to the configured monthly budget.
type BudgetStatus string

const (
	BudgetUnder BudgetStatus = "UNDER"
	BudgetAt    BudgetStatus = "AT"
	BudgetOver  BudgetStatus = "OVER"
)

// ErrBudgetNotSet blocks expense submission until a monthly budget exists.
// The check belongs to the caller (SubmitExpense), not to EvaluateBudget.
var ErrBudgetNotSet = errors.New("monthly budget not set")

// BudgetConfig is the single per-user budget, mutated only by an explicit
// save and persisted across sessions.
type BudgetConfig struct {
	MonthlyBudget Money    `json:"monthlyBudget"`
	Currency      Currency `json:"currency"`
}

// BudgetReport is the outcome of evaluating a record set against a budget.
type BudgetReport struct {
	TotalSpent Money        `json:"totalSpent"`
	Percentage float64      `json:"percentage"`
	Status     BudgetStatus `json:"status"`
}

// EvaluateBudget sums totalAmount over the records and derives the spend
// percentage and status. Percentage is defined as 0 when the monthly budget
// is 0 so the zero-budget case never propagates NaN or Inf.
func EvaluateBudget(records []ExpenseRecord, cfg BudgetConfig) BudgetReport {
	var spent int64
	for _, r := range records {
		spent += r.Amount.Cents
	}

	report := BudgetReport{TotalSpent: Money{Cents: spent}}

	budget := cfg.MonthlyBudget.Cents
	if budget > 0 {
		report.Percentage = float64(spent) / float64(budget) * 100
	}

	switch {
	case spent < budget:
		report.Status = BudgetUnder
	case spent == budget:
		report.Status = BudgetAt
	default:
		report.Status = BudgetOver
	}
	return report
}
