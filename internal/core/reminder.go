package core

import "strings"

// PaymentReminder is an upcoming payment the user wants to be emailed
// about: rent, a utility bill, a subscription.
type PaymentReminder struct {
	ID       string   `json:"id,omitempty"`
	Type     string   `json:"type"`
	Amount   Money    `json:"amount"`
	Currency Currency `json:"currency"`
	DueDate  Date     `json:"dueDate"`
}

func (p PaymentReminder) Validate() error {
	if strings.TrimSpace(p.Type) == "" {
		return &ValidationError{Field: "type", Err: ErrEmptyName}
	}
	if p.Amount.Cents <= 0 {
		return &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}
	if err := p.DueDate.Validate(); err != nil {
		return &ValidationError{Field: "dueDate", Err: err}
	}
	return nil
}

// AmountWithCurrency renders "1200.00 USD" the way the reminder email
// template expects it.
func (p PaymentReminder) AmountWithCurrency() string {
	cur := p.Currency
	if cur == "" {
		cur = USD
	}
	return p.Amount.String() + " " + string(cur)
}
