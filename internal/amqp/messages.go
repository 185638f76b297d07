package amqp

import (
	"encoding/json"
	"time"
)

// ReminderDispatchMessage carries everything the mail worker needs to send
// one payment reminder, so the worker never has to reach back into the
// store.
type ReminderDispatchMessage struct {
	ReminderID  string    `json:"reminder_id"`
	Type        string    `json:"type"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	DueDate     string    `json:"due_date"`
	Recipient   string    `json:"recipient"`
	FirstName   string    `json:"first_name"`
	PaymentLink string    `json:"payment_link"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewReminderDispatchMessage stamps a dispatch message with the current time.
func NewReminderDispatchMessage(reminderID, kind string, amountCents int64, currency, dueDate, recipient, firstName, paymentLink string) *ReminderDispatchMessage {
	return &ReminderDispatchMessage{
		ReminderID:  reminderID,
		Type:        kind,
		AmountCents: amountCents,
		Currency:    currency,
		DueDate:     dueDate,
		Recipient:   recipient,
		FirstName:   firstName,
		PaymentLink: paymentLink,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReminderDispatchMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReminderDispatchMessageFromJSON creates a message from JSON bytes
func ReminderDispatchMessageFromJSON(data []byte) (*ReminderDispatchMessage, error) {
	var msg ReminderDispatchMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
