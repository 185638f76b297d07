package mail

import (
	"context"
	"strings"
	"testing"

	"expensevis/internal/amqp"
	"expensevis/internal/config"
)

func dispatchMsg() *amqp.ReminderDispatchMessage {
	return &amqp.ReminderDispatchMessage{
		ReminderID:  "r1",
		Type:        "Rent",
		AmountCents: 120050,
		Currency:    "USD",
		DueDate:     "2024-12-01",
		Recipient:   "jane@example.com",
		FirstName:   "Jane",
		PaymentLink: "https://pay.example.com/r1",
	}
}

func TestReminderBody(t *testing.T) {
	body := reminderBody(dispatchMsg(), "Expense Tracker")

	for _, want := range []string{"Hi Jane", "Rent", "1200.50 USD", "2024-12-01", "https://pay.example.com/r1", "Expense Tracker"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestReminderBodyNoLinkNoName(t *testing.T) {
	msg := dispatchMsg()
	msg.PaymentLink = ""
	msg.FirstName = ""
	body := reminderBody(msg, "Expense Tracker")

	if strings.Contains(body, "pay here") {
		t.Error("body should omit payment link section when link is empty")
	}
	if !strings.Contains(body, "Hi there") {
		t.Error("body should fall back to a generic greeting")
	}
}

func TestReminderSubject(t *testing.T) {
	got := reminderSubject(dispatchMsg())
	want := "Payment reminder: Rent due 2024-12-01"
	if got != want {
		t.Errorf("subject = %q, want %q", got, want)
	}
}

func TestNewFallsBackToMock(t *testing.T) {
	cases := []*config.Config{
		{MailProvider: "mock"},
		{MailProvider: "unknown"},
		{MailProvider: "smtp"},                              // missing host
		{MailProvider: "mailgun", MailgunDomain: "mg.test"}, // missing key
	}
	for _, cfg := range cases {
		if _, ok := New(cfg).(*MockMailer); !ok {
			t.Errorf("provider %q with incomplete settings should yield mock", cfg.MailProvider)
		}
	}
}

func TestNewSelectsProvider(t *testing.T) {
	smtpCfg := &config.Config{MailProvider: "smtp", SMTPHost: "smtp.test", SMTPPort: "587", MailFrom: "noreply@test"}
	if _, ok := New(smtpCfg).(*SMTPMailer); !ok {
		t.Error("expected SMTP mailer")
	}

	mgCfg := &config.Config{MailProvider: "mailgun", MailgunDomain: "mg.test", MailgunAPIKey: "key", MailFrom: "noreply@test"}
	if _, ok := New(mgCfg).(*MailgunMailer); !ok {
		t.Error("expected Mailgun mailer")
	}
}

func TestMockMailerRecords(t *testing.T) {
	m := &MockMailer{}
	if err := m.SendPaymentReminder(context.Background(), dispatchMsg()); err != nil {
		t.Fatalf("mock send: %v", err)
	}
	if len(m.Sent) != 1 || m.Sent[0].ReminderID != "r1" {
		t.Fatalf("mock did not record message: %+v", m.Sent)
	}
}
