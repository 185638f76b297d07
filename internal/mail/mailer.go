// Package mail delivers payment reminder emails. Provider selection is
// config-driven, with a mock that only logs so development environments
// never need real credentials.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"expensevis/internal/amqp"
	"expensevis/internal/config"
	"expensevis/internal/core"
)

type Mailer interface {
	SendPaymentReminder(ctx context.Context, msg *amqp.ReminderDispatchMessage) error
}

// New picks the provider from configuration. Incomplete provider settings
// fall back to the mock so a misconfigured worker logs instead of crashing.
func New(cfg *config.Config) Mailer {
	provider := strings.ToLower(cfg.MailProvider)

	switch provider {
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailFrom == "" {
			slog.Warn("Mailgun configuration incomplete, falling back to mock mailer")
			return &MockMailer{}
		}
		mg := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
		slog.Info("Mailgun mailer initialized", "domain", cfg.MailgunDomain)
		return &MailgunMailer{
			mg:         mg,
			from:       cfg.MailFrom,
			senderName: cfg.MailSenderName,
		}
	case "smtp":
		if cfg.SMTPHost == "" || cfg.MailFrom == "" {
			slog.Warn("SMTP configuration incomplete, falling back to mock mailer")
			return &MockMailer{}
		}
		return &SMTPMailer{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			Username:   cfg.SMTPUsername,
			Password:   cfg.SMTPPassword,
			From:       cfg.MailFrom,
			SenderName: cfg.MailSenderName,
		}
	default:
		slog.Info("Using mock mailer", "provider", provider)
		return &MockMailer{}
	}
}

// reminderSubject and reminderBody render the notification from the
// dispatch message alone.
func reminderSubject(msg *amqp.ReminderDispatchMessage) string {
	return fmt.Sprintf("Payment reminder: %s due %s", msg.Type, msg.DueDate)
}

func reminderBody(msg *amqp.ReminderDispatchMessage, senderName string) string {
	amount := core.Money{Cents: msg.AmountCents}
	var b strings.Builder
	name := msg.FirstName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "This is a reminder that your %s payment of %s %s is due on %s.\n",
		msg.Type, amount.String(), msg.Currency, msg.DueDate)
	if msg.PaymentLink != "" {
		fmt.Fprintf(&b, "\nYou can pay here: %s\n", msg.PaymentLink)
	}
	fmt.Fprintf(&b, "\nThanks,\n%s", senderName)
	return b.String()
}

type SMTPMailer struct {
	Host       string
	Port       string
	Username   string
	Password   string
	From       string
	SenderName string
}

func (s *SMTPMailer) SendPaymentReminder(ctx context.Context, msg *amqp.ReminderDispatchMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	headers := []string{
		"From: " + s.From,
		"To: " + msg.Recipient,
		"Subject: " + reminderSubject(msg),
		"MIME-version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + reminderBody(msg, s.SenderName)

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)
	if err := smtp.SendMail(addr, auth, s.From, []string{msg.Recipient}, []byte(message)); err != nil {
		slog.ErrorContext(ctx, "Failed to send reminder via SMTP", "error", err, "to", msg.Recipient)
		return fmt.Errorf("send reminder via SMTP: %w", err)
	}
	slog.InfoContext(ctx, "Reminder sent via SMTP", "to", msg.Recipient, "reminder_id", msg.ReminderID)
	return nil
}

type MailgunMailer struct {
	mg         mailgun.Mailgun
	from       string
	senderName string
}

func (m *MailgunMailer) SendPaymentReminder(ctx context.Context, msg *amqp.ReminderDispatchMessage) error {
	from := fmt.Sprintf("%s <%s>", m.senderName, m.from)
	message := m.mg.NewMessage(from, reminderSubject(msg), reminderBody(msg, m.senderName), msg.Recipient)
	message.AddTag("payment-reminder")

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	resp, id, err := m.mg.Send(ctx, message)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to send reminder via Mailgun", "error", err, "to", msg.Recipient, "mailgunResp", resp)
		return fmt.Errorf("mailgun send failed: %w", err)
	}
	slog.InfoContext(ctx, "Reminder sent via Mailgun", "to", msg.Recipient, "id", id)
	return nil
}

// MockMailer logs instead of sending and remembers the last message for
// tests.
type MockMailer struct {
	Sent []*amqp.ReminderDispatchMessage
}

func (m *MockMailer) SendPaymentReminder(ctx context.Context, msg *amqp.ReminderDispatchMessage) error {
	m.Sent = append(m.Sent, msg)
	slog.InfoContext(ctx, "MockMailer: would send payment reminder",
		"to", msg.Recipient,
		"subject", reminderSubject(msg))
	return nil
}
