package service

import (
	"context"
	"fmt"
	"log/slog"

	"expensevis/internal/amqp"
	"expensevis/internal/backend"
	"expensevis/internal/core"
)

// ReminderPublisher is the broker-side surface the reminder service needs.
type ReminderPublisher interface {
	PublishReminderDispatch(ctx context.Context, msg *amqp.ReminderDispatchMessage) error
}

// ReminderService manages payment reminders and hands dispatch requests to
// the mail worker over the broker.
type ReminderService struct {
	store     backend.Backend
	publisher ReminderPublisher
}

func NewReminderService(store backend.Backend, publisher ReminderPublisher) *ReminderService {
	return &ReminderService{store: store, publisher: publisher}
}

// AddReminder validates and stores a reminder.
func (s *ReminderService) AddReminder(ctx context.Context, account string, rem core.PaymentReminder) (string, error) {
	if err := rem.Validate(); err != nil {
		return "", err
	}
	id, err := s.store.AppendReminder(ctx, account, rem)
	if err != nil {
		return "", fmt.Errorf("save reminder: %w", err)
	}
	slog.InfoContext(ctx, "Reminder saved",
		"account", account,
		"reminder_id", id,
		"type", rem.Type)
	return id, nil
}

// ListReminders returns the account's reminders in append order.
func (s *ReminderService) ListReminders(ctx context.Context, account string) ([]core.PaymentReminder, error) {
	return s.store.ListReminders(ctx, account)
}

// DeleteReminder removes one reminder.
func (s *ReminderService) DeleteReminder(ctx context.Context, account, id string) error {
	return s.store.RemoveReminder(ctx, account, id)
}

// SendReminder publishes one dispatch message for the mail worker. The
// recipient is the reminder owner's registered email; delivery itself is
// asynchronous, success here means the message reached the broker.
func (s *ReminderService) SendReminder(ctx context.Context, account, username, id, paymentLink string) error {
	if s.publisher == nil {
		return fmt.Errorf("reminder dispatch not configured")
	}

	reminders, err := s.store.ListReminders(ctx, account)
	if err != nil {
		return fmt.Errorf("list reminders: %w", err)
	}
	var rem *core.PaymentReminder
	for i := range reminders {
		if reminders[i].ID == id {
			rem = &reminders[i]
			break
		}
	}
	if rem == nil {
		return core.ErrNotFound
	}

	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	msg := amqp.NewReminderDispatchMessage(
		rem.ID,
		rem.Type,
		rem.Amount.Cents,
		string(rem.Currency),
		rem.DueDate.ISO(),
		user.Email,
		user.FirstName,
		paymentLink,
	)
	if err := s.publisher.PublishReminderDispatch(ctx, msg); err != nil {
		return fmt.Errorf("publish reminder dispatch: %w", err)
	}

	slog.InfoContext(ctx, "Reminder dispatch queued",
		"account", account,
		"reminder_id", rem.ID,
		"recipient", user.Email)
	return nil
}
