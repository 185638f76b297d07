package service

import (
	"context"
	"errors"
	"testing"

	"expensevis/internal/amqp"
	"expensevis/internal/core"
)

type capturePublisher struct {
	published []*amqp.ReminderDispatchMessage
	err       error
}

func (p *capturePublisher) PublishReminderDispatch(_ context.Context, msg *amqp.ReminderDispatchMessage) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

func reminder() core.PaymentReminder {
	return core.PaymentReminder{
		Type:     "Rent",
		Amount:   core.Money{Cents: 120000},
		Currency: core.USD,
		DueDate:  core.NewDate(2024, 12, 1),
	}
}

func TestReminderCRUD(t *testing.T) {
	store := testStore()
	svc := NewReminderService(store, nil)
	ctx := context.Background()

	id, err := svc.AddReminder(ctx, "jane", reminder())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	list, err := svc.ListReminders(ctx, "jane")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("unexpected list: %+v", list)
	}

	if err := svc.DeleteReminder(ctx, "jane", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ = svc.ListReminders(ctx, "jane")
	if len(list) != 0 {
		t.Fatalf("reminder not deleted: %+v", list)
	}
}

func TestAddReminderValidates(t *testing.T) {
	svc := NewReminderService(testStore(), nil)

	bad := reminder()
	bad.Amount.Cents = 0
	if _, err := svc.AddReminder(context.Background(), "jane", bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestSendReminder(t *testing.T) {
	store := testStore()
	pub := &capturePublisher{}
	svc := NewReminderService(store, pub)
	ctx := context.Background()

	user := core.User{Username: "jane.doe", Email: "jane@example.com", FirstName: "Jane", PasswordHash: "x"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatal(err)
	}
	account := user.AccountKey()
	id, err := svc.AddReminder(ctx, account, reminder())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.SendReminder(ctx, account, "jane.doe", id, "https://pay.example.com/x"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(pub.published))
	}
	msg := pub.published[0]
	if msg.Recipient != "jane@example.com" || msg.FirstName != "Jane" {
		t.Errorf("recipient fields wrong: %+v", msg)
	}
	if msg.Type != "Rent" || msg.AmountCents != 120000 || msg.Currency != "USD" || msg.DueDate != "2024-12-01" {
		t.Errorf("reminder fields wrong: %+v", msg)
	}
	if msg.PaymentLink != "https://pay.example.com/x" {
		t.Errorf("payment link wrong: %+v", msg)
	}
}

func TestSendReminderUnknownID(t *testing.T) {
	store := testStore()
	svc := NewReminderService(store, &capturePublisher{})
	err := svc.SendReminder(context.Background(), "jane", "jane", "missing", "")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSendReminderNoPublisher(t *testing.T) {
	svc := NewReminderService(testStore(), nil)
	if err := svc.SendReminder(context.Background(), "jane", "jane", "id", ""); err == nil {
		t.Fatal("expected error when dispatch is not configured")
	}
}
