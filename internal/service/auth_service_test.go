package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"expensevis/internal/core"
)

func authSvc() *AuthService {
	return NewAuthService(testStore(), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := authSvc()
	ctx := context.Background()

	user := core.User{Username: "jane.doe", Email: "jane@example.com", FirstName: "Jane"}
	if err := svc.Register(ctx, user, "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, got, err := svc.Login(ctx, "jane.doe", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if got.PasswordHash != "" {
		t.Error("login must not leak the password hash")
	}
	if got.Email != "jane@example.com" {
		t.Errorf("unexpected user: %+v", got)
	}

	username, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if username != "jane.doe" {
		t.Errorf("verify returned %q", username)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := authSvc()
	ctx := context.Background()
	user := core.User{Username: "jane", Email: "jane@example.com"}

	if err := svc.Register(ctx, user, "pw"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Register(ctx, user, "pw"); !errors.Is(err, core.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := authSvc()
	ctx := context.Background()
	if err := svc.Register(ctx, core.User{Username: "jane", Email: "j@e.com"}, "right"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.Login(ctx, "jane", "wrong"); !errors.Is(err, core.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Unknown user yields the same error as a bad password.
	if _, _, err := svc.Login(ctx, "ghost", "any"); !errors.Is(err, core.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterEmptyPassword(t *testing.T) {
	svc := authSvc()
	err := svc.Register(context.Background(), core.User{Username: "jane", Email: "j@e.com"}, "")
	var verr *core.ValidationError
	if !errors.As(err, &verr) || verr.Field != "password" {
		t.Fatalf("expected password validation error, got %v", err)
	}
}
