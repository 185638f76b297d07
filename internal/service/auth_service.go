package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expensevis/internal/auth"
	"expensevis/internal/backend"
	"expensevis/internal/core"
)

// AuthService registers users and issues login tokens.
type AuthService struct {
	store  backend.Backend
	secret string
	ttl    time.Duration
}

func NewAuthService(store backend.Backend, secret string, ttl time.Duration) *AuthService {
	return &AuthService{store: store, secret: secret, ttl: ttl}
}

// Register validates and creates a user with a PBKDF2 password hash.
func (s *AuthService) Register(ctx context.Context, user core.User, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return &core.ValidationError{Field: "password", Err: err}
	}
	user.PasswordHash = hash
	if err := user.Validate(); err != nil {
		return err
	}
	return s.store.CreateUser(ctx, user)
}

// Login checks credentials and returns a signed token plus the user. Wrong
// username and wrong password collapse into core.ErrInvalidCredentials so
// responses never reveal which part failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, core.User, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", core.User{}, core.ErrInvalidCredentials
		}
		return "", core.User{}, fmt.Errorf("get user: %w", err)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", core.User{}, core.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.secret, user.Username, s.ttl)
	if err != nil {
		return "", core.User{}, fmt.Errorf("generate token: %w", err)
	}
	user.PasswordHash = ""
	return token, user, nil
}

// Verify parses a bearer token and returns the username it was issued for.
func (s *AuthService) Verify(token string) (string, error) {
	claims, err := auth.ParseToken(s.secret, token)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}
