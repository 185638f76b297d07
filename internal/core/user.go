package core

import (
	"errors"
	"strings"
)

var (
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// User is one registered account. AccountKey() scopes every stored entity;
// no data is shared across users.
type User struct {
	Username     string
	Email        string
	FirstName    string
	PasswordHash string
}

// AccountKey returns the sanitized identifier used to namespace the user's
// records in every backend.
func (u User) AccountKey() string {
	return SanitizeAccountKey(u.Username)
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return &ValidationError{Field: "username", Err: errors.New("username required")}
	}
	if strings.TrimSpace(u.Email) == "" {
		return &ValidationError{Field: "email", Err: errors.New("email required")}
	}
	if u.PasswordHash == "" {
		return &ValidationError{Field: "password", Err: errors.New("password required")}
	}
	return nil
}
