package auth

import (
	"strings"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.Contains(hash, "$") {
		t.Fatalf("expected salt$hash format, got %q", hash)
	}
	if !CheckPassword("s3cret", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	a, _ := HashPassword("same")
	b, _ := HashPassword("same")
	if a == b {
		t.Error("expected distinct salts for identical passwords")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
	if CheckPassword("", "whatever") {
		t.Error("empty password must never match")
	}
	if CheckPassword("pw", "not-a-valid-hash") {
		t.Error("malformed stored hash must never match")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "jane.doe", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Username != "jane.doe" {
		t.Errorf("expected username jane.doe, got %q", claims.Username)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret", "jane", time.Hour)
	if _, err := ParseToken("other", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	token, _ := GenerateToken("secret", "jane", time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	if _, err := ParseToken("secret", token); err == nil {
		t.Error("expected error for expired token")
	}
}
