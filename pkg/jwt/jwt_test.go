package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour, "donorhub")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	token, exp, err := m.GenerateToken("user-1", "a@example.com", "Alice", "user")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if exp <= time.Now().Unix() {
		t.Fatalf("expected future expiry, got %d", exp)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected user-1, got %q", claims.UserID)
	}
	if claims.Email != "a@example.com" {
		t.Fatalf("expected email, got %q", claims.Email)
	}
	if claims.Role != "user" {
		t.Fatalf("expected role user, got %q", claims.Role)
	}
	if claims.Issuer != "donorhub" {
		t.Fatalf("expected issuer donorhub, got %q", claims.Issuer)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m, err := NewManager("test-secret", -time.Minute, "donorhub")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	token, _, err := m.GenerateToken("user-1", "a@example.com", "Alice", "user")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := m.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m1, _ := NewManager("secret-one", time.Hour, "donorhub")
	m2, _ := NewManager("secret-two", time.Hour, "donorhub")

	token, _, err := m1.GenerateToken("user-1", "a@example.com", "Alice", "user")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := m2.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("", time.Hour, "donorhub"); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
