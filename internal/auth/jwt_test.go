package auth

import (
	"testing"
	"time"

	"messenger-backend/internal/config"
)

func testManager(expiry time.Duration) *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiry = expiry
	return NewJWTManager(cfg)
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := testManager(time.Hour)

	token, err := m.GenerateToken(42, "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", claims.Email)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	m := testManager(-time.Minute)

	token, err := m.GenerateToken(42, "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := m.ValidateToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateMalformedToken(t *testing.T) {
	m := testManager(time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.ValidateToken(tok); err != ErrInvalidToken {
			t.Errorf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := testManager(time.Hour)
	token, err := m.GenerateToken(42, "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	other := testManager(time.Hour)
	other.secret = []byte("different-secret")
	if _, err := other.ValidateToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}
