package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func setSecret(t *testing.T, value string) {
	t.Helper()
	t.Setenv(secretEnvVariable, value)
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)
}

func TestGenerateAndParseToken(t *testing.T) {
	setSecret(t, "test-secret")

	token, err := GenerateToken("user-123", true, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a compact JWT, got %q", token)
	}

	claims, err := ParseAndValidate(token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("subject = %q, want user-123", claims.Subject)
	}
	if !claims.IsAdmin {
		t.Error("expected admin flag to round-trip")
	}
	if claims.Issuer != issuer {
		t.Errorf("issuer = %q, want %q", claims.Issuer, issuer)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
	ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	if ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", ttl)
	}
}

func TestGenerateTokenValidation(t *testing.T) {
	setSecret(t, "test-secret")

	if _, err := GenerateToken("", false, time.Hour); err == nil {
		t.Error("expected error for empty user id")
	}
	if _, err := GenerateToken("user-123", false, 0); err == nil {
		t.Error("expected error for non-positive ttl")
	}
}

func TestGenerateTokenMissingSecret(t *testing.T) {
	setSecret(t, "")

	if _, err := GenerateToken("user-123", false, time.Hour); err == nil {
		t.Fatal("expected error when secret is not configured")
	}
}

func TestParseAndValidateRejectsWrongSecret(t *testing.T) {
	setSecret(t, "first-secret")
	token, err := GenerateToken("user-123", false, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	setSecret(t, "second-secret")
	if _, err := ParseAndValidate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseAndValidateRejectsExpired(t *testing.T) {
	setSecret(t, "test-secret")

	past := time.Now().UTC().Add(-2 * time.Hour)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			ID:        "expired",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseAndValidate(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseAndValidateRejectsWrongIssuer(t *testing.T) {
	setSecret(t, "test-secret")

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseAndValidate(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseAndValidateRejectsGarbage(t *testing.T) {
	setSecret(t, "test-secret")

	for _, token := range []string{"", "   ", "not-a-token", "a.b.c"} {
		if _, err := ParseAndValidate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ParseAndValidate(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}
