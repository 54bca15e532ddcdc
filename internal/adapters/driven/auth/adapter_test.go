package auth

import (
	"testing"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

func TestAdapter_PasswordHashing(t *testing.T) {
	adapter := NewAdapter("test-secret")

	hash, err := adapter.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Error("hash must not equal the plaintext")
	}

	if !adapter.VerifyPassword("correct horse battery staple", hash) {
		t.Error("correct password must verify")
	}
	if adapter.VerifyPassword("wrong password", hash) {
		t.Error("wrong password must not verify")
	}
}

func TestAdapter_TokenRoundTrip(t *testing.T) {
	adapter := NewAdapter("test-secret")

	now := time.Now()
	claims := &domain.TokenClaims{
		AdminID:   "admin-1",
		Email:     "owner@example.com",
		SessionID: "session-1",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}

	token, err := adapter.GenerateToken(claims)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parsed, err := adapter.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if parsed.AdminID != claims.AdminID || parsed.Email != claims.Email || parsed.SessionID != claims.SessionID {
		t.Errorf("claims mismatch: %+v", parsed)
	}
}

func TestAdapter_RejectsWrongSecret(t *testing.T) {
	signer := NewAdapter("secret-a")
	verifier := NewAdapter("secret-b")

	token, err := signer.GenerateToken(&domain.TokenClaims{
		AdminID:   "admin-1",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}
}

func TestAdapter_RejectsGarbage(t *testing.T) {
	adapter := NewAdapter("test-secret")
	if _, err := adapter.ParseToken("not.a.jwt"); err == nil {
		t.Error("garbage token must be rejected")
	}
}

func TestAdapter_RejectsExpired(t *testing.T) {
	adapter := NewAdapter("test-secret")

	token, err := adapter.GenerateToken(&domain.TokenClaims{
		AdminID:   "admin-1",
		IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := adapter.ParseToken(token); err == nil {
		t.Error("expired token must be rejected by the parser")
	}
}
