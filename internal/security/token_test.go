package security

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue("parent-123")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	parentID, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if parentID != "parent-123" {
		t.Errorf("Verify() = %q, want %q", parentID, "parent-123")
	}
}

func TestVerifyGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	if _, err := tm.Verify("not-a-token"); err != ErrInvalidToken {
		t.Errorf("Verify(garbage) error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue("parent-123")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := verifier.Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Issue("parent-123")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := tm.Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify(expired) error = %v, want ErrInvalidToken", err)
	}
}
