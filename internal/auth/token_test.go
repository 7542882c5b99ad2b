package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"stayhub/internal/domain"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	identity := domain.Identity{UserID: 42, Email: "ann@x.com"}

	tok, err := IssueToken(identity, secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	got, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if got != identity {
		t.Fatalf("identity mismatch: got %+v want %+v", got, identity)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := IssueToken(domain.Identity{UserID: 1, Email: "u@x.com"}, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = VerifyToken(tok, secret)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestIssueToken_NoTTL(t *testing.T) {
	t.Parallel()

	// ttl <= 0 issues a token without an expiry claim; it stays verifiable.
	secret := []byte("secret")
	tok, err := IssueToken(domain.Identity{UserID: 7, Email: "u@x.com"}, secret, 0)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	got, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if got.UserID != 7 {
		t.Fatalf("user id mismatch: got %d want 7", got.UserID)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken(domain.Identity{UserID: 2, Email: "u@x.com"}, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = VerifyToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyToken_TamperedPayload(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := IssueToken(domain.Identity{UserID: 3, Email: "u@x.com"}, secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}

	// flip every character of the payload in turn; none may verify
	for i := 0; i < len(parts[1]); i++ {
		payload := []byte(parts[1])
		if payload[i] == 'A' {
			payload[i] = 'B'
		} else {
			payload[i] = 'A'
		}
		tampered := parts[0] + "." + string(payload) + "." + parts[2]
		if _, err := VerifyToken(tampered, secret); err == nil {
			t.Fatalf("tampered token at index %d verified", i)
		}
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := VerifyToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
