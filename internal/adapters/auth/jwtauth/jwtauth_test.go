package jwtauth

import (
	"context"
	"testing"
	"time"

	"pet-registry/internal/ports/auth"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	j := New(Config{Secret: []byte("test-secret")})

	token, err := j.Issue(auth.Claims{UserID: "u1", Email: "ana@example.com", Role: auth.RoleModerator})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := j.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "ana@example.com" || claims.Role != auth.RoleModerator {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	issuer := New(Config{Secret: []byte("secret-a")})
	verifier := New(Config{Secret: []byte("secret-b")})

	token, err := issuer.Issue(auth.Claims{UserID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	j := New(Config{Secret: []byte("test-secret"), TTL: time.Hour})

	issuedAt := time.Now().Add(-48 * time.Hour)
	j.now = func() time.Time { return issuedAt }

	token, err := j.Issue(auth.Claims{UserID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	j.now = time.Now
	if _, err := j.Verify(context.Background(), token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	j := New(Config{Secret: []byte("test-secret")})

	for _, token := range []string{"", "   ", "not-a-token", "a.b.c"} {
		if _, err := j.Verify(context.Background(), token); err == nil {
			t.Fatalf("expected error for token %q", token)
		}
	}
}

func TestIssue_RequiresUserID(t *testing.T) {
	j := New(Config{Secret: []byte("test-secret")})

	if _, err := j.Issue(auth.Claims{}); err == nil {
		t.Fatal("expected error for empty user id")
	}
}
