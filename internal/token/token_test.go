// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package token

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	id := uuid.New()
	signed, err := svc.Issue(id, "author@example.com", models.RoleAuthor)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if signed == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != id {
		t.Errorf("user id: got %s, want %s", claims.UserID, id)
	}
	if claims.Email != "author@example.com" {
		t.Errorf("email: got %q, want %q", claims.Email, "author@example.com")
	}
	if claims.Role != models.RoleAuthor {
		t.Errorf("role: got %q, want %q", claims.Role, models.RoleAuthor)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := NewService([]byte("secret-a"), time.Hour)
	other := NewService([]byte("secret-b"), time.Hour)

	signed, err := svc.Issue(uuid.New(), "x@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := other.Verify(signed); err != ErrInvalid {
		t.Errorf("expected ErrInvalid for wrong secret, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService([]byte("test-secret"), -time.Minute)

	signed, err := svc.Issue(uuid.New(), "x@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Expiry is indistinguishable from any other invalid token.
	if _, err := svc.Verify(signed); err != ErrInvalid {
		t.Errorf("expected ErrInvalid for expired token, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(raw); err != ErrInvalid {
			t.Errorf("Verify(%q): expected ErrInvalid, got %v", raw, err)
		}
	}
}

func TestDefaultTTL(t *testing.T) {
	svc := NewService([]byte("test-secret"), 0)

	signed, err := svc.Issue(uuid.New(), "x@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	validity := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if validity != DefaultTTL {
		t.Errorf("validity window: got %s, want %s", validity, DefaultTTL)
	}
}
