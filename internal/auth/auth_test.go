package auth

import (
	"errors"
	"testing"
	"time"

	"selrs/internal/core"
)

func testGate(ttl time.Duration) *Gate {
	return NewGate("test-secret-key-0123456789", Credentials{Username: "admin", Password: "pw"}, ttl)
}

func TestLoginAndVerify(t *testing.T) {
	g := testGate(time.Hour)

	token, err := g.Login("admin", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	username, err := g.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if username != "admin" {
		t.Fatalf("username = %q, want admin", username)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	g := testGate(time.Hour)

	cases := []struct{ user, pass string }{
		{"admin", "wrong"},
		{"nobody", "pw"},
		{"", ""},
	}
	for _, tc := range cases {
		if _, err := g.Login(tc.user, tc.pass); !errors.Is(err, core.ErrInvalidCredentials) {
			t.Fatalf("Login(%q, %q) = %v, want ErrInvalidCredentials", tc.user, tc.pass, err)
		}
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	g := testGate(time.Hour)
	token, err := g.Login("admin", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Move the clock past the expiration.
	g.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := g.Verify(token); !errors.Is(err, core.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	g := testGate(time.Hour)
	other := NewGate("another-secret-key-987654321", Credentials{Username: "admin", Password: "pw"}, time.Hour)

	token, err := other.Login("admin", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := g.Verify(token); !errors.Is(err, core.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	g := testGate(time.Hour)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := g.Verify(token); !errors.Is(err, core.ErrInvalidToken) {
			t.Fatalf("Verify(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestFromAuthorizationHeader(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"abc123", "abc123"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FromAuthorizationHeader(tc.in); got != tc.want {
			t.Fatalf("FromAuthorizationHeader(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
