package main

import (
	"database/sql"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

func newAuthTestService(t *testing.T) *authService {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed creating users table: %v", err)
	}

	return newAuthService(db, "secret")
}

func TestSessionValueRoundTrip(t *testing.T) {
	a := newAuthTestService(t)

	value := a.createSessionValue("user@example.com")
	email, ok := a.verifySessionValue(value)
	if !ok || email != "user@example.com" {
		t.Fatalf("verify = %q, %v", email, ok)
	}
}

func TestSessionValueTamperingRejected(t *testing.T) {
	a := newAuthTestService(t)

	value := a.createSessionValue("user@example.com")
	forged := a.createSessionValue("root@example.com")
	// forged payload with the original signature
	tampered := strings.SplitN(forged, ".", 2)[0] + "." + strings.SplitN(value, ".", 2)[1]
	if _, ok := a.verifySessionValue(tampered); ok {
		t.Fatalf("tampered session value must be rejected")
	}

	other := newAuthService(a.db, "different-secret")
	if _, ok := other.verifySessionValue(value); ok {
		t.Fatalf("session signed with another secret must be rejected")
	}

	if _, ok := a.verifySessionValue("no-dot-separator"); ok {
		t.Fatalf("malformed session value must be rejected")
	}
}

func TestEnsureAdminUserIdempotentAndCredentials(t *testing.T) {
	a := newAuthTestService(t)

	if err := a.ensureAdminUser("admin@example.com", "password"); err != nil {
		t.Fatalf("ensureAdminUser returned error: %v", err)
	}
	if err := a.ensureAdminUser("admin@example.com", "other-password"); err != nil {
		t.Fatalf("second ensureAdminUser returned error: %v", err)
	}

	valid, err := a.validateCredentials("admin@example.com", "password")
	if err != nil || !valid {
		t.Fatalf("validateCredentials = %v, %v, want valid", valid, err)
	}

	valid, err = a.validateCredentials("admin@example.com", "other-password")
	if err != nil || valid {
		t.Fatalf("re-seeding must not overwrite the original password")
	}

	valid, err = a.validateCredentials("nobody@example.com", "password")
	if err != nil || valid {
		t.Fatalf("unknown user must not validate")
	}
}
