package auth

import (
	"errors"
	"testing"

	"toolcrib/config"
)

func testDirectory(t *testing.T) *Directory {
	t.Helper()
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return NewDirectory([]config.Operator{
		{Username: "jdoe", DisplayName: "J. Doe", PasswordHash: hash, Admin: true},
		{Username: "asmith", PasswordHash: hash},
	})
}

func TestAuthenticate(t *testing.T) {
	dir := testDirectory(t)

	op, err := dir.Authenticate("jdoe", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Username != "jdoe" || op.DisplayName != "J. Doe" || !op.Admin {
		t.Fatalf("operator wrong: %+v", op)
	}

	// Case-insensitive username.
	if _, err := dir.Authenticate("JDoe", "hunter2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	dir := testDirectory(t)

	if _, err := dir.Authenticate("jdoe", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := dir.Authenticate("ghost", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	dir := testDirectory(t)

	op, ok := dir.Lookup("asmith")
	if !ok || op.Admin {
		t.Fatalf("lookup wrong: %+v ok=%v", op, ok)
	}
	if _, ok := dir.Lookup("ghost"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir := NewDirectory([]config.Operator{{Username: "x", PasswordHash: hash}})
	if _, err := dir.Authenticate("x", "s3cret"); err != nil {
		t.Fatalf("hash did not verify: %v", err)
	}
}
