package auth_test

import (
	"path/filepath"
	"testing"

	"go.store/internal/auth"
)

func TestNoPassphraseByDefault(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if auth.HasPassphrase(dbPath) {
		t.Fatalf("expected no passphrase for fresh database")
	}
	if err := auth.Check(dbPath, "anything"); err != auth.ErrNoPassphrase {
		t.Fatalf("got %v, want ErrNoPassphrase", err)
	}
}

func TestSetAndCheckPassphrase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := auth.SetPassphrase(dbPath, "correct horse"); err != nil {
		t.Fatalf("SetPassphrase: %v", err)
	}
	if !auth.HasPassphrase(dbPath) {
		t.Fatalf("expected passphrase sidecar to exist")
	}
	if err := auth.Check(dbPath, "correct horse"); err != nil {
		t.Fatalf("Check with correct passphrase: %v", err)
	}
	if err := auth.Check(dbPath, "wrong"); err != auth.ErrWrongPassphrase {
		t.Fatalf("got %v, want ErrWrongPassphrase", err)
	}
}
