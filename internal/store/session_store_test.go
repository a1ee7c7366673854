// internal/store/session_store_test.go
package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"teller/internal/domain"
	"teller/internal/store"
)

func TestSession_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()

	var s domain.SessionStore = store.NewSessionFileStore(home)

	session := domain.Session{CustomerID: "42", Token: "tok-abc", Name: "Jo Soap"}
	if err := s.Save(session); err != nil {
		t.Fatalf("save session: %v", err)
	}

	got, ok := s.Load()
	if !ok {
		t.Fatal("expected a session after save")
	}
	if got != session {
		t.Fatalf("mismatch after load: got %+v", got)
	}
}

func TestSession_LoadMissing_IsNoSession(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir())
	if _, ok := s.Load(); ok {
		t.Fatal("expected no session in empty dir")
	}
}

func TestSession_CorruptFile_IsNoSession(t *testing.T) {
	home := t.TempDir()
	s := store.NewSessionFileStore(home)

	if err := s.Save(domain.Session{CustomerID: "42", Token: "tok"}); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, "session.enc"), []byte("garbage"), 0o600); err != nil {
		t.Fatalf("corrupt session file: %v", err)
	}

	if _, ok := s.Load(); ok {
		t.Fatal("expected corrupt session to read as no session")
	}
}

func TestSession_TamperedCiphertext_IsNoSession(t *testing.T) {
	home := t.TempDir()
	s := store.NewSessionFileStore(home)

	if err := s.Save(domain.Session{CustomerID: "42", Token: "tok"}); err != nil {
		t.Fatalf("save session: %v", err)
	}
	// Losing the key makes the ciphertext unopenable.
	if err := os.Remove(filepath.Join(home, "session.key")); err != nil {
		t.Fatalf("remove key: %v", err)
	}

	if _, ok := s.Load(); ok {
		t.Fatal("expected undecryptable session to read as no session")
	}
}

func TestSession_Clear_Idempotent(t *testing.T) {
	home := t.TempDir()
	s := store.NewSessionFileStore(home)

	if err := s.Save(domain.Session{CustomerID: "42", Token: "tok"}); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear should be a no-op: %v", err)
	}
	if _, ok := s.Load(); ok {
		t.Fatal("expected no session after clear")
	}
}

func TestSession_RefusesPartialSession(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir())
	if err := s.Save(domain.Session{CustomerID: "42"}); err == nil {
		t.Fatal("expected error persisting session without token")
	}
}

func TestSession_OverwriteReplacesPrevious(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir())

	if err := s.Save(domain.Session{CustomerID: "1", Token: "old"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(domain.Session{CustomerID: "2", Token: "new"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok := s.Load()
	if !ok || got.CustomerID != "2" || got.Token != "new" {
		t.Fatalf("expected newest session, got %+v ok=%v", got, ok)
	}
}
