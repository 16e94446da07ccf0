package keystore_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/campusdata/webreg-collector/internal/keystore"
)

func openTemp(t *testing.T) *keystore.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.db")
	s, err := keystore.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestIssueAndCheck(t *testing.T) {
	s := openTemp(t)

	cred, err := s.Issue(nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	parts := strings.SplitN(cred, "#", 2)
	if len(parts) != 2 {
		t.Fatalf("expected prefix#token credential, got %q", cred)
	}

	result, err := s.Check(parts[0], parts[1])
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result != keystore.Valid {
		t.Errorf("expected Valid, got %v", result)
	}
}

func TestCheckUnknownPrefix(t *testing.T) {
	s := openTemp(t)

	result, err := s.Check("nope", "nope")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result != keystore.NoPrefixOrKeyFound {
		t.Errorf("expected NoPrefixOrKeyFound, got %v", result)
	}
}

func TestCheckWrongToken(t *testing.T) {
	s := openTemp(t)

	cred, err := s.Issue(nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	prefix := strings.SplitN(cred, "#", 2)[0]

	result, err := s.Check(prefix, "wrong-token")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result != keystore.NoPrefixOrKeyFound {
		t.Errorf("expected NoPrefixOrKeyFound for mismatched token, got %v", result)
	}
}

func TestDeleteByPrefix(t *testing.T) {
	s := openTemp(t)

	cred, err := s.Issue(nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	prefix := strings.SplitN(cred, "#", 2)[0]

	ok, err := s.DeleteByPrefix(prefix)
	if err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}
	if !ok {
		t.Error("expected deletion to report true")
	}

	ok, err = s.DeleteByPrefix(prefix)
	if err != nil {
		t.Fatalf("DeleteByPrefix (second): %v", err)
	}
	if ok {
		t.Error("expected second deletion to report false")
	}
}

func TestEditDescription(t *testing.T) {
	s := openTemp(t)

	cred, err := s.Issue(nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	prefix := strings.SplitN(cred, "#", 2)[0]

	desc := "rotated key for the scheduler"
	ok, err := s.EditDescription(prefix, &desc)
	if err != nil {
		t.Fatalf("EditDescription: %v", err)
	}
	if !ok {
		t.Error("expected edit to report true")
	}

	entries, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Description == nil || *entries[0].Description != desc {
		t.Errorf("expected description %q, got %v", desc, entries[0].Description)
	}
}

func TestListAllEmpty(t *testing.T) {
	s := openTemp(t)

	entries, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}
}
