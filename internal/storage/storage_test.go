package storage

import (
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ajanda.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetAbsentKey(t *testing.T) {
	s := openTemp(t)
	if _, ok, err := s.Get(KeyTasks); err != nil || ok {
		t.Errorf("absent key: got ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTemp(t)
	if err := s.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok, err := s.Get(KeyTheme)
	if err != nil || !ok || v != "dark" {
		t.Errorf("Get = (%q, %v, %v), want (dark, true, nil)", v, ok, err)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := openTemp(t)
	if err := s.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(KeyTheme, "light"); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}
	v, _, _ := s.Get(KeyTheme)
	if v != "light" {
		t.Errorf("value = %q, want light", v)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("expected error for empty db path")
	}
}

func TestValuesPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ajanda.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Set(KeyTasks, `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()
	v, ok, err := s2.Get(KeyTasks)
	if err != nil || !ok || v != `[{"id":"a"}]` {
		t.Errorf("Get after reopen = (%q, %v, %v)", v, ok, err)
	}
}
