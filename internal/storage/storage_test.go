package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if _, found, err := s.Get("k"); err != nil || found {
		t.Fatalf("expected empty store, found=%v err=%v", found, err)
	}

	input := []byte(`[1]`)
	if err := s.Put("k", input); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	input[1] = '9'

	value, found, err := s.Get("k")
	if err != nil || !found {
		t.Fatalf("Get failed: found=%v err=%v", found, err)
	}
	if string(value) != `[1]` {
		t.Errorf("stored value changed through caller's slice: %q", value)
	}

	value[1] = '7'
	again, _, _ := s.Get("k")
	if string(again) != `[1]` {
		t.Errorf("stored value changed through returned slice: %q", again)
	}

	if s.GetConfigPath() != ":memory:" {
		t.Errorf("GetConfigPath() = %q", s.GetConfigPath())
	}
}

func TestJSONStore_InitLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lifetrack.json")

	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Put("lifeTrackerEntries", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("store file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}

	raw, _ := os.ReadFile(path)
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("store file is not a document: %v", err)
	}
	if doc.Version != 1 {
		t.Errorf("expected version 1, got %d", doc.Version)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	value, found, err := reopened.Get("lifeTrackerEntries")
	if err != nil || !found {
		t.Fatalf("Get failed: found=%v err=%v", found, err)
	}
	if string(value) != `[{"id":"a"}]` {
		t.Errorf("unexpected value %q", value)
	}
}

func TestJSONStore_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("load missing", func(t *testing.T) {
		s := NewJSONStore(filepath.Join(dir, "missing.json"))
		if err := s.Load(); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("expected ErrNotInitialized, got %v", err)
		}
	})

	t.Run("init existing", func(t *testing.T) {
		path := filepath.Join(dir, "existing.json")
		if err := os.WriteFile(path, []byte(`{"version":1,"values":{}}`), 0600); err != nil {
			t.Fatal(err)
		}
		s := NewJSONStore(path)
		if err := s.Init(); !errors.Is(err, ErrAlreadyInitialized) {
			t.Errorf("expected ErrAlreadyInitialized, got %v", err)
		}
	})

	t.Run("load corrupt", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.json")
		if err := os.WriteFile(path, []byte(`{not json`), 0600); err != nil {
			t.Fatal(err)
		}
		s := NewJSONStore(path)
		if err := s.Load(); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("not loaded", func(t *testing.T) {
		s := NewJSONStore(filepath.Join(dir, "unused.json"))
		if _, _, err := s.Get("k"); !errors.Is(err, ErrNotLoaded) {
			t.Errorf("Get: expected ErrNotLoaded, got %v", err)
		}
		if err := s.Put("k", []byte("1")); !errors.Is(err, ErrNotLoaded) {
			t.Errorf("Put: expected ErrNotLoaded, got %v", err)
		}
	})

	t.Run("invalid json value", func(t *testing.T) {
		s := NewJSONStore(filepath.Join(dir, "strict.json"))
		if err := s.Init(); err != nil {
			t.Fatal(err)
		}
		defer s.Close()
		if err := s.Put("k", []byte("{oops")); err == nil {
			t.Error("expected error for invalid JSON value")
		}
	})
}

func TestProvidersImplementInterface(t *testing.T) {
	var _ Provider = (*MemoryStore)(nil)
	var _ Provider = (*JSONStore)(nil)
}
