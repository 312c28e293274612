package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/lifetrack/internal/lock"
)

// Document is the on-disk shape of a JSON store.
type Document struct {
	Version int                        `json:"version"`
	Values  map[string]json.RawMessage `json:"values"`
}

// JSONStore keeps every value in one JSON file, rewritten whole on each Put.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Other processes are kept out by a lockfile next to the store.
type JSONStore struct {
	path string
	doc  *Document
	lock *lock.Lock
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyInitialized, s.path)
	}

	l, err := lock.Acquire(s.path)
	if err != nil {
		return err
	}
	s.lock = l

	s.doc = &Document{
		Version: 1,
		Values:  make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]json.RawMessage)
	}

	if s.lock == nil {
		l, err := lock.Acquire(s.path)
		if err != nil {
			return err
		}
		s.lock = l
	}

	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	err := s.lock.Release()
	s.lock = nil
	return err
}

// save writes to a temporary file and renames it over the store so a failed
// write never leaves a truncated file behind.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) ([]byte, bool, error) {
	if s.doc == nil {
		return nil, false, ErrNotLoaded
	}
	v, ok := s.doc.Values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put stores value under key. Values must be JSON so the file stays readable.
func (s *JSONStore) Put(key string, value []byte) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	s.doc.Values[key] = append(json.RawMessage(nil), value...)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
