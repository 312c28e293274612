package storage

import (
	"errors"
	"time"
)

var (
	// ErrNotInitialized is returned by Load when the location holds no store yet
	ErrNotInitialized = errors.New("storage not initialized, run 'lifetrack init' first")
	// ErrAlreadyInitialized is returned by Init when the location already holds a store
	ErrAlreadyInitialized = errors.New("storage already initialized")
	// ErrNotLoaded is returned when a provider is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a key-value blob store. The tracker keeps its whole entry
// collection under a single key and replaces it on every change.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	// Get returns the value stored under key. found is false when nothing has
	// been stored yet, which is not an error.
	Get(key string) (value []byte, found bool, err error)
	// Put replaces the value stored under key.
	Put(key string, value []byte) error

	// Utils
	GetConfigPath() string
}

// WriteRecord describes one Put as recorded by providers that keep history.
type WriteRecord struct {
	Key       string
	Size      int
	WrittenAt time.Time
}

// HistoryProvider is implemented by the SQL providers, which log every Put.
type HistoryProvider interface {
	History(key string, limit int) ([]WriteRecord, error)
}
