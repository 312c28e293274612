// Package tracker owns the entry collection. Every mutation is written back
// to a storage.Provider as one JSON array under constants.StorageKey.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/utils"
)

var (
	// ErrPersistence is returned when the provider could not be read or written.
	// The in-memory collection is still usable.
	ErrPersistence = errors.New("persistence failure")
	// ErrCorruptState is returned by Load when stored data could not be read as
	// an entry collection. The store starts empty.
	ErrCorruptState = errors.New("stored entries are corrupt")
)

// Store holds the entries of one session.
type Store struct {
	mu       sync.Mutex
	provider storage.Provider
	entries  []models.Entry

	now      func() time.Time
	newID    func() (string, error)
	location *time.Location
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 generator.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLocation sets the timezone that decides which calendar day an entry
// belongs to.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.location = loc
		}
	}
}

func New(provider storage.Provider, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		entries:  []models.Entry{},
		now:      time.Now,
		newID:    newUUIDv7,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Load replaces the collection with what the provider holds. Records that
// cannot be decoded are skipped. A blob that is not a JSON array is discarded
// and ErrCorruptState is returned; a provider error returns ErrPersistence.
// In every case the store is left usable.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []models.Entry{}

	raw, found, err := s.provider.Get(constants.StorageKey)
	if err != nil {
		logger.Warn("Failed to read stored entries, starting empty", "location", s.provider.GetConfigPath(), "error", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !found || len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}

	entries, skipped, err := decodeEntries(raw)
	if err != nil {
		logger.Warn("Discarding unreadable stored entries", "error", err)
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if skipped > 0 {
		logger.Warn("Skipped invalid stored entries", "skipped", skipped, "kept", len(entries))
	}

	s.entries = entries
	return nil
}

// SwitchProvider points the store at another provider and empties the
// collection. Nothing is read from or written to the old provider again.
func (s *Store) SwitchProvider(provider storage.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.provider = provider
	s.entries = []models.Entry{}
}

// decodeEntries reads a JSON array of entries one record at a time.
func decodeEntries(raw []byte) ([]models.Entry, int, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, 0, err
	}

	entries := make([]models.Entry, 0, len(records))
	seen := make(map[string]bool, len(records))
	skipped := 0
	for i, rec := range records {
		entry, err := decodeEntry(rec)
		if err != nil {
			logger.Debug("Skipping stored entry", "index", i, "error", err)
			skipped++
			continue
		}
		if seen[entry.ID] {
			logger.Debug("Skipping duplicate stored entry", "index", i, "id", entry.ID)
			skipped++
			continue
		}
		seen[entry.ID] = true
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}

func decodeEntry(rec json.RawMessage) (models.Entry, error) {
	var entry models.Entry
	if err := json.Unmarshal(rec, &entry); err != nil {
		return models.Entry{}, err
	}
	if entry.ID == "" {
		return models.Entry{}, errors.New("missing id")
	}
	if entry.SectionID == "" {
		return models.Entry{}, errors.New("missing sectionId")
	}
	if !utils.ValidateDate(entry.Date) {
		return models.Entry{}, fmt.Errorf("invalid date %q", entry.Date)
	}
	if entry.Data == nil {
		entry.Data = models.Data{}
	}
	return entry, nil
}

// CreateEntry records data against sectionID on the current calendar day.
// The data is not validated. When saving fails the entry is kept in memory
// and returned together with an ErrPersistence error.
func (s *Store) CreateEntry(sectionID string, data models.Data) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to generate entry id: %w", err)
	}

	now := s.now().In(s.location)
	entry := models.Entry{
		ID:        id,
		SectionID: sectionID,
		Date:      utils.DateOf(now),
		Data:      data.Clone(),
		CreatedAt: now,
	}
	if entry.Data == nil {
		entry.Data = models.Data{}
	}

	s.entries = append(s.entries, entry)
	logger.Debug("Created entry", "id", entry.ID, "section", sectionID, "date", entry.Date)

	return entry.Clone(), s.saveLocked()
}

// DeleteEntry removes the entry with the given id. It reports whether an
// entry was removed; an unknown id is not an error.
func (s *Store) DeleteEntry(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.entries {
		if entry.ID != id {
			continue
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		logger.Debug("Deleted entry", "id", id)
		return true, s.saveLocked()
	}
	return false, nil
}

// Save writes the whole collection to the provider.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("%w: failed to serialize entries: %v", ErrPersistence, err)
	}
	if err := s.provider.Put(constants.StorageKey, data); err != nil {
		logger.Warn("Failed to save entries, changes kept in memory only", "location", s.provider.GetConfigPath(), "error", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Entries returns a deep copy of the collection in creation order.
func (s *Store) Entries() []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Entry, len(s.entries))
	for i, entry := range s.entries {
		out[i] = entry.Clone()
	}
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Today returns the current calendar day in the store's timezone.
func (s *Store) Today() string {
	return utils.DateOf(s.now().In(s.location))
}

// Location returns the store's timezone.
func (s *Store) Location() *time.Location {
	return s.location
}
