package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/lifetrack/internal/lock"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/migration"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/migrations"
)

const kvTable = "kv"

type Store struct {
	path string
	db   *sql.DB
	lock *lock.Lock
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	exists, err := runner.TableExists(kvTable)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w at %s", storage.ErrAlreadyInitialized, s.path)
	}

	if _, err := runner.ApplyMigrations(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}

	if err := s.open(); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	if err := runner.Verify(kvTable); err != nil {
		if errors.Is(err, migration.ErrMissingTable) {
			return storage.ErrNotInitialized
		}
		return err
	}
	// stores created by an older build pick up newer tables here
	if _, err := runner.ApplyMigrations(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("failed to upgrade store: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var err error
	if s.db != nil {
		err = s.db.Close()
		s.db = nil
	}
	s.releaseLock()
	return err
}

// open takes the store lock and opens the database unless already open.
func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	if err := s.acquireLock(); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		s.releaseLock()
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) acquireLock() error {
	if s.lock != nil {
		return nil
	}
	l, err := lock.Acquire(s.path)
	if err != nil {
		return err
	}
	s.lock = l
	return nil
}

func (s *Store) releaseLock() {
	if err := s.lock.Release(); err != nil {
		logger.Warn("Failed to release store lock", "path", s.path, "error", err)
	}
	s.lock = nil
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, storage.ErrNotLoaded
	}

	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

// Put replaces the value under key and appends a kv_history row in the same
// transaction.
func (s *Store) Put(key string, value []byte) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	if _, err := tx.Exec("INSERT INTO kv_history (key, size, written_at) VALUES (?, ?, ?)", key, len(value), now); err != nil {
		return fmt.Errorf("failed to record write history: %w", err)
	}

	return tx.Commit()
}

// History returns the most recent writes to key, newest first.
func (s *Store) History(key string, limit int) ([]storage.WriteRecord, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	rows, err := s.db.Query(`
		SELECT key, size, written_at FROM kv_history
		WHERE key = ?
		ORDER BY id DESC
		LIMIT ?`, key, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []storage.WriteRecord
	for rows.Next() {
		var rec storage.WriteRecord
		var writtenAt string
		if err := rows.Scan(&rec.Key, &rec.Size, &writtenAt); err != nil {
			return nil, err
		}
		rec.WrittenAt, err = time.Parse(time.RFC3339Nano, writtenAt)
		if err != nil {
			return nil, fmt.Errorf("parsing written_at: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.SQLite), nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
