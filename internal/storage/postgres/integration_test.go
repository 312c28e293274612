package postgres

import (
	"errors"
	"os"
	"testing"

	"github.com/julianstephens/lifetrack/internal/storage"
)

// TestStore_Integration tests the PostgreSQL store with a real database
// Set POSTGRES_TEST_URL environment variable to run this test
// Example: POSTGRES_TEST_URL="postgres://lifetrack_user@localhost:5432/lifetrack_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil && !errors.Is(err, storage.ErrAlreadyInitialized) {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	key := "integration-test"

	t.Run("PutGet", func(t *testing.T) {
		if err := store.Put(key, []byte(`[{"id":"pg-1"}]`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		value, found, err := store.Get(key)
		if err != nil || !found {
			t.Fatalf("Get failed: found=%v err=%v", found, err)
		}
		if string(value) != `[{"id":"pg-1"}]` {
			t.Errorf("unexpected value %q", value)
		}
	})

	t.Run("History", func(t *testing.T) {
		records, err := store.History(key, 1)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(records) != 1 || records[0].Key != key {
			t.Errorf("unexpected history: %+v", records)
		}
	})
}
