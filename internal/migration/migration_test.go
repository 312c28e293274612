package migration

import (
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/lifetrack/migrations"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	return db, func() { db.Close() }
}

func TestCurrentVersion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, fstest.MapFS{
		"001_test.sql": {Data: []byte("CREATE TABLE test (id INTEGER);")},
	}, SQLite)

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	version, err = runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestMigrations(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, fstest.MapFS{
		"002_second.sql": {Data: []byte("SELECT 2;")},
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("ignored")},
	}, SQLite)

	migrations, err := runner.Migrations()
	if err != nil {
		t.Fatalf("Migrations failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "first" {
		t.Errorf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "second" {
		t.Errorf("unexpected second migration: %+v", migrations[1])
	}
}

func TestMigrations_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
		want  string
	}{
		{
			name:  "missing underscore",
			files: fstest.MapFS{"001.sql": {Data: []byte("SELECT 1;")}},
			want:  "invalid migration filename",
		},
		{
			name:  "non-numeric version",
			files: fstest.MapFS{"abc_init.sql": {Data: []byte("SELECT 1;")}},
			want:  "invalid version number",
		},
		{
			name:  "zero version",
			files: fstest.MapFS{"000_init.sql": {Data: []byte("SELECT 1;")}},
			want:  "version must be at least 1",
		},
		{
			name: "duplicate version",
			files: fstest.MapFS{
				"001_a.sql": {Data: []byte("SELECT 1;")},
				"01_b.sql":  {Data: []byte("SELECT 1;")},
			},
			want: "duplicate migration version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := setupTestDB(t)
			defer cleanup()

			_, err := NewRunner(db, tt.files, SQLite).Migrations()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Migrations() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, fstest.MapFS{
		"001_create.sql": {Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT);")},
		"002_seed.sql":   {Data: []byte("INSERT INTO items (name) VALUES ('a');")},
	}, SQLite)

	var logs []string
	applied, err := runner.ApplyMigrations(func(msg string) { logs = append(logs, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages")
	}

	version, _ := runner.CurrentVersion()
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	// second run is a no-op
	applied, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations on second run, got %d", applied)
	}
}

func TestApplyMigrations_RollsBackFailedMigration(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, fstest.MapFS{
		"001_create.sql": {Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY);")},
		"002_broken.sql": {Data: []byte("THIS IS NOT SQL;")},
	}, SQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", applied)
	}

	version, _ := runner.CurrentVersion()
	if version != 1 {
		t.Errorf("expected version to stay at 1, got %d", version)
	}
}

func TestVerify_NewerDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, fstest.MapFS{
		"001_create.sql": {Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY);")},
	}, SQLite)
	if err := runner.SetVersion(9); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	err := runner.Verify()
	if !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Verify() error = %v, want ErrSchemaTooNew", err)
	}
	if _, err := runner.ApplyMigrations(nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("ApplyMigrations() error = %v, want ErrSchemaTooNew", err)
	}
}

func TestEmbeddedSQLiteMigrationsApply(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("failed to open embedded migrations: %v", err)
	}

	if _, err := NewRunner(db, subFS, SQLite).ApplyMigrations(nil); err != nil {
		t.Fatalf("embedded migrations failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&count); err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	if count != 1 {
		t.Error("expected kv table after embedded migrations")
	}
}

func TestTableExists(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, fstest.MapFS{
		"001_create.sql": {Data: []byte("CREATE TABLE KV (key TEXT PRIMARY KEY);")},
	}, SQLite)

	exists, err := runner.TableExists("kv")
	if err != nil {
		t.Fatalf("TableExists failed: %v", err)
	}
	if exists {
		t.Fatal("kv should not exist before migrating")
	}

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	// lookup ignores case, as SQLite does
	exists, err = runner.TableExists("kv")
	if err != nil {
		t.Fatalf("TableExists failed: %v", err)
	}
	if !exists {
		t.Error("kv should exist after migrating")
	}
}

func TestVerify_MissingTable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, fstest.MapFS{
		"001_create.sql": {Data: []byte("CREATE TABLE kv (key TEXT PRIMARY KEY);")},
	}, SQLite)

	if err := runner.Verify("kv"); !errors.Is(err, ErrMissingTable) {
		t.Errorf("Verify() before migrating = %v, want ErrMissingTable", err)
	}

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if err := runner.Verify("kv"); err != nil {
		t.Errorf("Verify() after migrating = %v", err)
	}
}

func TestStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, fstest.MapFS{
		"001_create.sql":  {Data: []byte("CREATE TABLE kv (key TEXT PRIMARY KEY);")},
		"002_history.sql": {Data: []byte("CREATE TABLE kv_history (id INTEGER PRIMARY KEY);")},
	}, SQLite)

	if err := runner.SetVersion(1); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	st, err := runner.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Current != 1 || st.Latest != 2 {
		t.Errorf("Status = current %d latest %d, want 1 and 2", st.Current, st.Latest)
	}
	if st.UpToDate() || len(st.Pending) != 1 || st.Pending[0].Name != "history" {
		t.Errorf("unexpected pending migrations: %+v", st.Pending)
	}
}
