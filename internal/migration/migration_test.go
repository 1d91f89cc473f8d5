package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestCurrentVersionFreshDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE test (id INTEGER);",
	}))

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 for fresh database, got %d", version)
	}
}

func TestApplyMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql":    "CREATE TABLE habits (id TEXT PRIMARY KEY);",
		"002_add_col.sql": "ALTER TABLE habits ADD COLUMN name TEXT;",
	}))

	count, err := runner.Apply(func(string) {})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2 after apply, got %d", version)
	}

	if _, err := db.Exec("INSERT INTO habits (id, name) VALUES ('h1', 'Read')"); err != nil {
		t.Errorf("migrated schema not usable: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	fsys := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE habits (id TEXT PRIMARY KEY);",
	})

	runner := NewRunner(db, fsys)
	if _, err := runner.Apply(func(string) {}); err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}

	count, err := runner.Apply(func(string) {})
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no migrations on second apply, got %d", count)
	}
}

func TestApplyOrdersByVersion(t *testing.T) {
	db := setupTestDB(t)
	// 002 depends on 001; lexical map order must not matter.
	runner := NewRunner(db, migrationFS(map[string]string{
		"002_data.sql": "INSERT INTO habits (id) VALUES ('h1');",
		"001_init.sql": "CREATE TABLE habits (id TEXT PRIMARY KEY);",
	}))

	if _, err := runner.Apply(func(string) {}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row from ordered migrations, got %d", count)
	}
}

func TestValidateVersion(t *testing.T) {
	db := setupTestDB(t)
	fsys := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE habits (id TEXT PRIMARY KEY);",
		"002_more.sql": "ALTER TABLE habits ADD COLUMN name TEXT;",
	})

	runner := NewRunner(db, fsys)
	if _, err := runner.Apply(func(string) {}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion on up-to-date database: %v", err)
	}

	// A build that ships fewer migrations than the database has seen must
	// refuse to run.
	older := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE habits (id TEXT PRIMARY KEY);",
	})
	if err := NewRunner(db, older).ValidateVersion(); err == nil {
		t.Error("expected ValidateVersion to fail when database is newer than the build")
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE habits (id TEXT PRIMARY KEY);",
		"002_bad.sql":  "THIS IS NOT SQL;",
	}))

	if _, err := runner.Apply(func(string) {}); err == nil {
		t.Fatal("expected Apply to fail on invalid SQL")
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1 after failed migration, got %d", version)
	}
}
