package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"cadence/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE habits (id TEXT PRIMARY KEY, name TEXT)`)
	if err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO habits (id, name) VALUES ('h1', 'Stretch'), ('h2', 'Read')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Fatalf("backup file was not created: %s", backupPath)
	}

	db, err := sql.Open("sqlite", backupPath)
	if err != nil {
		t.Fatalf("failed to open backup database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatalf("failed to query backup database: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows in backup, got %d", count)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for missing source database")
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at index %d", i)
		}
	}
}

func TestListBackupsEmpty(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "test.db"))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Change the live database after the backup was taken.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec(`DELETE FROM habits`); err != nil {
		t.Fatalf("failed to modify database: %v", err)
	}
	db.Close()

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatalf("failed to query restored database: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows after restore, got %d", count)
	}
}

func TestRestoreBackupRejectsGarbage(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	garbage := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(garbage, []byte("not a database"), 0o600); err != nil {
		t.Fatalf("failed to write garbage file: %v", err)
	}
	if err := mgr.RestoreBackup(garbage); err == nil {
		t.Error("expected error restoring from invalid file")
	}
}

func TestParseBackupStamp(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{constants.BackupFilePrefix + "20260830-0915" + constants.BackupFileSuffix, true},
		{constants.BackupFilePrefix + "20260830-091542" + constants.BackupFileSuffix, true},
		{constants.BackupFilePrefix + "20260830-091542-3" + constants.BackupFileSuffix, true},
		{constants.BackupFilePrefix + "notatime" + constants.BackupFileSuffix, false},
	}
	for _, tt := range tests {
		if _, ok := parseBackupStamp(tt.name); ok != tt.ok {
			t.Errorf("parseBackupStamp(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}
