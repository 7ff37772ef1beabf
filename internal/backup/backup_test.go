package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitual/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitual.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE habits (id TEXT PRIMARY KEY, title TEXT)`)
	if err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	for _, row := range [][2]string{{"h1", "Read"}, {"h2", "Run"}} {
		if _, err := db.Exec("INSERT INTO habits (id, title) VALUES (?, ?)", row[0], row[1]); err != nil {
			t.Fatalf("failed to insert test data: %v", err)
		}
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
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup succeeded for a missing database, want error")
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	// Collisions within the same second get a counter suffix, so creating
	// these back to back is fine.
	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) > constants.MaxBackups {
		t.Errorf("expected at most %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at index %d", i)
		}
	}
}

func TestListBackupsEmpty(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "habitual.db"))
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

	// Change the live database after the snapshot.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM habits"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows after restore, got %d", count)
	}
}

func TestRestoreBackupInvalidFile(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("RestoreBackup accepted a corrupt file, want error")
	}
}
