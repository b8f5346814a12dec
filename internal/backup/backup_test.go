package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zzspin/tally/internal/storage"
)

// setupSQLiteStore creates an initialized SQLite store with one entry.
func setupSQLiteStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tally.db")

	store := storage.NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if _, err := store.AppendEntry(20000, false, false); err != nil {
		t.Fatalf("failed to append entry: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
	return path
}

func setupJSONStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tally.json")

	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	if _, err := store.AppendEntry(20000, false, false); err != nil {
		t.Fatalf("failed to append entry: %v", err)
	}
	return path
}

func TestCreateBackupSQLite(t *testing.T) {
	path := setupSQLiteStore(t)

	mgr := NewManager(path)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Fatalf("backup file was not created: %s", backupPath)
	}
	if filepath.Ext(backupPath) != ".db" {
		t.Errorf("backup extension = %s, want .db", filepath.Ext(backupPath))
	}

	// The snapshot must be a readable store with the entry intact.
	restored := storage.NewSQLiteStore(backupPath)
	if err := restored.Load(); err != nil {
		t.Fatalf("failed to open backup as a store: %v", err)
	}
	defer restored.Close()
	entries, err := restored.GetEntries()
	if err != nil {
		t.Fatalf("failed to read backup entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Points != 20000 {
		t.Errorf("backup entries = %+v, want the original entry", entries)
	}
}

func TestCreateBackupJSON(t *testing.T) {
	path := setupJSONStore(t)

	mgr := NewManager(path)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("backup extension = %s, want .json", filepath.Ext(backupPath))
	}

	restored := storage.NewJSONStore(backupPath)
	if err := restored.Load(); err != nil {
		t.Fatalf("failed to open backup as a store: %v", err)
	}
	entries, err := restored.GetEntries()
	if err != nil {
		t.Fatalf("failed to read backup entries: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d backup entries, want 1", len(entries))
	}
}

func TestCreateBackupMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Errorf("expected error when the store file does not exist")
	}
}

func TestListBackupsSortedNewestFirst(t *testing.T) {
	path := setupSQLiteStore(t)
	mgr := NewManager(path)

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first: %v before %v",
				backups[i-1].Timestamp, backups[i].Timestamp)
		}
	}
}

func TestListBackupsEmptyDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "tally.db"))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("got %d backups, want 0", len(backups))
	}
}

func TestBackupRotation(t *testing.T) {
	path := setupSQLiteStore(t)
	mgr := NewManager(path)

	for i := 0; i < MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		// Brief pause so timestamps stay distinguishable.
		time.Sleep(10 * time.Millisecond)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) > MaxBackups {
		t.Errorf("got %d backups after rotation, want at most %d", len(backups), MaxBackups)
	}
}

func TestRestoreBackupSQLite(t *testing.T) {
	path := setupSQLiteStore(t)
	mgr := NewManager(path)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Mutate the live store after the snapshot.
	store := storage.NewSQLiteStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	if _, err := store.AppendEntry(-5000, false, false); err != nil {
		t.Fatalf("failed to append entry: %v", err)
	}
	store.Close()

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	restored := storage.NewSQLiteStore(path)
	if err := restored.Load(); err != nil {
		t.Fatalf("failed to load restored store: %v", err)
	}
	defer restored.Close()
	entries, err := restored.GetEntries()
	if err != nil {
		t.Fatalf("failed to read restored entries: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries after restore, want the pre-snapshot single entry", len(entries))
	}
}

func TestRestoreRejectsCorruptJSONBackup(t *testing.T) {
	path := setupJSONStore(t)
	mgr := NewManager(path)

	bogus := filepath.Join(t.TempDir(), "tally-20260101-0000.json")
	if err := os.WriteFile(bogus, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write bogus backup: %v", err)
	}

	if err := mgr.RestoreBackup(bogus); err == nil {
		t.Errorf("expected restore of a corrupt backup to fail")
	}
}

func TestRestoreMissingBackupFails(t *testing.T) {
	path := setupSQLiteStore(t)
	mgr := NewManager(path)

	if err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Errorf("expected error for a missing backup file")
	}
}
