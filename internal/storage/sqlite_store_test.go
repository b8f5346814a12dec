package storage

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSQLiteStoreLoadWithoutInitFails(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "tally.db"))
	err := store.Load()
	if err == nil {
		t.Fatalf("Load on a missing file should fail")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("error = %v, want a not-initialized hint", err)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.db")

	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	entry, err := store.AppendEntry(20000, false, false)
	if err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}
	if err := store.SetAlarm("evening-reminder", 1700000000000); err != nil {
		t.Fatalf("SetAlarm failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load on reopen failed: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.GetEntries()
	if err != nil {
		t.Fatalf("GetEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Errorf("entries after reopen = %+v, want the appended entry", entries)
	}
	at, ok, err := reopened.GetAlarm("evening-reminder")
	if err != nil || !ok || at != 1700000000000 {
		t.Errorf("GetAlarm = (%d, %t, %v), want the booked trigger", at, ok, err)
	}
}
