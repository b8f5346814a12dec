package storage

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestJSONStoreInitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Errorf("second Init should fail on an existing store")
	}
}

func TestJSONStoreLoadWithoutInitFails(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "tally.json"))
	err := store.Load()
	if err == nil {
		t.Fatalf("Load on a missing file should fail")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("error = %v, want a not-initialized hint", err)
	}
}

func TestJSONStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	entry, err := store.AppendEntry(20000, false, false)
	if err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}
	if err := store.SetLastAction(entry.Timestamp); err != nil {
		t.Fatalf("SetLastAction failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load on reopen failed: %v", err)
	}
	entries, err := reopened.GetEntries()
	if err != nil {
		t.Fatalf("GetEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Errorf("entries after reopen = %+v, want the appended entry", entries)
	}
	state, err := reopened.GetAppState()
	if err != nil {
		t.Fatalf("GetAppState failed: %v", err)
	}
	if state.LastAction != entry.Timestamp {
		t.Errorf("LastAction = %d, want %d", state.LastAction, entry.Timestamp)
	}
}
