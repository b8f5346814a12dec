package storage

import (
	"path/filepath"
	"testing"

	"github.com/zzspin/tally/internal/models"
)

// eachProvider runs the conformance test against both store implementations.
func eachProvider(t *testing.T, fn func(t *testing.T, store Provider)) {
	t.Helper()

	t.Run("json", func(t *testing.T) {
		store := NewJSONStore(filepath.Join(t.TempDir(), "tally.json"))
		if err := store.Init(); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if err := store.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		defer store.Close()
		fn(t, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		store := NewSQLiteStore(filepath.Join(t.TempDir(), "tally.db"))
		if err := store.Init(); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if err := store.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		defer store.Close()
		fn(t, store)
	})
}

func TestAppendAndGetEntries(t *testing.T) {
	eachProvider(t, func(t *testing.T, store Provider) {
		first, err := store.AppendEntry(20000, false, false)
		if err != nil {
			t.Fatalf("AppendEntry failed: %v", err)
		}
		second, err := store.AppendEntry(-5000, false, false)
		if err != nil {
			t.Fatalf("AppendEntry failed: %v", err)
		}

		if first.ID == second.ID {
			t.Errorf("entries share id %q", first.ID)
		}
		if first.Timestamp == 0 {
			t.Errorf("entry timestamp not stamped")
		}

		entries, err := store.GetEntries()
		if err != nil {
			t.Fatalf("GetEntries failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		// Newest first.
		if entries[0].ID != second.ID || entries[1].ID != first.ID {
			t.Errorf("entries not in newest-first order: %+v", entries)
		}
	})
}

func TestMarkPaidEligibility(t *testing.T) {
	eachProvider(t, func(t *testing.T, store Provider) {
		done, _ := store.AppendEntry(20000, false, false)
		alreadyPaid, _ := store.AppendEntry(20000, true, false)
		customAdd, _ := store.AppendEntry(20000, false, true)
		used, _ := store.AppendEntry(-5000, false, false)

		marked, err := store.MarkPaid([]string{done.ID, alreadyPaid.ID, customAdd.ID, used.ID})
		if err != nil {
			t.Fatalf("MarkPaid failed: %v", err)
		}
		if marked != 1 {
			t.Errorf("marked = %d, want 1 (only the unpaid done entry qualifies)", marked)
		}

		entries, err := store.GetEntries()
		if err != nil {
			t.Fatalf("GetEntries failed: %v", err)
		}
		for _, e := range entries {
			switch e.ID {
			case done.ID, alreadyPaid.ID:
				if !e.IsPaid {
					t.Errorf("entry %s should be paid", e.ID)
				}
			case customAdd.ID, used.ID:
				if e.IsPaid {
					t.Errorf("entry %s must not be marked paid", e.ID)
				}
			}
		}
	})
}

func TestMarkPaidTargetsOneOfTwoIdenticalEntries(t *testing.T) {
	eachProvider(t, func(t *testing.T, store Provider) {
		a, _ := store.AppendEntry(20000, false, false)
		b, _ := store.AppendEntry(20000, false, false)

		marked, err := store.MarkPaid([]string{a.ID})
		if err != nil {
			t.Fatalf("MarkPaid failed: %v", err)
		}
		if marked != 1 {
			t.Fatalf("marked = %d, want 1", marked)
		}

		entries, err := store.GetEntries()
		if err != nil {
			t.Fatalf("GetEntries failed: %v", err)
		}
		for _, e := range entries {
			if e.ID == a.ID && !e.IsPaid {
				t.Errorf("targeted entry %s not marked", a.ID)
			}
			if e.ID == b.ID && e.IsPaid {
				t.Errorf("field-identical sibling %s was marked too", b.ID)
			}
		}
	})
}

func TestReplaceAll(t *testing.T) {
	eachProvider(t, func(t *testing.T, store Provider) {
		if _, err := store.AppendEntry(123, false, true); err != nil {
			t.Fatalf("AppendEntry failed: %v", err)
		}

		replacement := []models.LogEntry{
			{ID: "new-1", Points: 20000, Timestamp: 1700000002000, IsPaid: true},
			{ID: "new-2", Points: -5000, Timestamp: 1700000001000},
		}
		lastAction := int64(1700000002000)
		if err := store.ReplaceAll(replacement, &lastAction); err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}

		entries, err := store.GetEntries()
		if err != nil {
			t.Fatalf("GetEntries failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		if entries[0].ID != "new-1" || entries[1].ID != "new-2" {
			t.Errorf("replacement order not preserved: %+v", entries)
		}

		state, err := store.GetAppState()
		if err != nil {
			t.Fatalf("GetAppState failed: %v", err)
		}
		if state.LastAction != lastAction {
			t.Errorf("LastAction = %d, want %d", state.LastAction, lastAction)
		}
	})
}

func TestReplaceAllKeepsFlagWhenNil(t *testing.T) {
	eachProvider(t, func(t *testing.T, store Provider) {
		if err := store.SetLastAction(1700000000000); err != nil {
			t.Fatalf("SetLastAction failed: %v", err)
		}

		if err := store.ReplaceAll([]models.LogEntry{
			{ID: "x", Points: 1, Timestamp: 1},
		}, nil); err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}

		state, err := store.GetAppState()
		if err != nil {
			t.Fatalf("GetAppState failed: %v", err)
		}
		if state.LastAction != 1700000000000 {
			t.Errorf("LastAction = %d, want it untouched by a nil flag", state.LastAction)
		}
	})
}

func TestAppStateRoundTrip(t *testing.T) {
	eachProvider(t, func(t *testing.T, store Provider) {
		state, err := store.GetAppState()
		if err != nil {
			t.Fatalf("GetAppState failed: %v", err)
		}
		if state.LastAction != 0 || state.LastAppOpen != 0 || state.ExitNotificationShown {
			t.Errorf("fresh state = %+v, want zeroes", state)
		}

		if err := store.SetLastAction(111); err != nil {
			t.Fatalf("SetLastAction failed: %v", err)
		}
		if err := store.SetLastAppOpen(222); err != nil {
			t.Fatalf("SetLastAppOpen failed: %v", err)
		}
		if err := store.SetExitNotificationShown(true); err != nil {
			t.Fatalf("SetExitNotificationShown failed: %v", err)
		}

		state, err = store.GetAppState()
		if err != nil {
			t.Fatalf("GetAppState failed: %v", err)
		}
		if state.LastAction != 111 || state.LastAppOpen != 222 || !state.ExitNotificationShown {
			t.Errorf("state = %+v, want {111 222 true}", state)
		}
	})
}

func TestAlarmTable(t *testing.T) {
	eachProvider(t, func(t *testing.T, store Provider) {
		if _, ok, err := store.GetAlarm("evening-reminder"); err != nil || ok {
			t.Fatalf("GetAlarm on empty table = ok=%t err=%v, want absent", ok, err)
		}

		if err := store.SetAlarm("evening-reminder", 1700000000000); err != nil {
			t.Fatalf("SetAlarm failed: %v", err)
		}
		at, ok, err := store.GetAlarm("evening-reminder")
		if err != nil || !ok || at != 1700000000000 {
			t.Fatalf("GetAlarm = (%d, %t, %v), want the booked trigger", at, ok, err)
		}

		// Rebooking overwrites.
		if err := store.SetAlarm("evening-reminder", 1700000099000); err != nil {
			t.Fatalf("SetAlarm failed: %v", err)
		}
		at, _, _ = store.GetAlarm("evening-reminder")
		if at != 1700000099000 {
			t.Errorf("rebooked trigger = %d, want 1700000099000", at)
		}

		if err := store.ClearAlarm("evening-reminder"); err != nil {
			t.Fatalf("ClearAlarm failed: %v", err)
		}
		if _, ok, _ := store.GetAlarm("evening-reminder"); ok {
			t.Errorf("alarm still present after clear")
		}

		// Clearing an absent alarm is a no-op.
		if err := store.ClearAlarm("never-booked"); err != nil {
			t.Errorf("ClearAlarm on absent id failed: %v", err)
		}
	})
}
