package storage

import "github.com/zzspin/tally/internal/models"

// Provider is the persistence boundary for the entry log, the lifecycle
// flags, and the reminder alarm table. Every mutation persists durably
// before returning; there is no deferred flush to lose on a crash.
//
// Provider is not safe for concurrent use. The app has a single logical
// owner of the store at any instant (the foreground CLI/TUI or a reminder
// handler), so no locking is layered on top.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Entry log
	AppendEntry(points int64, isPaid, isCustomAdd bool) (models.LogEntry, error)
	GetEntries() ([]models.LogEntry, error)
	MarkPaid(ids []string) (int, error)
	ReplaceAll(entries []models.LogEntry, lastAction *int64) error

	// Lifecycle flags
	GetAppState() (models.AppState, error)
	SetLastAction(ms int64) error
	SetLastAppOpen(ms int64) error
	SetExitNotificationShown(shown bool) error

	// Reminder alarms: "invoke me at instant T" bookkeeping
	GetAlarm(id string) (int64, bool, error)
	SetAlarm(id string, triggerAt int64) error
	ClearAlarm(id string) error

	// Utils
	GetConfigPath() string
}

// markPaidEligible reports whether an entry may be flipped to paid: only
// unpaid, non-custom, positive-value entries qualify.
func markPaidEligible(e models.LogEntry) bool {
	return e.Points > 0 && !e.IsPaid && !e.IsCustomAdd
}
