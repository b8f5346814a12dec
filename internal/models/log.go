package models

import "time"

// LogEntry is a single point event. Points > 0 is an earned entry, < 0 a
// used entry, and exactly 0 marks a day explicitly skipped.
type LogEntry struct {
	ID          string `json:"id"`
	Points      int64  `json:"points"`
	Timestamp   int64  `json:"timestamp"` // epoch milliseconds, local wall clock
	IsPaid      bool   `json:"isPaid"`
	IsCustomAdd bool   `json:"isCustomAdd"`
}

// Category is the display label for a log entry.
type Category string

const (
	CategoryPaid    Category = "PAID"
	CategoryAdd     Category = "ADD"
	CategoryDone    Category = "DONE"
	CategoryUsed    Category = "USED"
	CategorySkipped Category = "SKIPPED"
)

// Category maps the entry to its display label. For positive entries the
// precedence is IsPaid over IsCustomAdd over the plain DONE default.
func (e LogEntry) Category() Category {
	switch {
	case e.Points > 0 && e.IsPaid:
		return CategoryPaid
	case e.Points > 0 && e.IsCustomAdd:
		return CategoryAdd
	case e.Points > 0:
		return CategoryDone
	case e.Points < 0:
		return CategoryUsed
	default:
		return CategorySkipped
	}
}

// Time returns the entry timestamp as a local time.Time.
func (e LogEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// AppState holds the persisted lifecycle flags the daily gate and reminder
// engine read. They live outside the entry log because reminder handlers may
// run without the log loaded.
type AppState struct {
	LastAction            int64 `json:"lastActionDate"` // epoch ms, 0 = never
	LastAppOpen           int64 `json:"lastAppOpen"`    // epoch ms, 0 = never
	ExitNotificationShown bool  `json:"exitNotificationShown"`
}
