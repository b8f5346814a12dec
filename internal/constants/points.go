package constants

import "time"

const (
	// DonePoints is the fixed value logged by the DONE action. SKIPPED logs
	// an explicit zero-point entry so the day still counts as handled.
	DonePoints    = 20000
	SkippedPoints = 0

	// HoldDuration is how long the DONE/SKIPPED confirm gesture must be
	// held before the action commits. Releasing earlier cancels it.
	HoldDuration = 2000 * time.Millisecond

	// ChartDays is the trend window shown by the chart view.
	ChartDays = 7
)

const (
	// EveningReminderHour is the local hour of the daily "you haven't logged
	// today" reminder.
	EveningReminderHour = 20
	// MorningReminderHour is the local hour of the daily "open the app"
	// reminder.
	MorningReminderHour = 9
	// ExitReminderDelay is how long after backgrounding the one-shot exit
	// reminder fires.
	ExitReminderDelay = 3 * time.Second
)
