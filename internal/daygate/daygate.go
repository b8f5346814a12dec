// Package daygate decides whether the daily DONE/SKIPPED action is still
// available and what the unlock countdown should display. All comparisons
// use the local calendar: two instants are the same day when their local
// year and day-of-year match.
package daygate

import (
	"fmt"
	"time"
)

// SameCalendarDay reports whether a and b fall on the same local calendar day.
func SameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// PrimaryActionLocked reports whether DONE/SKIPPED is locked for the day
// containing now. lastAction is epoch milliseconds, 0 meaning no action has
// ever been recorded.
func PrimaryActionLocked(lastAction int64, now time.Time) bool {
	if lastAction == 0 {
		return false
	}
	return SameCalendarDay(time.UnixMilli(lastAction), now)
}

// NextUnlock returns local midnight of the day after now, the instant the
// primary action unlocks again.
func NextUnlock(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}

// Countdown returns the remaining time until the next unlock. Never negative.
func Countdown(now time.Time) time.Duration {
	d := NextUnlock(now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// FormatCountdown renders a duration as HH:MM:SS for the locked-button label.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600%24, secs/60%60, secs%60)
}
