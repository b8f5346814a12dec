package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zzspin/tally/internal/daygate"
	"github.com/zzspin/tally/internal/models"
	"github.com/zzspin/tally/internal/points"
	"github.com/zzspin/tally/internal/reminder"
	"github.com/zzspin/tally/internal/storage"
)

// ErrInvalidInput marks an unparseable or out-of-range custom point value.
var ErrInvalidInput = errors.New("invalid point value")

type Context struct {
	Store storage.Provider
}

// engine builds the reminder engine over the store-backed alarm scheduler
// and the console notifier.
func (ctx *Context) engine() *reminder.Engine {
	return reminder.NewEngine(
		ctx.Store,
		reminder.SystemClock{},
		reminder.NewStoreScheduler(ctx.Store),
		consoleNotifier{},
	)
}

// parsePoints parses a user-entered point value. Overflow of int64 counts as
// invalid input just like a non-numeric string.
func parsePoints(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	return v, nil
}

// formatPoints renders a point value with thousands separators, e.g. 20,000.
func formatPoints(v int64) string {
	return points.Format(v)
}

// relativeStamp renders an entry timestamp as TODAY, YESTERDAY, or a full
// date, matching the log list display.
func relativeStamp(e models.LogEntry, now time.Time) string {
	t := e.Time()
	switch {
	case daygate.SameCalendarDay(t, now):
		return "TODAY"
	case daygate.SameCalendarDay(t, now.AddDate(0, 0, -1)):
		return "YESTERDAY"
	default:
		return t.Format("Jan 02, 2006 15:04")
	}
}

// consoleNotifier renders notifications on the terminal; it is the CLI
// stand-in for a system notification service.
type consoleNotifier struct{}

func (consoleNotifier) Notify(id int, title, body string) error {
	fmt.Printf("🔔 %s\n   %s\n", title, body)
	return nil
}

func (consoleNotifier) Dismiss(id int) error {
	return nil
}
