package cli

import (
	"fmt"
	"time"

	"github.com/zzspin/tally/internal/models"
)

// LogCmd lists the entry log, newest first, with category labels.
type LogCmd struct {
	Limit int `help:"Show at most this many entries (0 = all)." default:"0"`
}

func (c *LogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	entries, err := ctx.Store.GetEntries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No log entries yet.")
		return nil
	}

	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	now := time.Now()
	for _, e := range entries {
		fmt.Printf("%-8s %12s   %s\n", e.Category(), entryAmount(e), relativeStamp(e, now))
	}
	return nil
}

func entryAmount(e models.LogEntry) string {
	switch {
	case e.Points > 0:
		return "+" + formatPoints(e.Points)
	case e.Points < 0:
		return "-" + formatPoints(-e.Points)
	default:
		return ""
	}
}
