package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/zzspin/tally/internal/constants"
	"github.com/zzspin/tally/internal/daygate"
	"github.com/zzspin/tally/internal/gesture"
)

// DoneCmd logs the fixed-value DONE entry for today.
type DoneCmd struct {
	Yes bool `help:"Skip the hold-to-confirm delay." short:"y"`
}

func (c *DoneCmd) Run(ctx *Context) error {
	return runPrimaryAction(ctx, constants.DonePoints, "DONE logged!", c.Yes)
}

// SkipCmd logs an explicit zero-point SKIPPED entry for today.
type SkipCmd struct {
	Yes bool `help:"Skip the hold-to-confirm delay." short:"y"`
}

func (c *SkipCmd) Run(ctx *Context) error {
	return runPrimaryAction(ctx, constants.SkippedPoints, "SKIPPED logged!", c.Yes)
}

// runPrimaryAction performs the shared DONE/SKIPPED flow: refuse when the
// day is already locked, hold-to-confirm, append, lock the day, and cancel
// any pending exit reminder.
func runPrimaryAction(ctx *Context, points int64, message string, skipHold bool) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	state, err := ctx.Store.GetAppState()
	if err != nil {
		return err
	}

	now := time.Now()
	if daygate.PrimaryActionLocked(state.LastAction, now) {
		remaining := daygate.FormatCountdown(daygate.Countdown(now))
		return fmt.Errorf("already logged today; unlocks in %s", remaining)
	}

	if !skipHold {
		if !holdToConfirm() {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	entry, err := ctx.Store.AppendEntry(points, false, false)
	if err != nil {
		return err
	}
	// The daily lock is triggered only by DONE and SKIPPED.
	if err := ctx.Store.SetLastAction(entry.Timestamp); err != nil {
		return err
	}
	if err := ctx.engine().OnPrimaryAction(); err != nil {
		return err
	}

	fmt.Printf("✓ %s\n", message)
	return nil
}

// holdToConfirm runs the 2-second confirm window on the terminal, drawing a
// progress bar as it fills. Interrupting the process before the window
// elapses leaves the log untouched. Returns true once committed.
func holdToConfirm() bool {
	hold := gesture.New(constants.HoldDuration)
	hold.Press(time.Now())

	fmt.Print("Hold to confirm (Ctrl+C to cancel)\n")
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for now := range ticker.C {
		drawProgress(hold.Progress(now))
		if hold.Tick(now) {
			fmt.Println()
			return true
		}
	}
	return false
}

func drawProgress(p float64) {
	const width = 20
	filled := int(p * width)
	if filled > width {
		filled = width
	}
	fmt.Printf("\r[%s%s]", strings.Repeat("█", filled), strings.Repeat("░", width-filled))
}
