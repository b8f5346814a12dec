package cli

import (
	"fmt"
	"strconv"

	"github.com/zzspin/tally/internal/constants"
	"github.com/zzspin/tally/internal/models"
)

// PaidCmd marks completed DONE entries as settled. With no arguments it
// lists the unpaid entries; arguments select entries by list index (1-based)
// or by entry id, so marking always targets a specific entry even when two
// are field-identical.
type PaidCmd struct {
	Entries []string `arg:"" optional:"" help:"Indexes or ids of entries to mark as paid."`
}

func (c *PaidCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	entries, err := ctx.Store.GetEntries()
	if err != nil {
		return err
	}

	unpaid := unpaidDone(entries)
	if len(unpaid) == 0 {
		fmt.Println("No unpaid assignments found.")
		return nil
	}

	if len(c.Entries) == 0 {
		fmt.Printf("Unpaid assignments (%d):\n", len(unpaid))
		for i, e := range unpaid {
			fmt.Printf("  %d. %s  +%s  (%s)\n", i+1, e.Time().Format("Jan 02, 2006"), formatPoints(e.Points), e.ID[:8])
		}
		fmt.Println("\nRun 'tally paid <n>' to mark entries as paid.")
		return nil
	}

	ids := make([]string, 0, len(c.Entries))
	for _, sel := range c.Entries {
		id, err := resolveSelection(sel, unpaid)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	marked, err := ctx.Store.MarkPaid(ids)
	if err != nil {
		return err
	}
	fmt.Printf("✓ %d assignment(s) marked as PAID\n", marked)
	return nil
}

// unpaidDone filters to entries eligible for paid-marking: unpaid,
// non-custom entries carrying the fixed DONE value.
func unpaidDone(entries []models.LogEntry) []models.LogEntry {
	var unpaid []models.LogEntry
	for _, e := range entries {
		if e.Points == constants.DonePoints && !e.IsPaid && !e.IsCustomAdd {
			unpaid = append(unpaid, e)
		}
	}
	return unpaid
}

// resolveSelection turns a 1-based index or an id (full or prefix) into the
// entry id to mark.
func resolveSelection(sel string, unpaid []models.LogEntry) (string, error) {
	if n, err := strconv.Atoi(sel); err == nil {
		if n < 1 || n > len(unpaid) {
			return "", fmt.Errorf("no unpaid assignment at index %d", n)
		}
		return unpaid[n-1].ID, nil
	}

	for _, e := range unpaid {
		if e.ID == sel || (len(sel) >= 8 && len(e.ID) >= len(sel) && e.ID[:len(sel)] == sel) {
			return e.ID, nil
		}
	}
	return "", fmt.Errorf("no unpaid assignment matches %q", sel)
}
