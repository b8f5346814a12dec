package cli

import (
	"fmt"
	"time"

	"github.com/zzspin/tally/internal/reminder"
)

// RemindRunCmd fires any reminder whose trigger instant has passed. Meant
// to be invoked periodically (cron, systemd timer) as the stand-in for a
// platform alarm service.
type RemindRunCmd struct{}

func (c *RemindRunCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	fired, err := reminder.RunDue(ctx.engine(), ctx.Store, time.Now())
	if err != nil {
		return err
	}
	if fired == 0 {
		fmt.Println("No reminders due.")
	}
	return nil
}

// RemindBootCmd reschedules both recurring reminders from scratch, the
// recovery path after a restart wiped the alarm table's relevance.
type RemindBootCmd struct{}

func (c *RemindBootCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := ctx.engine().OnBoot(); err != nil {
		return err
	}
	fmt.Println("✓ Daily reminders rescheduled.")
	return nil
}

// RemindStatusCmd lists the pending reminder triggers.
type RemindStatusCmd struct{}

func (c *RemindStatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	pending, err := reminder.Pending(ctx.Store)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("No reminders scheduled. Run 'tally remind boot' to schedule them.")
		return nil
	}
	for _, p := range pending {
		fmt.Printf("%-18s %s\n", p.Channel.AlarmID, p.TriggerAt.Format("Mon Jan 02 15:04:05"))
	}
	return nil
}

// RemindFgCmd records an app-foreground transition: stamps the last app
// open and re-arms the exit reminder.
type RemindFgCmd struct{}

func (c *RemindFgCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()
	return ctx.engine().OnForeground()
}

// RemindBgCmd records an app-background transition: schedules the one-shot
// exit reminder when today's primary action is still missing.
type RemindBgCmd struct{}

func (c *RemindBgCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()
	return ctx.engine().OnBackground()
}
