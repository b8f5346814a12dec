package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/zzspin/tally/internal/cli"
	"github.com/zzspin/tally/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/tally/tally.db"`

	Init   cli.InitCmd   `cmd:"" help:"Initialize tally storage."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Done   cli.DoneCmd   `cmd:"" help:"Log today's assignment as done (+20,000 points)."`
	Skip   cli.SkipCmd   `cmd:"" help:"Log today's assignment as skipped (0 points)."`
	Add    cli.AddCmd    `cmd:"" help:"Add custom points."`
	Use    cli.UseCmd    `cmd:"" help:"Spend points."`
	Paid   cli.PaidCmd   `cmd:"" help:"List or mark completed assignments as paid."`
	Log    cli.LogCmd    `cmd:"" help:"Show the point log."`
	Stats  cli.StatsCmd  `cmd:"" help:"Show point balances and today's status."`
	Chart  cli.ChartCmd  `cmd:"" help:"Show the 7-day point trend."`
	Export cli.ExportCmd `cmd:"" help:"Export the log to a JSON or CSV file."`
	Import cli.ImportCmd `cmd:"" help:"Replace the log with a previously exported file."`
	Remind struct {
		Run    cli.RemindRunCmd    `cmd:"" help:"Fire any due reminders."`
		Boot   cli.RemindBootCmd   `cmd:"" help:"Reschedule the daily reminders."`
		Status cli.RemindStatusCmd `cmd:"" help:"Show pending reminders."`
		Fg     cli.RemindFgCmd     `cmd:"" help:"Record an app-foreground transition."`
		Bg     cli.RemindBgCmd     `cmd:"" help:"Record an app-background transition."`
	} `cmd:"" help:"Manage local reminders."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the store."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tally"),
		kong.Description("Assignment habit tracker with a daily point economy"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if len(CLI.Config) > 5 && CLI.Config[len(CLI.Config)-5:] == ".json" {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{Store: store}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
