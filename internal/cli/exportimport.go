package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zzspin/tally/internal/codec"
)

// ExportCmd writes the log and last-action flag to a JSON or CSV file,
// chosen by extension.
type ExportCmd struct {
	File string `arg:"" help:"Destination file (.json or .csv)." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	format := codec.FormatFromPath(c.File)
	if format == codec.FormatUnknown {
		return fmt.Errorf("unsupported export format for %s: use a .json or .csv extension", c.File)
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	entries, err := ctx.Store.GetEntries()
	if err != nil {
		return err
	}
	state, err := ctx.Store.GetAppState()
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case codec.FormatJSON:
		data, err = codec.ExportJSON(entries, state.LastAction)
		if err != nil {
			return err
		}
	case codec.FormatCSV:
		data = codec.ExportCSV(entries, state.LastAction)
	}

	if err := os.WriteFile(c.File, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("✓ Exported %d log entries to %s\n", len(entries), c.File)
	return nil
}

// ImportCmd replaces the entire log (and usually the last-action flag) with
// the contents of a previously exported file. Destructive: there is no merge.
type ImportCmd struct {
	File string `arg:"" help:"File to import (.json, .csv, or unknown)." type:"path"`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	// Parse fully into a staging result before touching the store, so a
	// malformed file can never leave the log partially replaced.
	result, err := codec.Import(data, codec.FormatFromPath(c.File))
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Println("This will replace all current logs and the daily checked-in status.")
		fmt.Print("Continue? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if result.ReplaceEntries {
		if err := ctx.Store.ReplaceAll(result.Entries, result.LastAction); err != nil {
			return err
		}
		fmt.Printf("✓ Imported %d log entries\n", len(result.Entries))
	} else if result.LastAction != nil {
		if err := ctx.Store.SetLastAction(*result.LastAction); err != nil {
			return err
		}
		fmt.Println("✓ Imported daily status only; no log entries in file")
	}

	if result.LastAction == nil {
		fmt.Println("Note: old backup format; daily checked-in status left unchanged.")
	} else {
		fmt.Printf("Last action set to %s\n", time.UnixMilli(*result.LastAction).Format("Jan 02, 2006 15:04"))
	}
	return nil
}
