package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zzspin/tally/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	// The TUI counts as opening the app: stamp the open and re-arm the
	// exit reminder the same way the lifecycle hooks do.
	engine := ctx.engine()
	if err := engine.OnForeground(); err != nil {
		return err
	}

	m := tui.NewModel(ctx.Store, engine)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	// Leaving the TUI is the app backgrounding.
	return engine.OnBackground()
}
