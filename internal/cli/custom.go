package cli

import "fmt"

// AddCmd records a manually entered positive point adjustment. Custom
// adjustments never lock the day and are never eligible for paid-marking.
type AddCmd struct {
	Points string `arg:"" help:"Point value to add."`
}

func (c *AddCmd) Run(ctx *Context) error {
	points, err := parsePoints(c.Points)
	if err != nil {
		return err
	}
	if points <= 0 {
		return fmt.Errorf("%w: value to add must be positive", ErrInvalidInput)
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if _, err := ctx.Store.AppendEntry(points, false, true); err != nil {
		return err
	}
	fmt.Printf("✓ Points added: +%s\n", formatPoints(points))
	return nil
}

// UseCmd records spending points: a negative entry.
type UseCmd struct {
	Points string `arg:"" help:"Point value to use."`
}

func (c *UseCmd) Run(ctx *Context) error {
	points, err := parsePoints(c.Points)
	if err != nil {
		return err
	}
	if points <= 0 {
		return fmt.Errorf("%w: value to use must be positive", ErrInvalidInput)
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if _, err := ctx.Store.AppendEntry(-points, false, false); err != nil {
		return err
	}
	fmt.Printf("✓ Points used: -%s\n", formatPoints(points))
	return nil
}
