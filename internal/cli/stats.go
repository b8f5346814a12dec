package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zzspin/tally/internal/daygate"
	"github.com/zzspin/tally/internal/points"
)

// StatsCmd prints the all-time and current-month balances plus the
// completed-assignment count and today's lock status.
type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
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

	now := time.Now()
	total := points.Compute(entries)
	monthly := points.Monthly(entries, now)

	fmt.Printf("Total Points:   %s\n", formatPoints(total.Net))
	fmt.Printf("  Earned (PAID): %s\n", formatPoints(total.GrossPaid))
	fmt.Printf("  Used:          %s\n", formatPoints(total.Used))
	fmt.Printf("This Month:     %s\n", formatPoints(monthly.Net))
	fmt.Printf("  Earned (PAID): %s\n", formatPoints(monthly.GrossPaid))
	fmt.Printf("  Used:          %s\n", formatPoints(monthly.Used))
	fmt.Printf("Completed:      %d\n", points.CompletedCount(entries))

	if daygate.PrimaryActionLocked(state.LastAction, now) {
		fmt.Printf("Today:          logged; unlocks in %s\n", daygate.FormatCountdown(daygate.Countdown(now)))
	} else {
		fmt.Println("Today:          not logged yet")
	}
	return nil
}

// ChartCmd renders the 7-day net-points trend as a bar chart.
type ChartCmd struct{}

var (
	chartPositiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	chartNegativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	chartLabelStyle    = lipgloss.NewStyle().Faint(true)
)

func (c *ChartCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	entries, err := ctx.Store.GetEntries()
	if err != nil {
		return err
	}

	fmt.Println(RenderChart(points.SevenDayBuckets(entries, time.Now())))
	return nil
}

// RenderChart draws horizontal bars scaled to the largest bucket magnitude.
func RenderChart(buckets []points.DayBucket) string {
	const maxBar = 40

	var peak int64 = 1
	for _, b := range buckets {
		mag := b.Net
		if mag < 0 {
			mag = -mag
		}
		if mag > peak {
			peak = mag
		}
	}

	var out strings.Builder
	for _, b := range buckets {
		mag := b.Net
		style := chartPositiveStyle
		if mag < 0 {
			mag = -mag
			style = chartNegativeStyle
		}
		width := int(mag * maxBar / peak)
		bar := style.Render(strings.Repeat("▇", width))
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			chartLabelStyle.Render(b.Label), bar, formatPoints(b.Net)))
	}
	return strings.TrimRight(out.String(), "\n")
}
