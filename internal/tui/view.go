package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zzspin/tally/internal/daygate"
	"github.com/zzspin/tally/internal/models"
	"github.com/zzspin/tally/internal/points"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateLog:
		content = docStyle.Render(m.viewLog())
	case StateChart:
		content = docStyle.Render(m.viewChart())
	case StateStats:
		content = docStyle.Render(m.viewStats())
	case StateHolding:
		content = m.viewHold()
	case StateCustomForm, StatePaidForm, StateExportForm, StateImportForm:
		content = docStyle.Render(m.form.View())
	}

	sections := []string{m.viewTabs(), content}
	if m.err != nil {
		sections = append(sections, negativeStyle.Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Log", "Chart", "Stats"} {
		current := m.state
		if current >= tabCount {
			current = m.previousState
		}
		if current == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewLog() string {
	var b strings.Builder

	now := time.Now()
	if daygate.PrimaryActionLocked(m.appState.LastAction, now) {
		b.WriteString(lockedStyle.Render(
			fmt.Sprintf("Logged for today · unlocks in %s", daygate.FormatCountdown(daygate.Countdown(now)))))
	} else {
		b.WriteString("Not logged today · hold d (done) or s (skip)")
	}
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(faintStyle.Render("No log entries yet."))
		return b.String()
	}

	limit := len(m.entries)
	if limit > 15 {
		limit = 15
	}
	for _, e := range m.entries[:limit] {
		b.WriteString(m.viewEntry(e, now))
		b.WriteString("\n")
	}
	if len(m.entries) > limit {
		b.WriteString(faintStyle.Render(fmt.Sprintf("… %d more", len(m.entries)-limit)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewEntry(e models.LogEntry, now time.Time) string {
	category := string(e.Category())
	switch e.Category() {
	case models.CategoryPaid:
		category = paidStyle.Render(category)
	case models.CategoryUsed:
		category = negativeStyle.Render(category)
	case models.CategoryDone, models.CategoryAdd:
		category = positiveStyle.Render(category)
	default:
		category = faintStyle.Render(category)
	}

	amount := ""
	switch {
	case e.Points > 0:
		amount = positiveStyle.Render("+" + points.Format(e.Points))
	case e.Points < 0:
		amount = negativeStyle.Render(points.Format(e.Points))
	}

	stamp := e.Time().Format("Jan 02, 2006 15:04")
	switch {
	case daygate.SameCalendarDay(e.Time(), now):
		stamp = "TODAY"
	case daygate.SameCalendarDay(e.Time(), now.AddDate(0, 0, -1)):
		stamp = "YESTERDAY"
	}

	return fmt.Sprintf("%-18s %10s  %s", category, amount, faintStyle.Render(stamp))
}

func (m Model) viewChart() string {
	buckets := points.SevenDayBuckets(m.entries, time.Now())

	const maxBar = 30
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
	out.WriteString("Last 7 days\n\n")
	for _, b := range buckets {
		mag := b.Net
		style := positiveStyle
		if mag < 0 {
			mag = -mag
			style = negativeStyle
		}
		width := int(mag * maxBar / peak)
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			faintStyle.Render(b.Label),
			style.Render(strings.Repeat("▇", width)),
			points.Format(b.Net)))
	}
	return strings.TrimRight(out.String(), "\n")
}

func (m Model) viewStats() string {
	now := time.Now()
	total := points.Compute(m.entries)
	monthly := points.Monthly(m.entries, now)

	var b strings.Builder
	fmt.Fprintf(&b, "Total Points:   %s\n", points.Format(total.Net))
	fmt.Fprintf(&b, "  Earned (PAID): %s\n", points.Format(total.GrossPaid))
	fmt.Fprintf(&b, "  Used:          %s\n", points.Format(total.Used))
	fmt.Fprintf(&b, "This Month:     %s\n", points.Format(monthly.Net))
	fmt.Fprintf(&b, "  Earned (PAID): %s\n", points.Format(monthly.GrossPaid))
	fmt.Fprintf(&b, "  Used:          %s\n", points.Format(monthly.Used))
	fmt.Fprintf(&b, "Completed:      %d", points.CompletedCount(m.entries))
	return b.String()
}

func (m Model) viewHold() string {
	const width = 24
	filled := int(m.hold.Progress(time.Now()) * width)
	if filled > width {
		filled = width
	}
	bar := holdBarStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)

	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			fmt.Sprintf("Hold to log %s", m.holdLabel),
			"",
			"["+bar+"]",
			"",
			faintStyle.Render("esc to cancel"),
		),
	)
}
