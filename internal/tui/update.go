package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/zzspin/tally/internal/codec"
	"github.com/zzspin/tally/internal/constants"
	"github.com/zzspin/tally/internal/daygate"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clockTickMsg:
		// Keeps the unlock countdown moving while the log tab is visible.
		return m, clockTick()

	case holdTickMsg:
		if m.state != StateHolding || m.hold == nil {
			return m, nil
		}
		if m.hold.Tick(time.Time(msg)) {
			m.commitPrimary()
			m.hold = nil
			m.state = m.previousState
			return m, nil
		}
		return m, holdTick()

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.inForm() {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Forms own the keyboard while visible, except for esc.
	if m.inForm() {
		if key.Matches(msg, m.keys.Cancel) {
			m.form = nil
			m.state = m.previousState
			m.status = "Cancelled"
			return m, nil
		}
		return m.updateForm(msg)
	}

	if m.state == StateHolding {
		if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Quit) {
			m.cancelHold()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
	case key.Matches(msg, m.keys.Done):
		return m.tryHold(constants.DonePoints, "DONE")
	case key.Matches(msg, m.keys.Skip):
		return m.tryHold(0, "SKIPPED")
	case key.Matches(msg, m.keys.Add):
		return m.openCustomForm(false)
	case key.Matches(msg, m.keys.Use):
		return m.openCustomForm(true)
	case key.Matches(msg, m.keys.Paid):
		return m.openPaidForm()
	case key.Matches(msg, m.keys.Export):
		return m.openFileForm(StateExportForm)
	case key.Matches(msg, m.keys.Import):
		return m.openFileForm(StateImportForm)
	}
	return m, nil
}

// tryHold starts the hold window unless the day is already locked.
func (m Model) tryHold(points int64, label string) (tea.Model, tea.Cmd) {
	if daygate.PrimaryActionLocked(m.appState.LastAction, time.Now()) {
		m.status = "Already logged today"
		return m, nil
	}
	cmd := m.startHold(points, label)
	return m, cmd
}

func (m Model) openCustomForm(use bool) (tea.Model, tea.Cmd) {
	m.customForm = &CustomFormModel{}
	m.customUse = use
	title := "Add custom points"
	if use {
		title = "Use points"
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Whole number of points").
				Value(&m.customForm.Amount).
				Validate(validatePoints),
		),
	)
	m.previousState = m.state
	m.state = StateCustomForm
	return m, m.form.Init()
}

func (m Model) openPaidForm() (tea.Model, tea.Cmd) {
	var options []huh.Option[string]
	for _, e := range m.entries {
		if e.Points == constants.DonePoints && !e.IsPaid && !e.IsCustomAdd {
			label := fmt.Sprintf("%s  +%d", e.Time().Format("Jan 02, 2006"), e.Points)
			options = append(options, huh.NewOption(label, e.ID))
		}
	}
	if len(options) == 0 {
		m.status = "No unpaid assignments"
		return m, nil
	}

	m.paidPicks = nil
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Mark assignments as paid").
				Options(options...).
				Value(&m.paidPicks),
		),
	)
	m.previousState = m.state
	m.state = StatePaidForm
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.state {
		case StateCustomForm:
			m.submitCustom()
		case StatePaidForm:
			m.submitPaid()
		case StateExportForm:
			m.submitExport()
		case StateImportForm:
			m.submitImport()
		}
		m.form = nil
		m.state = m.previousState
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		m.state = m.previousState
		m.status = "Cancelled"
		return m, nil
	}
	return m, cmd
}

func (m *Model) submitCustom() {
	amount, err := parsePositivePoints(m.customForm.Amount)
	if err != nil {
		m.err = err
		return
	}
	if m.customUse {
		_, err = m.store.AppendEntry(-amount, false, false)
	} else {
		_, err = m.store.AppendEntry(amount, false, true)
	}
	if err != nil {
		m.err = err
		return
	}
	if m.customUse {
		m.status = fmt.Sprintf("Used %d points", amount)
	} else {
		m.status = fmt.Sprintf("Added %d points", amount)
	}
	m.refresh()
}

func (m *Model) submitPaid() {
	if len(m.paidPicks) == 0 {
		return
	}
	marked, err := m.store.MarkPaid(m.paidPicks)
	if err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("%d assignment(s) marked as PAID", marked)
	m.refresh()
}

func (m Model) openFileForm(state SessionState) (tea.Model, tea.Cmd) {
	m.fileForm = &FileFormModel{}

	var fields []huh.Field
	if state == StateExportForm {
		fields = append(fields, huh.NewInput().
			Title("Export to file").
			Description("Destination path ending in .json or .csv").
			Value(&m.fileForm.Path).
			Validate(validateExportPath))
	} else {
		fields = append(fields,
			huh.NewInput().
				Title("Import from file").
				Description("Path of a previously exported .json or .csv file").
				Value(&m.fileForm.Path),
			huh.NewConfirm().
				Title("Replace all current logs and the daily checked-in status?").
				Value(&m.fileForm.Confirm),
		)
	}

	m.form = huh.NewForm(huh.NewGroup(fields...))
	m.previousState = m.state
	m.state = state
	return m, m.form.Init()
}

func (m *Model) submitExport() {
	format := codec.FormatFromPath(m.fileForm.Path)
	if format == codec.FormatUnknown {
		m.err = errors.New("unsupported export format: use a .json or .csv extension")
		return
	}

	var data []byte
	var err error
	switch format {
	case codec.FormatJSON:
		data, err = codec.ExportJSON(m.entries, m.appState.LastAction)
		if err != nil {
			m.err = err
			return
		}
	case codec.FormatCSV:
		data = codec.ExportCSV(m.entries, m.appState.LastAction)
	}

	if err := os.WriteFile(m.fileForm.Path, data, 0600); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("Exported %d log entries", len(m.entries))
	m.err = nil
}

func (m *Model) submitImport() {
	if !m.fileForm.Confirm {
		m.status = "Import cancelled"
		return
	}

	data, err := os.ReadFile(m.fileForm.Path)
	if err != nil {
		m.err = err
		return
	}
	result, err := codec.Import(data, codec.FormatFromPath(m.fileForm.Path))
	if err != nil {
		m.err = err
		return
	}

	if result.ReplaceEntries {
		if err := m.store.ReplaceAll(result.Entries, result.LastAction); err != nil {
			m.err = err
			return
		}
		m.status = fmt.Sprintf("Imported %d log entries", len(result.Entries))
	} else if result.LastAction != nil {
		if err := m.store.SetLastAction(*result.LastAction); err != nil {
			m.err = err
			return
		}
		m.status = "Imported daily status only"
	}
	m.err = nil
	m.refresh()
}

func validateExportPath(s string) error {
	if codec.FormatFromPath(s) == codec.FormatUnknown {
		return errors.New("use a .json or .csv extension")
	}
	return nil
}

func validatePoints(s string) error {
	_, err := parsePositivePoints(s)
	return err
}

// parsePositivePoints parses a user-entered point amount. The sign is decided
// by the add/use choice, so the amount itself must be a positive integer.
func parsePositivePoints(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.New("enter a whole number")
	}
	if v <= 0 {
		return 0, errors.New("enter a positive number")
	}
	return v, nil
}
