package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/zzspin/tally/internal/constants"
	"github.com/zzspin/tally/internal/gesture"
	"github.com/zzspin/tally/internal/models"
	"github.com/zzspin/tally/internal/reminder"
	"github.com/zzspin/tally/internal/storage"
)

type SessionState int

const (
	StateLog SessionState = iota
	StateChart
	StateStats
	StateHolding
	StateCustomForm
	StatePaidForm
	StateExportForm
	StateImportForm
)

// tabCount is how many states are reachable via tab cycling.
const tabCount = 3

// clockTickMsg drives the once-a-second countdown refresh.
type clockTickMsg time.Time

// holdTickMsg drives the hold-to-confirm progress animation.
type holdTickMsg time.Time

// CustomFormModel backs the add/use points form.
type CustomFormModel struct {
	Amount string
}

// FileFormModel backs the export and import path forms.
type FileFormModel struct {
	Path    string
	Confirm bool
}

type Model struct {
	store  storage.Provider
	engine *reminder.Engine

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	entries  []models.LogEntry
	appState models.AppState

	// Hold-to-confirm for the primary actions. holdPoints and holdLabel
	// describe the action the in-flight hold will commit.
	hold       *gesture.Hold
	holdPoints int64
	holdLabel  string

	form       *huh.Form
	customForm *CustomFormModel
	customUse  bool
	fileForm   *FileFormModel
	paidPicks  []string

	status   string
	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, engine *reminder.Engine) Model {
	m := Model{
		store:  store,
		engine: engine,
		state:  StateLog,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.refresh()
	return m
}

// inForm reports whether a huh form currently owns the keyboard.
func (m Model) inForm() bool {
	switch m.state {
	case StateCustomForm, StatePaidForm, StateExportForm, StateImportForm:
		return true
	}
	return false
}

// refresh reloads the entry log and lifecycle flags from the store.
func (m *Model) refresh() {
	entries, err := m.store.GetEntries()
	if err != nil {
		m.err = err
		return
	}
	state, err := m.store.GetAppState()
	if err != nil {
		m.err = err
		return
	}
	m.entries = entries
	m.appState = state
	m.err = nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateLog:
		keys = append(keys, m.keys.Done, m.keys.Skip, m.keys.Add, m.keys.Use, m.keys.Paid, m.keys.Export, m.keys.Import)
	case StateHolding, StateCustomForm, StatePaidForm, StateExportForm, StateImportForm:
		keys = append(keys, m.keys.Cancel)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Done, m.keys.Skip, m.keys.Add, m.keys.Use, m.keys.Paid, m.keys.Cancel},
	}
}

func (m Model) Init() tea.Cmd {
	return clockTick()
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func holdTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return holdTickMsg(t)
	})
}

// startHold enters the hold-to-confirm state for DONE or SKIPPED.
func (m *Model) startHold(points int64, label string) tea.Cmd {
	m.hold = gesture.New(constants.HoldDuration)
	m.hold.Press(time.Now())
	m.holdPoints = points
	m.holdLabel = label
	m.previousState = m.state
	m.state = StateHolding
	return holdTick()
}

// cancelHold abandons an in-flight hold with no state change to the log.
func (m *Model) cancelHold() {
	if m.hold != nil {
		m.hold.Release(time.Now())
	}
	m.hold = nil
	m.state = m.previousState
	m.status = "Cancelled"
}

// commitPrimary appends the held DONE/SKIPPED entry and locks the day.
func (m *Model) commitPrimary() {
	entry, err := m.store.AppendEntry(m.holdPoints, false, false)
	if err != nil {
		m.err = err
		return
	}
	if err := m.store.SetLastAction(entry.Timestamp); err != nil {
		m.err = err
		return
	}
	if err := m.engine.OnPrimaryAction(); err != nil {
		m.err = err
		return
	}
	m.status = m.holdLabel + " logged!"
	m.refresh()
}
