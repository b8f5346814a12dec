// Package reminder decides whether each of the three local reminders should
// fire and when its next trigger is. The engine only talks to narrow
// Clock/AlarmScheduler/Notifier interfaces, so the decision rules run the
// same against the real CLI wiring and against fakes in tests.
package reminder

import (
	"errors"
	"fmt"
	"time"

	"github.com/zzspin/tally/internal/constants"
	"github.com/zzspin/tally/internal/daygate"
	"github.com/zzspin/tally/internal/models"
)

// ErrPermissionUnavailable signals that the platform refused to schedule a
// precise alarm. The engine degrades to a silent no-op: reminders simply do
// not fire until permission is granted.
var ErrPermissionUnavailable = errors.New("alarm scheduling permission unavailable")

type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// AlarmScheduler requests "invoke me at instant T" from the platform.
type AlarmScheduler interface {
	ScheduleAt(id string, at time.Time) error
	Cancel(id string) error
}

// Notifier displays and dismisses user-visible notifications.
type Notifier interface {
	Notify(id int, title, body string) error
	Dismiss(id int) error
}

// FlagStore is the slice of the persistence layer the engine reads and
// writes. Reminder handlers may run without the entry log loaded, so the
// flags are all they touch.
type FlagStore interface {
	GetAppState() (models.AppState, error)
	SetLastAppOpen(ms int64) error
	SetExitNotificationShown(shown bool) error
}

// Channel is the static configuration for one reminder kind.
type Channel struct {
	AlarmID        string
	NotificationID int
	Title          string
	Body           string
}

var (
	EveningChannel = Channel{
		AlarmID:        "evening-reminder",
		NotificationID: 1,
		Title:          "Assignment Reminder",
		Body:           "You haven't logged your assignment yet today!",
	}
	ExitChannel = Channel{
		AlarmID:        "exit-reminder",
		NotificationID: 2,
		Title:          "Don't forget your assignment!",
		Body:           "You left without marking your assignment as DONE or SKIPPED today.",
	}
	MorningChannel = Channel{
		AlarmID:        "morning-reminder",
		NotificationID: 3,
		Title:          "Time to check your assignments!",
		Body:           "You haven't opened the app today. Don't forget to track your progress!",
	}
)

// Engine evaluates the reminder rules against the persisted flags.
type Engine struct {
	flags    FlagStore
	clock    Clock
	alarms   AlarmScheduler
	notifier Notifier
}

func NewEngine(flags FlagStore, clock Clock, alarms AlarmScheduler, notifier Notifier) *Engine {
	return &Engine{
		flags:    flags,
		clock:    clock,
		alarms:   alarms,
		notifier: notifier,
	}
}

// NextDailyTrigger returns the next instant the given local hour occurs:
// today if still ahead, otherwise the same time tomorrow.
func NextDailyTrigger(now time.Time, hour int) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// scheduleDaily books the next trigger of a recurring channel. A missing
// scheduling permission is swallowed; everything else propagates.
func (e *Engine) scheduleDaily(ch Channel, hour int) error {
	err := e.alarms.ScheduleAt(ch.AlarmID, NextDailyTrigger(e.clock.Now(), hour))
	if errors.Is(err, ErrPermissionUnavailable) {
		return nil
	}
	return err
}

// ScheduleRecurring books both daily reminders. Called at app start once
// notification permission is granted, and again on boot recovery.
func (e *Engine) ScheduleRecurring() error {
	if err := e.scheduleDaily(EveningChannel, constants.EveningReminderHour); err != nil {
		return fmt.Errorf("failed to schedule evening reminder: %w", err)
	}
	if err := e.scheduleDaily(MorningChannel, constants.MorningReminderHour); err != nil {
		return fmt.Errorf("failed to schedule morning reminder: %w", err)
	}
	return nil
}

// OnBoot reschedules both recurring reminders from scratch after a device
// or process restart.
func (e *Engine) OnBoot() error {
	return e.ScheduleRecurring()
}

// FireEvening runs when the 20:00 alarm delivers: notify unless a primary
// action was already logged today, then reschedule for tomorrow no matter
// what. The reschedule is what keeps the daily loop alive.
func (e *Engine) FireEvening() error {
	state, err := e.flags.GetAppState()
	if err != nil {
		return fmt.Errorf("failed to read app state: %w", err)
	}

	var notifyErr error
	if !daygate.PrimaryActionLocked(state.LastAction, e.clock.Now()) {
		notifyErr = e.notifier.Notify(EveningChannel.NotificationID, EveningChannel.Title, EveningChannel.Body)
	}

	if err := e.scheduleDaily(EveningChannel, constants.EveningReminderHour); err != nil {
		return fmt.Errorf("failed to reschedule evening reminder: %w", err)
	}
	return notifyErr
}

// FireMorning runs when the 09:00 alarm delivers: notify unless the app was
// already opened today, then reschedule unconditionally.
func (e *Engine) FireMorning() error {
	state, err := e.flags.GetAppState()
	if err != nil {
		return fmt.Errorf("failed to read app state: %w", err)
	}

	var notifyErr error
	openedToday := state.LastAppOpen != 0 &&
		daygate.SameCalendarDay(time.UnixMilli(state.LastAppOpen), e.clock.Now())
	if !openedToday {
		notifyErr = e.notifier.Notify(MorningChannel.NotificationID, MorningChannel.Title, MorningChannel.Body)
	}

	if err := e.scheduleDaily(MorningChannel, constants.MorningReminderHour); err != nil {
		return fmt.Errorf("failed to reschedule morning reminder: %w", err)
	}
	return notifyErr
}

// FireExit runs when the one-shot exit alarm delivers. The eligibility
// checks all happened at scheduling time, so firing is unconditional.
func (e *Engine) FireExit() error {
	return e.notifier.Notify(ExitChannel.NotificationID, ExitChannel.Title, ExitChannel.Body)
}

// OnForeground records the app open and re-arms the exit reminder for later
// today by clearing its shown flag.
func (e *Engine) OnForeground() error {
	now := e.clock.Now()
	if err := e.flags.SetLastAppOpen(now.UnixMilli()); err != nil {
		return fmt.Errorf("failed to record app open: %w", err)
	}
	if err := e.flags.SetExitNotificationShown(false); err != nil {
		return fmt.Errorf("failed to reset exit notification flag: %w", err)
	}
	return nil
}

// OnBackground schedules the one-shot exit reminder a few seconds out, but
// only when no primary action was taken today and none was already shown
// since the last foreground.
func (e *Engine) OnBackground() error {
	state, err := e.flags.GetAppState()
	if err != nil {
		return fmt.Errorf("failed to read app state: %w", err)
	}

	now := e.clock.Now()
	if daygate.PrimaryActionLocked(state.LastAction, now) || state.ExitNotificationShown {
		return nil
	}

	err = e.alarms.ScheduleAt(ExitChannel.AlarmID, now.Add(constants.ExitReminderDelay))
	if errors.Is(err, ErrPermissionUnavailable) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to schedule exit reminder: %w", err)
	}

	return e.flags.SetExitNotificationShown(true)
}

// OnPrimaryAction cancels the pending exit alarm and dismisses any exit
// notification already showing; the user just did the thing it nags about.
func (e *Engine) OnPrimaryAction() error {
	if err := e.alarms.Cancel(ExitChannel.AlarmID); err != nil && !errors.Is(err, ErrPermissionUnavailable) {
		return fmt.Errorf("failed to cancel exit reminder: %w", err)
	}
	return e.notifier.Dismiss(ExitChannel.NotificationID)
}
