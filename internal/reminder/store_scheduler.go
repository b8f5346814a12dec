package reminder

import (
	"fmt"
	"time"
)

// AlarmStore is the persisted trigger table an alarm scheduler can be built
// on when no platform alarm service exists. storage.Provider satisfies it.
type AlarmStore interface {
	GetAlarm(id string) (int64, bool, error)
	SetAlarm(id string, triggerAt int64) error
	ClearAlarm(id string) error
}

// StoreScheduler persists trigger instants in the alarm table. Delivery
// happens lazily: a later RunDue call fires whatever has come due. This is
// the CLI stand-in for a wake-capable platform alarm service.
type StoreScheduler struct {
	store AlarmStore
}

func NewStoreScheduler(store AlarmStore) *StoreScheduler {
	return &StoreScheduler{store: store}
}

func (s *StoreScheduler) ScheduleAt(id string, at time.Time) error {
	return s.store.SetAlarm(id, at.UnixMilli())
}

func (s *StoreScheduler) Cancel(id string) error {
	return s.store.ClearAlarm(id)
}

// PendingAlarm is one booked trigger, for status display.
type PendingAlarm struct {
	Channel   Channel
	TriggerAt time.Time
}

// Pending lists the booked triggers of all three reminder kinds.
func Pending(store AlarmStore) ([]PendingAlarm, error) {
	var pending []PendingAlarm
	for _, ch := range []Channel{MorningChannel, EveningChannel, ExitChannel} {
		at, ok, err := store.GetAlarm(ch.AlarmID)
		if err != nil {
			return nil, fmt.Errorf("failed to read alarm %s: %w", ch.AlarmID, err)
		}
		if ok {
			pending = append(pending, PendingAlarm{Channel: ch, TriggerAt: time.UnixMilli(at)})
		}
	}
	return pending, nil
}

// RunDue fires every booked reminder whose trigger instant has passed and
// returns how many fired. Recurring reminders rebook themselves through the
// engine; the one-shot exit reminder is cleared once delivered.
func RunDue(engine *Engine, store AlarmStore, now time.Time) (int, error) {
	fired := 0

	due := func(ch Channel) (bool, error) {
		at, ok, err := store.GetAlarm(ch.AlarmID)
		if err != nil {
			return false, fmt.Errorf("failed to read alarm %s: %w", ch.AlarmID, err)
		}
		return ok && at <= now.UnixMilli(), nil
	}

	if ok, err := due(EveningChannel); err != nil {
		return fired, err
	} else if ok {
		if err := engine.FireEvening(); err != nil {
			return fired, err
		}
		fired++
	}

	if ok, err := due(MorningChannel); err != nil {
		return fired, err
	} else if ok {
		if err := engine.FireMorning(); err != nil {
			return fired, err
		}
		fired++
	}

	if ok, err := due(ExitChannel); err != nil {
		return fired, err
	} else if ok {
		if err := engine.FireExit(); err != nil {
			return fired, err
		}
		if err := store.ClearAlarm(ExitChannel.AlarmID); err != nil {
			return fired, fmt.Errorf("failed to clear exit alarm: %w", err)
		}
		fired++
	}

	return fired, nil
}
