// Package gesture models the press-and-hold confirm used by the DONE and
// SKIPPED actions as an explicit state machine driven by press, release, and
// tick events.
package gesture

import "time"

// State of a hold gesture.
type State int

const (
	StateIdle State = iota
	StateHolding
	StateCommitted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHolding:
		return "holding"
	case StateCommitted:
		return "committed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Hold is a single cancellable confirm gesture. Press starts the window,
// Release before the duration elapses cancels, and a Tick at or past the
// deadline commits. A committed or cancelled hold stays terminal until Reset.
type Hold struct {
	duration time.Duration
	state    State
	started  time.Time
}

func New(duration time.Duration) *Hold {
	return &Hold{duration: duration, state: StateIdle}
}

func (h *Hold) State() State { return h.state }

// Press begins the hold window. Ignored unless idle.
func (h *Hold) Press(now time.Time) {
	if h.state != StateIdle {
		return
	}
	h.state = StateHolding
	h.started = now
}

// Tick advances the gesture clock and reports whether this tick committed
// the action. Commit fires exactly once.
func (h *Hold) Tick(now time.Time) bool {
	if h.state != StateHolding {
		return false
	}
	if now.Sub(h.started) >= h.duration {
		h.state = StateCommitted
		return true
	}
	return false
}

// Release ends an in-flight hold. A release before the window elapses
// cancels with no state change; a release after the full window commits,
// and the return value tells the caller whether to run the action. The
// visual progress must be reset by the caller synchronously either way.
func (h *Hold) Release(now time.Time) bool {
	if h.state != StateHolding {
		return false
	}
	if now.Sub(h.started) >= h.duration {
		h.state = StateCommitted
		return true
	}
	h.state = StateCancelled
	return false
}

// Progress reports how far through the hold window the gesture is, in
// [0.0, 1.0].
func (h *Hold) Progress(now time.Time) float64 {
	switch h.state {
	case StateHolding:
		p := float64(now.Sub(h.started)) / float64(h.duration)
		if p < 0 {
			return 0
		}
		if p > 1 {
			return 1
		}
		return p
	case StateCommitted:
		return 1
	default:
		return 0
	}
}

// Reset returns the gesture to idle so it can be used again.
func (h *Hold) Reset() {
	h.state = StateIdle
	h.started = time.Time{}
}
