package gesture

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)

func TestHoldCommitsAfterDuration(t *testing.T) {
	h := New(2 * time.Second)
	h.Press(t0)

	if h.State() != StateHolding {
		t.Fatalf("state after press = %v, want holding", h.State())
	}
	if h.Tick(t0.Add(time.Second)) {
		t.Errorf("tick at 1s committed early")
	}
	if !h.Tick(t0.Add(2 * time.Second)) {
		t.Errorf("tick at 2s did not commit")
	}
	if h.State() != StateCommitted {
		t.Errorf("state = %v, want committed", h.State())
	}

	// Commit fires exactly once.
	if h.Tick(t0.Add(3 * time.Second)) {
		t.Errorf("second tick reported another commit")
	}
}

func TestHoldReleaseBeforeDeadlineCancels(t *testing.T) {
	h := New(2 * time.Second)
	h.Press(t0)

	if h.Release(t0.Add(1500 * time.Millisecond)) {
		t.Errorf("early release reported commit")
	}
	if h.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", h.State())
	}

	// A cancelled hold stays dead until reset.
	if h.Tick(t0.Add(5 * time.Second)) {
		t.Errorf("tick on cancelled hold committed")
	}
}

func TestHoldReleaseAfterDeadlineCommits(t *testing.T) {
	h := New(2 * time.Second)
	h.Press(t0)

	if !h.Release(t0.Add(2500 * time.Millisecond)) {
		t.Errorf("release past the deadline did not commit")
	}
	if h.State() != StateCommitted {
		t.Errorf("state = %v, want committed", h.State())
	}
}

func TestHoldProgress(t *testing.T) {
	h := New(2 * time.Second)

	if p := h.Progress(t0); p != 0 {
		t.Errorf("idle progress = %v, want 0", p)
	}

	h.Press(t0)
	if p := h.Progress(t0.Add(time.Second)); p != 0.5 {
		t.Errorf("progress at 1s = %v, want 0.5", p)
	}
	if p := h.Progress(t0.Add(5 * time.Second)); p != 1 {
		t.Errorf("progress past deadline = %v, want clamped to 1", p)
	}

	h.Tick(t0.Add(2 * time.Second))
	if p := h.Progress(t0.Add(10 * time.Second)); p != 1 {
		t.Errorf("committed progress = %v, want 1", p)
	}
}

func TestHoldReset(t *testing.T) {
	h := New(2 * time.Second)
	h.Press(t0)
	h.Release(t0.Add(time.Second))

	h.Reset()
	if h.State() != StateIdle {
		t.Fatalf("state after reset = %v, want idle", h.State())
	}

	h.Press(t0.Add(10 * time.Second))
	if !h.Tick(t0.Add(12 * time.Second)) {
		t.Errorf("reused hold did not commit")
	}
}

func TestHoldPressIgnoredUnlessIdle(t *testing.T) {
	h := New(2 * time.Second)
	h.Press(t0)
	// A second press must not restart the window.
	h.Press(t0.Add(1900 * time.Millisecond))

	if !h.Tick(t0.Add(2 * time.Second)) {
		t.Errorf("second press restarted the hold window")
	}
}
