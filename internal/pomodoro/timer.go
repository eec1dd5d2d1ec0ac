// Package pomodoro implements the work/break focus timer and the
// one-second tick source that drives it.
package pomodoro

import (
	"errors"
	"fmt"
	"time"

	"github.com/nhle/taskflow/internal/model"
)

// Mode is the current phase of the timer.
type Mode string

const (
	ModeWork  Mode = "work"
	ModeBreak Mode = "break"
)

// Duration bounds and defaults, in minutes.
const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
	MinWorkMinutes      = 1
	MaxWorkMinutes      = 60
	MinBreakMinutes     = 1
	MaxBreakMinutes     = 30
)

// ErrDurationOutOfRange is returned when a work or break duration falls
// outside its bounds. The timer is left unchanged.
var ErrDurationOutOfRange = errors.New("duration out of range")

// State is a snapshot of the timer.
type State struct {
	Mode                 Mode
	RemainingMinutes     int
	RemainingSeconds     int
	IsRunning            bool
	CompletedCycles      int
	WorkDurationMinutes  int
	BreakDurationMinutes int
}

// Timer is the Pomodoro state machine. It has no clock of its own: each
// call to Tick is one elapsed second. Not safe for concurrent use.
type Timer struct {
	s State
}

// New returns a stopped timer at the start of a work phase. Durations
// outside their bounds fall back to the defaults.
func New(workMinutes, breakMinutes int) *Timer {
	if workMinutes < MinWorkMinutes || workMinutes > MaxWorkMinutes {
		workMinutes = DefaultWorkMinutes
	}
	if breakMinutes < MinBreakMinutes || breakMinutes > MaxBreakMinutes {
		breakMinutes = DefaultBreakMinutes
	}
	return &Timer{s: State{
		Mode:                 ModeWork,
		RemainingMinutes:     workMinutes,
		WorkDurationMinutes:  workMinutes,
		BreakDurationMinutes: breakMinutes,
	}}
}

// State returns a copy of the current state.
func (t *Timer) State() State { return t.s }

// Running reports whether the countdown is active.
func (t *Timer) Running() bool { return t.s.IsRunning }

// Mode returns the current phase.
func (t *Timer) Mode() Mode { return t.s.Mode }

func (t *Timer) Start() { t.s.IsRunning = true }

func (t *Timer) Pause() { t.s.IsRunning = false }

// Toggle starts a stopped timer or pauses a running one.
func (t *Timer) Toggle() { t.s.IsRunning = !t.s.IsRunning }

// Tick advances the countdown by one second. It does nothing while
// paused. The tick that brings the countdown to 00:00 completes the phase.
func (t *Timer) Tick() []model.Notification {
	if !t.s.IsRunning {
		return nil
	}

	switch {
	case t.s.RemainingSeconds > 0:
		t.s.RemainingSeconds--
	case t.s.RemainingMinutes > 0:
		t.s.RemainingMinutes--
		t.s.RemainingSeconds = 59
	}

	if t.s.RemainingMinutes == 0 && t.s.RemainingSeconds == 0 {
		return []model.Notification{t.complete()}
	}
	return nil
}

// complete ends the current phase, counting a cycle when work finishes.
func (t *Timer) complete() model.Notification {
	wasWork := t.s.Mode == ModeWork
	t.flip()
	if wasWork {
		t.s.CompletedCycles++
		return model.Success("Work session completed! Time for a break.")
	}
	return model.Info("Break time over! Back to work.")
}

func (t *Timer) flip() {
	if t.s.Mode == ModeWork {
		t.s.Mode = ModeBreak
	} else {
		t.s.Mode = ModeWork
	}
	t.s.IsRunning = false
	t.restore()
}

// restore sets the countdown to the full duration of the current mode.
func (t *Timer) restore() {
	t.s.RemainingMinutes = t.duration(t.s.Mode)
	t.s.RemainingSeconds = 0
}

func (t *Timer) duration(m Mode) int {
	if m == ModeBreak {
		return t.s.BreakDurationMinutes
	}
	return t.s.WorkDurationMinutes
}

// Reset stops the timer and restores the current phase's full duration.
// Mode and completed cycles are kept.
func (t *Timer) Reset() {
	t.s.IsRunning = false
	t.restore()
}

// Skip ends the current phase immediately without counting a cycle.
func (t *Timer) Skip() {
	t.flip()
}

// SetWorkDuration changes the work length. When the timer is stopped in
// a work phase the countdown is reset to the new length right away.
func (t *Timer) SetWorkDuration(minutes int) error {
	if minutes < MinWorkMinutes || minutes > MaxWorkMinutes {
		return fmt.Errorf("%w: work must be %d-%d minutes, got %d",
			ErrDurationOutOfRange, MinWorkMinutes, MaxWorkMinutes, minutes)
	}
	t.s.WorkDurationMinutes = minutes
	if !t.s.IsRunning && t.s.Mode == ModeWork {
		t.restore()
	}
	return nil
}

// SetBreakDuration changes the break length. When the timer is stopped in
// a break phase the countdown is reset to the new length right away.
func (t *Timer) SetBreakDuration(minutes int) error {
	if minutes < MinBreakMinutes || minutes > MaxBreakMinutes {
		return fmt.Errorf("%w: break must be %d-%d minutes, got %d",
			ErrDurationOutOfRange, MinBreakMinutes, MaxBreakMinutes, minutes)
	}
	t.s.BreakDurationMinutes = minutes
	if !t.s.IsRunning && t.s.Mode == ModeBreak {
		t.restore()
	}
	return nil
}

// Remaining returns the time left in the current phase.
func (t *Timer) Remaining() time.Duration {
	return time.Duration(t.s.RemainingMinutes)*time.Minute +
		time.Duration(t.s.RemainingSeconds)*time.Second
}

// Clock formats the remaining time as MM:SS.
func (t *Timer) Clock() string {
	return fmt.Sprintf("%02d:%02d", t.s.RemainingMinutes, t.s.RemainingSeconds)
}

// Progress returns the elapsed fraction of the current phase in [0,1].
func (t *Timer) Progress() float64 {
	total := time.Duration(t.duration(t.s.Mode)) * time.Minute
	if total <= 0 {
		return 0
	}
	return 1 - float64(t.Remaining())/float64(total)
}
