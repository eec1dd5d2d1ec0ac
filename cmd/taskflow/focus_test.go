package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/pomodoro"
)

func TestRunFocusStopsAfterCycles(t *testing.T) {
	timer := pomodoro.New(1, 1)
	ticker := pomodoro.NewTicker(time.Millisecond)

	var lines []string
	var notes []model.Notification
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := runFocus(ctx, timer, ticker, 1, func(line string, n []model.Notification) {
		lines = append(lines, line)
		notes = append(notes, n...)
	})
	if err != nil {
		t.Fatalf("runFocus: %v", err)
	}

	if len(lines) != 60 {
		t.Errorf("got %d ticks, want 60", len(lines))
	}
	if got := timer.State().CompletedCycles; got != 1 {
		t.Errorf("cycles = %d, want 1", got)
	}
	if len(notes) != 1 || notes[0].Severity != model.SeveritySuccess {
		t.Errorf("notes = %+v, want one success", notes)
	}
	if !strings.HasPrefix(lines[len(lines)-1], "break") {
		t.Errorf("last line = %q, want break mode", lines[len(lines)-1])
	}
	if ticker.Running() {
		t.Error("ticker still running")
	}
}

func TestRunFocusHonorsCancel(t *testing.T) {
	timer := pomodoro.New(1, 1)
	ticker := pomodoro.NewTicker(time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	err := runFocus(ctx, timer, ticker, 0, func(string, []model.Notification) {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
