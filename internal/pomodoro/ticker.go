package pomodoro

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Tick is one elapsed interval. Epoch identifies the run that produced it.
type Tick struct {
	Epoch uint64
	At    time.Time
}

// Ticker is the single source of elapsed-second events. Each Start opens
// a new epoch served by one goroutine; Stop ends it. Ticks still in
// flight from an earlier epoch are rejected by Accept, so a paused and
// resumed timer never receives a double tick.
type Ticker struct {
	interval time.Duration
	ch       chan Tick

	mu      sync.Mutex
	epoch   uint64
	running bool
	stopCh  chan struct{}
}

// NewTicker returns a stopped ticker firing every interval.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{
		interval: interval,
		ch:       make(chan Tick, 1),
	}
}

// Start begins a new run and returns its epoch. Starting a running ticker
// keeps the current run.
func (t *Ticker) Start() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return t.epoch
	}
	t.epoch++
	t.running = true
	t.stopCh = make(chan struct{})
	go t.run(t.epoch, t.stopCh)
	return t.epoch
}

// Stop ends the current run. No tick from that run is accepted afterwards.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}
	close(t.stopCh)
	t.running = false
}

// Running reports whether a run is active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Accept reports whether tick belongs to the active run.
func (t *Ticker) Accept(tick Tick) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running && tick.Epoch == t.epoch
}

func (t *Ticker) run(epoch uint64, stop <-chan struct{}) {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-tk.C:
			select {
			case t.ch <- Tick{Epoch: epoch, At: now}:
			case <-stop:
				return
			}
		}
	}
}

// Wait returns a tea.Cmd that blocks for the next tick and delivers it as
// a message. Callers keep at most one Wait outstanding and re-issue it
// after each Tick message.
func (t *Ticker) Wait() tea.Cmd {
	return func() tea.Msg {
		return <-t.ch
	}
}

// Run starts the ticker and calls fn for every accepted tick until fn
// returns false or ctx is done. The ticker is stopped on return.
func (t *Ticker) Run(ctx context.Context, fn func(Tick) bool) error {
	t.Start()
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case tick := <-t.ch:
			if !t.Accept(tick) {
				continue
			}
			if !fn(tick) {
				return nil
			}
		}
	}
}
