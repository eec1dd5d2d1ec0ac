// Package focus renders the Pomodoro panel and routes timer keys and
// ticks to the timer.
package focus

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nhle/taskflow/internal/keys"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/pomodoro"
	"github.com/nhle/taskflow/internal/theme"
)

// NotifyMsg carries timer notifications to the parent for display.
type NotifyMsg struct {
	Notes []model.Notification
}

// Model is the Pomodoro side panel.
type Model struct {
	timer   *pomodoro.Timer
	ticker  *pomodoro.Ticker
	keys    *keys.KeyMap
	logger  *log.Logger
	waiting bool
	width   int
	height  int
}

// New creates the panel around a timer and its tick source.
func New(timer *pomodoro.Timer, ticker *pomodoro.Ticker, k *keys.KeyMap, logger *log.Logger) Model {
	return Model{
		timer:  timer,
		ticker: ticker,
		keys:   k,
		logger: logger,
	}
}

// Timer exposes the underlying timer for read access and configuration.
func (m Model) Timer() *pomodoro.Timer {
	return m.timer
}

// Update handles tick messages. Keys go through HandleKey.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(pomodoro.Tick)
	if !ok {
		return m, nil
	}
	m.waiting = false

	var cmds []tea.Cmd
	if m.ticker.Accept(tick) {
		notes := m.timer.Tick()
		if len(notes) > 0 {
			s := m.timer.State()
			m.logger.Info("pomodoro phase completed", "mode", s.Mode, "cycles", s.CompletedCycles)
			cmds = append(cmds, notify(notes...))
		}
	}
	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

// HandleKey applies a timer key binding. The bool reports whether the key
// belonged to the timer.
func (m Model) HandleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	s := m.timer.State()

	switch {
	case key.Matches(msg, m.keys.FocusStart):
		m.timer.Toggle()
	case key.Matches(msg, m.keys.FocusReset):
		m.timer.Reset()
	case key.Matches(msg, m.keys.FocusSkip):
		m.timer.Skip()
		m.logger.Info("pomodoro phase skipped", "to", m.timer.Mode())
	case key.Matches(msg, m.keys.WorkLonger):
		return m.withDuration(m.timer.SetWorkDuration(s.WorkDurationMinutes + 1))
	case key.Matches(msg, m.keys.WorkShorter):
		return m.withDuration(m.timer.SetWorkDuration(s.WorkDurationMinutes - 1))
	case key.Matches(msg, m.keys.BreakLonger):
		return m.withDuration(m.timer.SetBreakDuration(s.BreakDurationMinutes + 1))
	case key.Matches(msg, m.keys.BreakShorter):
		return m.withDuration(m.timer.SetBreakDuration(s.BreakDurationMinutes - 1))
	default:
		return m, nil, false
	}
	cmd := m.sync()
	return m, cmd, true
}

// SetWorkDuration applies a work length from the command palette.
func (m Model) SetWorkDuration(minutes int) (Model, tea.Cmd) {
	m, cmd, _ := m.withDuration(m.timer.SetWorkDuration(minutes))
	return m, cmd
}

// SetBreakDuration applies a break length from the command palette.
func (m Model) SetBreakDuration(minutes int) (Model, tea.Cmd) {
	m, cmd, _ := m.withDuration(m.timer.SetBreakDuration(minutes))
	return m, cmd
}

func (m Model) withDuration(err error) (Model, tea.Cmd, bool) {
	if err != nil {
		m.logger.Debug("duration rejected", "err", err)
		return m, notify(model.Warning(durationHint(err))), true
	}
	cmd := m.sync()
	return m, cmd, true
}

func durationHint(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	if msg == "" {
		return "Duration out of range"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// sync starts or stops the tick source to match the timer and keeps one
// Wait outstanding while it runs.
func (m *Model) sync() tea.Cmd {
	if !m.timer.Running() {
		m.ticker.Stop()
		return nil
	}
	m.ticker.Start()
	if m.waiting {
		return nil
	}
	m.waiting = true
	return m.ticker.Wait()
}

// Stop halts the tick source.
func (m Model) Stop() {
	m.ticker.Stop()
}

func notify(notes ...model.Notification) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Notes: notes}
	}
}

// View renders the panel.
func (m Model) View() string {
	s := m.timer.State()
	inner := max(10, m.width-4)

	label := "WORK"
	if s.Mode == pomodoro.ModeBreak {
		label = "BREAK"
	}
	state := "paused"
	if s.IsRunning {
		state = "running"
	}

	gray := lipgloss.NewStyle().Foreground(theme.ColorGray)
	clock := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Width(inner).
		Align(lipgloss.Center).
		Render(m.timer.Clock())

	lines := []string{
		theme.ModeStyle(s.Mode == pomodoro.ModeWork).Render(label) + " " + gray.Render(state),
		"",
		clock,
		progressBar(m.timer.Progress(), inner),
		"",
		gray.Render(fmt.Sprintf("Cycles  %d", s.CompletedCycles)),
		gray.Render(fmt.Sprintf("Work    %dm", s.WorkDurationMinutes)),
		gray.Render(fmt.Sprintf("Break   %dm", s.BreakDurationMinutes)),
		"",
		theme.HelpStyle.Render("space start/pause"),
		theme.HelpStyle.Render("z reset  > skip"),
		theme.HelpStyle.Render("w/W work  b/B break"),
	}

	style := theme.FocusPanelStyle.Width(max(0, m.width-2))
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func progressBar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(frac*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return lipgloss.NewStyle().Foreground(theme.ColorGreen).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.ColorSubtle).Render(strings.Repeat("░", width-filled))
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
