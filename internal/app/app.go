package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/taskflow/internal/keys"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/pomodoro"
	"github.com/nhle/taskflow/internal/store"
	"github.com/nhle/taskflow/internal/tasks"
	"github.com/nhle/taskflow/internal/ui"
	"github.com/nhle/taskflow/internal/ui/command"
	"github.com/nhle/taskflow/internal/ui/detail"
	"github.com/nhle/taskflow/internal/ui/focus"
	helpview "github.com/nhle/taskflow/internal/ui/help"
	"github.com/nhle/taskflow/internal/ui/taskform"
	"github.com/nhle/taskflow/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewTaskCreate
	ViewTaskEdit
)

// defaultToastTTL is how long a notification stays in the status bar.
const defaultToastTTL = 4 * time.Second

// clearToastMsg expires the toast with the given sequence number.
type clearToastMsg struct{ seq int }

// Options wires the application's collaborators.
type Options struct {
	Tasks  *tasks.Store
	Prefs  *store.Preferences
	Timer  *pomodoro.Timer
	Ticker *pomodoro.Ticker
	Logger *log.Logger

	// Theme is the configured theme: auto, dark or light. A theme saved
	// with the T key takes precedence over auto.
	Theme           string
	DefaultCategory string
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the task store and focus timer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        *tasks.Store
	prefs        *store.Preferences
	logger       *log.Logger
	keys         *keys.KeyMap
	taskList     tasklist.Model
	detail       detail.Model
	helpView     helpview.Model
	commandView  command.Model
	taskForm     taskform.Model
	focus        focus.Model
	toast        *model.Notification
	toastSeq     int
	toastTTL     time.Duration
	ready        bool
}

// New creates a new root application model.
func New(opts Options) Model {
	k := keys.DefaultKeyMap()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	timer := opts.Timer
	if timer == nil {
		timer = pomodoro.New(pomodoro.DefaultWorkMinutes, pomodoro.DefaultBreakMinutes)
	}
	ticker := opts.Ticker
	if ticker == nil {
		ticker = pomodoro.NewTicker(time.Second)
	}

	m := Model{
		currentView: ViewList,
		store:       opts.Tasks,
		prefs:       opts.Prefs,
		logger:      logger,
		keys:        k,
		taskList:    tasklist.New(k, 80, 24),
		detail:      detail.New(k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		taskForm:    taskform.New(opts.DefaultCategory, 80, 24),
		focus:       focus.New(timer, ticker, k, logger),
		toastTTL:    defaultToastTTL,
	}
	m.applyInitialTheme(opts.Theme)
	m.refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case pomodoro.Tick:
		var cmd tea.Cmd
		m.focus, cmd = m.focus.Update(msg)
		return m, cmd

	case focus.NotifyMsg:
		return m, m.notify(msg.Notes...)

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case tasklist.QueryChangedMsg:
		m.refresh()
		return m, nil

	case tasklist.SelectedTaskMsg:
		t, ok := m.store.Get(msg.TaskID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetTask(&t, m.store.Now())
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case detail.ActionMsg:
		return m.handleDetailAction(msg)

	case taskform.SubmittedMsg:
		m.currentView = m.previousView
		if msg.ID == "" {
			return m, m.addTask(msg.Input, msg.Notes...)
		}
		return m, m.editTask(msg.ID, msg.Input, msg.Notes...)

	case taskform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if !m.capturingText() {
			if next, cmd, ok := m.handleGlobalKey(msg); ok {
				return next, cmd
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// capturingText reports whether keystrokes belong to a text input.
func (m Model) capturingText() bool {
	switch m.currentView {
	case ViewCommand, ViewTaskCreate, ViewTaskEdit:
		return true
	case ViewList:
		return m.taskList.Searching()
	}
	return false
}

// handleGlobalKey handles keys that work outside text inputs. The bool
// reports whether the key was consumed.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Back) && m.currentView == ViewHelp:
		m.currentView = m.previousView
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true

	case key.Matches(msg, m.keys.Theme):
		return m, m.toggleTheme(), true
	}

	if m.currentView == ViewList || m.currentView == ViewDetail {
		if next, cmd, ok := m.focus.HandleKey(msg); ok {
			m.focus = next
			return m, cmd, true
		}
	}

	if m.currentView != ViewList {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		next, cmd := m.quit()
		return next.(Model), cmd, true

	case key.Matches(msg, m.keys.New):
		m.previousView = m.currentView
		m.currentView = ViewTaskCreate
		return m, m.taskForm.StartCreate(), true

	case key.Matches(msg, m.keys.Edit):
		t, ok := m.taskList.SelectedTask()
		if !ok {
			return m, nil, true
		}
		return m, m.startEdit(t), true

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.taskList.SelectedTask(); ok {
			return m, m.toggleTask(t.ID), true
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.taskList.SelectedTask(); ok {
			return m, m.deleteTask(t.ID), true
		}
		return m, nil, true

	case key.Matches(msg, m.keys.MoveUp):
		if t, ok := m.taskList.SelectedTask(); ok {
			return m, m.moveTask(t.ID, -1), true
		}
		return m, nil, true

	case key.Matches(msg, m.keys.MoveDown):
		if t, ok := m.taskList.SelectedTask(); ok {
			return m, m.moveTask(t.ID, 1), true
		}
		return m, nil, true
	}

	return m, nil, false
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.focus.Stop()
	return m, tea.Quit
}

func (m *Model) startEdit(t model.Task) tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewTaskEdit
	return m.taskForm.StartEdit(t)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewTaskCreate, ViewTaskEdit:
		m.taskForm, cmd = m.taskForm.Update(msg)
	}

	return m, cmd
}

// resize propagates the layout to every view.
func (m *Model) resize() {
	mainWidth := m.layout.MainWidth()
	contentWidth := m.layout.ContentWidth()
	contentHeight := m.layout.ContentHeight()

	m.taskList.SetSize(mainWidth, contentHeight)
	m.detail.SetSize(mainWidth, contentHeight)
	m.focus.SetSize(ui.SideWidth, contentHeight)
	m.helpView.SetSize(contentWidth, contentHeight)
	m.commandView.SetSize(contentWidth, contentHeight)
	m.taskForm.SetSize(contentWidth, contentHeight)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("taskflow", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.renderToast(), m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.layout.RenderColumns(m.taskList.View(), m.focus.View())
	case ViewDetail:
		return m.layout.RenderColumns(m.detail.View(), m.focus.View())
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewTaskCreate, ViewTaskEdit:
		return m.taskForm.View()
	default:
		return ""
	}
}

// headerStatus summarizes the timer for the header bar.
func (m Model) headerStatus() string {
	t := m.focus.Timer()
	s := t.State()
	state := "paused"
	if s.IsRunning {
		state = "running"
	}
	return fmt.Sprintf("%s %s %s · %d cycles", s.Mode, t.Clock(), state, s.CompletedCycles)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewDetail:
		return "esc back | e edit | x toggle | d delete | j/k scroll"
	case ViewTaskCreate, ViewTaskEdit:
		return "enter next/submit | esc cancel"
	default:
		if m.taskList.Searching() {
			return "type to search | enter keep | esc clear"
		}
		if summary := m.taskList.FilterSummary(); summary != "" {
			return summary + " | : clear"
		}
		return "q quit | ? help | n new | x done | f filter | tab sort | / search | space timer"
	}
}

// refresh derives the list view from the store, keeping the selection.
func (m *Model) refresh() {
	keep := ""
	if t, ok := m.taskList.SelectedTask(); ok {
		keep = t.ID
	}
	m.taskList.SetTasks(m.store.View(m.taskList.Query()), m.store.Stats(), m.store.Now(), keep)

	if id := m.detail.TaskID(); id != "" {
		if t, ok := m.store.Get(id); ok {
			m.detail.SetTask(&t, m.store.Now())
		} else {
			m.detail.SetTask(nil, m.store.Now())
		}
	}
}

func (m *Model) ctx() context.Context {
	return context.Background()
}
