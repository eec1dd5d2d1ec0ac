package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/tasks"
	"github.com/nhle/taskflow/internal/theme"
	"github.com/nhle/taskflow/internal/ui/detail"
)

var saveFailedNote = model.Failure("Changes could not be saved")

// addTask and editTask show the form's warnings after the store's own
// notifications so they end up in the toast.
func (m *Model) addTask(in tasks.Input, warnings ...model.Notification) tea.Cmd {
	t, notes, err := m.store.Add(m.ctx(), in)
	if err != nil {
		m.logger.Warn("add task", "err", err)
	} else {
		m.logger.Info("task added", "id", t.ID, "priority", t.Priority)
	}
	m.refresh()
	return m.notify(append(notes, warnings...)...)
}

func (m *Model) editTask(id string, in tasks.Input, warnings ...model.Notification) tea.Cmd {
	notes, err := m.store.Edit(m.ctx(), id, in)
	if err != nil {
		m.logger.Warn("edit task", "id", id, "err", err)
	}
	m.refresh()
	return m.notify(append(notes, warnings...)...)
}

func (m *Model) deleteTask(id string) tea.Cmd {
	notes, err := m.store.Delete(m.ctx(), id)
	if err != nil {
		m.logger.Warn("delete task", "id", id, "err", err)
	}
	m.refresh()
	return m.notify(notes...)
}

func (m *Model) toggleTask(id string) tea.Cmd {
	if err := m.store.Toggle(m.ctx(), id); err != nil {
		m.refresh()
		return m.notify(saveFailedNote)
	}
	m.refresh()
	return nil
}

func (m *Model) moveTask(id string, delta int) tea.Cmd {
	if err := m.store.Move(m.ctx(), m.taskList.Query(), id, delta); err != nil {
		m.refresh()
		return m.notify(saveFailedNote)
	}
	m.refresh()
	return nil
}

// handleDetailAction applies an action chosen from the detail view.
func (m Model) handleDetailAction(msg detail.ActionMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case detail.ActionEdit:
		t, ok := m.store.Get(msg.TaskID)
		if !ok {
			return m, nil
		}
		return m, m.startEdit(t)
	case detail.ActionToggle:
		return m, m.toggleTask(msg.TaskID)
	case detail.ActionDelete:
		cmd := m.deleteTask(msg.TaskID)
		m.currentView = ViewList
		return m, cmd
	}
	return m, nil
}

// notify shows the last of notes in the status bar and schedules its
// expiry. Every note is logged.
func (m *Model) notify(notes ...model.Notification) tea.Cmd {
	if len(notes) == 0 {
		return nil
	}
	for _, n := range notes {
		switch n.Severity {
		case model.SeverityError:
			m.logger.Error(n.Message)
		case model.SeverityWarning:
			m.logger.Warn(n.Message)
		default:
			m.logger.Debug(n.Message, "severity", n.Severity)
		}
	}

	last := notes[len(notes)-1]
	m.toast = &last
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(m.toastTTL, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	return theme.NotificationStyle(m.toast.Severity).Render(m.toast.Message)
}
