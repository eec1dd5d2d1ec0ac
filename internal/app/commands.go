package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/store"
	"github.com/nhle/taskflow/internal/tasks"
	"github.com/nhle/taskflow/internal/theme"
	"github.com/nhle/taskflow/internal/ui/command"
)

// executeCommand runs a line entered in the command palette.
func (m Model) executeCommand(line string) (tea.Model, tea.Cmd) {
	c, err := command.Parse(line)
	if err != nil {
		return m, m.notify(model.Warning(capitalize(err.Error())))
	}
	m.logger.Debug("command", "name", c.Name, "arg", c.Arg)

	q := m.taskList.Query()
	switch c.Name {
	case command.NameFilter:
		f, err := tasks.ParseFilter(c.Arg)
		if err != nil {
			return m, m.notify(model.Warning(capitalize(err.Error())))
		}
		q.Filter = f
		return m, m.taskList.SetQuery(q)

	case command.NameSort:
		s, err := tasks.ParseSort(c.Arg)
		if err != nil {
			return m, m.notify(model.Warning(capitalize(err.Error())))
		}
		q.Sort = s
		return m, m.taskList.SetQuery(q)

	case command.NameSearch:
		q.Search = c.Arg
		return m, m.taskList.SetQuery(q)

	case command.NameClear:
		return m, m.taskList.SetQuery(tasks.Query{})

	case command.NameWork:
		var cmd tea.Cmd
		m.focus, cmd = m.focus.SetWorkDuration(c.Minutes)
		return m, cmd

	case command.NameBreak:
		var cmd tea.Cmd
		m.focus, cmd = m.focus.SetBreakDuration(c.Minutes)
		return m, cmd

	case command.NameTheme:
		switch strings.ToLower(c.Arg) {
		case store.ThemeDark:
			return m, m.setTheme(true)
		case store.ThemeLight:
			return m, m.setTheme(false)
		default:
			return m, m.notify(model.Warning("Theme must be dark or light"))
		}

	case command.NameQuit:
		return m.quit()
	}

	return m, nil
}

// applyInitialTheme resolves the startup theme from the saved preference
// and the configured default. Auto keeps the terminal's background.
func (m *Model) applyInitialTheme(configured string) {
	name := configured
	if m.prefs != nil {
		saved, err := m.prefs.Theme(m.ctx(), store.ThemeAuto)
		if err != nil {
			m.logger.Warn("reading theme preference", "err", err)
		}
		if saved != store.ThemeAuto {
			name = saved
		}
	}

	switch name {
	case store.ThemeDark:
		theme.SetDark(true)
	case store.ThemeLight:
		theme.SetDark(false)
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	return m.setTheme(!theme.IsDark())
}

// setTheme switches the palette and saves the choice.
func (m *Model) setTheme(dark bool) tea.Cmd {
	theme.SetDark(dark)
	name := store.ThemeLight
	if dark {
		name = store.ThemeDark
	}
	m.logger.Debug("theme changed", "theme", name)

	if m.prefs == nil {
		return nil
	}
	if err := m.prefs.SetTheme(m.ctx(), name); err != nil {
		m.logger.Error("saving theme", "err", err)
		return m.notify(model.Failure("Theme could not be saved"))
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
