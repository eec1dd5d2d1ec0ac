package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
	Now  time.Time
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Text }

// Title returns the task text for the list.
func (i TaskItem) Title() string { return i.Task.Text }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	parts := []string{string(i.Task.Priority), i.Task.Category}
	if i.Task.DueDate != nil {
		parts = append(parts, "due "+dueLabel(*i.Task.DueDate, i.Now))
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering list items.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderLine(ti, index == m.Index()))
}

func renderLine(ti TaskItem, selected bool) string {
	t := ti.Task

	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	pri := theme.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority))

	text := t.Text
	if t.Completed {
		text = theme.CompletedStyle.Render(text)
	}

	cat := theme.CategoryStyle(t.Category).Render(t.Category)

	due := ""
	if t.DueDate != nil {
		label := " " + dueLabel(*t.DueDate, ti.Now)
		if t.IsOverdue(ti.Now) {
			due = theme.OverdueStyle.Render(label + " OVERDUE")
		} else {
			due = lipgloss.NewStyle().Foreground(theme.ColorGray).Render(label)
		}
	}

	clip := ""
	if n := len(t.Attachments); n > 0 {
		clip = lipgloss.NewStyle().Foreground(theme.ColorMagenta).Render(fmt.Sprintf(" +%d file", n))
		if n > 1 {
			clip += lipgloss.NewStyle().Foreground(theme.ColorMagenta).Render("s")
		}
	}

	line := fmt.Sprintf("%s %s %s %s%s%s", check, pri, text, cat, due, clip)

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// dueLabel returns a human-friendly due date relative to now.
func dueLabel(due, now time.Time) string {
	y1, m1, d1 := due.Local().Date()
	y2, m2, d2 := now.Local().Date()
	dueDay := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)

	switch days := int(dueDay.Sub(today).Hours() / 24); {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1 && days < 7:
		return due.Local().Format("Mon")
	default:
		return due.Local().Format("Jan 02")
	}
}

// priorityLabel returns a short marker for the given priority level.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "!!!"
	case model.PriorityMedium:
		return "!! "
	case model.PriorityLow:
		return "!  "
	default:
		return "?  "
	}
}
