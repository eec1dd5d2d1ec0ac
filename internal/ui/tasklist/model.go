package tasklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskflow/internal/keys"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/tasks"
	"github.com/nhle/taskflow/internal/theme"
)

// SelectedTaskMsg is sent when a user selects a task to view details.
type SelectedTaskMsg struct {
	TaskID string
}

// QueryChangedMsg is sent when filter, sort or search changes and the
// view must be derived again.
type QueryChangedMsg struct {
	Query tasks.Query
}

// Model is the main task list view component. It renders a derived view
// handed to it by the parent and owns the query that produced it.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	query       tasks.Query
	stats       tasks.Stats
	total       int
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new task list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-3)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	// f, b and d belong to task and timer actions.
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "pgup"))
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "pgdown"))
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search tasks..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		query:       tasks.Query{Filter: tasks.FilterAll, Sort: tasks.SortDefault},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetTasks replaces the rendered view. The selection follows the task with
// keepID when it is still visible.
func (m *Model) SetTasks(view []model.Task, stats tasks.Stats, now time.Time, keepID string) tea.Cmd {
	items := make([]list.Item, len(view))
	sel := -1
	for i, t := range view {
		items[i] = TaskItem{Task: t, Now: now}
		if t.ID == keepID {
			sel = i
		}
	}
	m.stats = stats
	m.total = stats.Total
	cmd := m.list.SetItems(items)
	if sel >= 0 {
		m.list.Select(sel)
	}
	return cmd
}

// SelectedTask returns the highlighted task, if any.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Query returns the active view parameters.
func (m Model) Query() tasks.Query {
	return m.query
}

// SetQuery replaces the view parameters.
func (m *Model) SetQuery(q tasks.Query) tea.Cmd {
	if q.Filter == "" {
		q.Filter = tasks.FilterAll
	}
	if q.Sort == "" {
		q.Sort = tasks.SortDefault
	}
	m.query = q
	if q.Search == "" {
		m.searchInput.Reset()
	}
	return m.queryChanged()
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) queryChanged() tea.Cmd {
	q := m.query
	return func() tea.Msg {
		return QueryChangedMsg{Query: q}
	}
}

// handleSearchKeys processes key input while in search mode. The view
// narrows as the user types.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.query.Search = ""
		return m, m.queryChanged()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != m.query.Search {
		m.query.Search = v
		return m, tea.Batch(cmd, m.queryChanged())
	}
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		t, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTaskMsg{TaskID: t.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.query.Search)
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.query.Filter = tasks.NextFilter(m.query.Filter)
		return m, m.queryChanged()

	case key.Matches(msg, m.keys.CycleSort):
		m.query.Sort = tasks.NextSort(m.query.Sort)
		return m, m.queryChanged()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// FilterSummary describes the active query, or "" for the identity view.
func (m Model) FilterSummary() string {
	if m.query.IsIdentity() {
		return ""
	}
	var parts []string
	if m.query.Filter != tasks.FilterAll {
		parts = append(parts, "filter: "+string(m.query.Filter))
	}
	if m.query.Sort != tasks.SortDefault {
		parts = append(parts, "sort: "+string(m.query.Sort))
	}
	if m.query.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.query.Search))
	}
	return strings.Join(parts, " · ")
}

// View renders the task list view.
func (m Model) View() string {
	header := m.renderStats()

	var body string
	if len(m.list.Items()) == 0 {
		body = m.renderEmptyState()
	} else {
		body = m.list.View()
	}

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, header, searchBar, body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// renderStats draws the statistics header.
func (m Model) renderStats() string {
	s := m.stats
	label := lipgloss.NewStyle().Foreground(theme.ColorGray)
	num := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	cell := func(name string, n int) string {
		return label.Render(name+" ") + num.Render(fmt.Sprintf("%d", n))
	}

	overdue := cell("Overdue", s.Overdue)
	if s.Overdue > 0 {
		overdue = label.Render("Overdue ") + theme.OverdueStyle.Render(fmt.Sprintf("%d", s.Overdue))
	}

	line := strings.Join([]string{
		cell("Total", s.Total),
		cell("Done", s.Completed),
		cell("Active", s.Active),
		cell("High", s.HighPriority),
		overdue,
		label.Render(fmt.Sprintf("%d%%", s.Percent())),
	}, "  ")

	return lipgloss.NewStyle().Padding(0, 1).Width(m.width).Render(line)
}

// renderEmptyState shows guidance text when no tasks are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 3).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.total > 0 {
		return style.Render("No matching tasks.\nTry adjusting your filters.")
	}
	return style.Render("No tasks yet.\n\nPress n to add one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 4
}
