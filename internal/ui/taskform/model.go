package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/tasks"
	"github.com/nhle/taskflow/internal/theme"
)

// SubmittedMsg is dispatched when the form is completed. ID is empty for a
// new task. Notes carries warnings for fields that kept their previous
// value because they no longer resolved at submit time.
type SubmittedMsg struct {
	ID    string
	Input tasks.Input
	Notes []model.Notification
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	text        string
	priority    model.Priority
	dueDate     string
	category    string
	attachments string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form            *huh.Form
	fb              *formBindings
	editMode        bool
	editID          string
	existing        []model.Attachment
	existingDue     *time.Time
	defaultCategory string
	width           int
	height          int
}

// New creates a new task form model.
func New(defaultCategory string, width, height int) Model {
	if strings.TrimSpace(defaultCategory) == "" {
		defaultCategory = model.DefaultCategory
	}
	return Model{
		fb:              &formBindings{priority: model.PriorityMedium, category: defaultCategory},
		defaultCategory: defaultCategory,
		width:           width,
		height:          height,
	}
}

// StartCreate initializes the form for a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.existing = nil
	m.existingDue = nil
	*m.fb = formBindings{priority: model.PriorityMedium, category: m.defaultCategory}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing task.
func (m *Model) StartEdit(t model.Task) tea.Cmd {
	m.editMode = true
	m.editID = t.ID
	m.existing = t.Attachments
	m.existingDue = t.DueDate

	paths := make([]string, 0, len(t.Attachments))
	for _, a := range t.Attachments {
		paths = append(paths, a.Path)
	}
	*m.fb = formBindings{
		text:        t.Text,
		priority:    t.Priority,
		dueDate:     tasks.FormatDue(t.DueDate),
		category:    t.Category,
		attachments: strings.Join(paths, ", "),
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.form = nil
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	priorities := make([]huh.Option[model.Priority], len(model.Priorities))
	for i, p := range model.Priorities {
		priorities[i] = huh.NewOption(strings.ToUpper(string(p[:1]))+string(p[1:]), p)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder("What needs to be done?").
				Value(&m.fb.text).
				Validate(validateRequired("Task")),
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(priorities...).
				Value(&m.fb.priority),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD or YYYY-MM-DD HH:MM (optional)").
				Value(&m.fb.dueDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Category").
				Placeholder(m.defaultCategory).
				Suggestions(model.Categories).
				Value(&m.fb.category),
			huh.NewInput().
				Title("Attachments").
				Placeholder(fmt.Sprintf("file paths, comma separated (max %d)", model.MaxAttachments)).
				Value(&m.fb.attachments).
				Validate(m.validateAttachments),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	var notes []model.Notification

	due, err := tasks.ParseDue(m.fb.dueDate, time.Local)
	if err != nil {
		due = m.existingDue
		notes = append(notes, model.Warning("Due date unchanged: "+err.Error()))
	}
	atts, err := resolveAttachments(m.existing, m.fb.attachments)
	if err != nil {
		atts = m.existing
		notes = append(notes, model.Warning("Attachments unchanged: "+err.Error()))
	}

	in := tasks.Input{
		Text:        strings.TrimSpace(m.fb.text),
		Priority:    m.fb.priority,
		DueDate:     due,
		Category:    strings.TrimSpace(m.fb.category),
		Attachments: atts,
	}
	id := ""
	if m.editMode {
		id = m.editID
	}
	return func() tea.Msg { return SubmittedMsg{ID: id, Input: in, Notes: notes} }
}

// resolveAttachments turns the comma separated path list into attachments.
// Paths already attached keep their existing metadata, so a file that has
// since moved does not block the edit.
func resolveAttachments(existing []model.Attachment, raw string) ([]model.Attachment, error) {
	paths := splitPaths(raw)
	if len(paths) > model.MaxAttachments {
		return nil, fmt.Errorf("maximum %d attachments allowed", model.MaxAttachments)
	}

	byPath := make(map[string]model.Attachment, len(existing))
	for _, a := range existing {
		byPath[a.Path] = a
	}

	var out []model.Attachment
	for _, p := range paths {
		if a, ok := byPath[p]; ok {
			out = append(out, a)
			continue
		}
		a, err := tasks.AttachmentFromPath(p)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func splitPaths(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (m *Model) validateAttachments(s string) error {
	_, err := resolveAttachments(m.existing, s)
	return err
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s text cannot be empty", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	_, err := tasks.ParseDue(s, time.Local)
	return err
}
