package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

// Priority levels.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every valid priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the sort weight of the priority (high=3, medium=2, low=1).
// Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the three known levels.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// ParsePriority converts user input into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

// DefaultCategory is applied when a task is saved without a category.
const DefaultCategory = "general"

// Categories are the suggested category tags offered by the entry form.
var Categories = []string{
	"work", "personal", "shopping", "health", "study", "other", DefaultCategory,
}

// MaxAttachments is the upper bound on attachments per task.
const MaxAttachments = 3

// Task is a single to-do item owned by the task store.
type Task struct {
	// ID is assigned at creation and never changes.
	ID string `json:"id" toml:"id"`

	// Text is the display string; never blank.
	Text string `json:"text" toml:"text"`

	Completed bool     `json:"completed" toml:"completed"`
	Priority  Priority `json:"priority" toml:"priority"`

	// DueDate is nil when the task has no deadline.
	DueDate *time.Time `json:"dueDate,omitempty" toml:"due_date,omitempty"`

	// Category is a free-form tag such as "work" or "shopping".
	Category string `json:"category" toml:"category"`

	// CreatedAt is fixed at creation and drives newest/oldest ordering.
	CreatedAt time.Time `json:"createdAt" toml:"created_at"`

	Attachments []Attachment `json:"attachments" toml:"attachments"`
}

// IsOverdue reports whether the task has a due date before now and is
// still open.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// Clone returns a deep copy so callers cannot alias store-owned slices.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.Attachments != nil {
		c.Attachments = make([]Attachment, len(t.Attachments))
		copy(c.Attachments, t.Attachments)
	}
	return c
}

// Attachment describes a local file selected for a task. Only metadata is
// kept; the file itself is never copied or uploaded.
type Attachment struct {
	ID   string `json:"id" toml:"id"`
	Name string `json:"name" toml:"name"`

	// MimeType is derived from the file extension.
	MimeType string `json:"type" toml:"type"`

	SizeBytes int64 `json:"size" toml:"size"`

	// Path is the local file handle the attachment refers to.
	Path string `json:"path" toml:"path"`
}
