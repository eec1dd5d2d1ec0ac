package model

import (
	"testing"
	"time"
)

func TestPriorityRank(t *testing.T) {
	tests := []struct {
		p    Priority
		want int
	}{
		{PriorityHigh, 3},
		{PriorityMedium, 2},
		{PriorityLow, 1},
		{Priority("urgent"), 0},
	}
	for _, tt := range tests {
		if got := tt.p.Rank(); got != tt.want {
			t.Errorf("Rank(%q) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("  High ")
	if err != nil {
		t.Fatalf("ParsePriority: %v", err)
	}
	if p != PriorityHigh {
		t.Errorf("expected high, got %q", p)
	}

	if _, err := ParsePriority("critical"); err == nil {
		t.Error("expected error for unknown priority")
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{}, false},
		{"past and open", Task{DueDate: &past}, true},
		{"past but completed", Task{DueDate: &past, Completed: true}, false},
		{"future", Task{DueDate: &future}, false},
		{"exactly now", Task{DueDate: &now}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskCloneDoesNotAlias(t *testing.T) {
	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := Task{
		ID:          "a",
		DueDate:     &due,
		Attachments: []Attachment{{ID: "x", Name: "a.txt"}},
	}

	c := orig.Clone()
	c.Attachments[0].Name = "changed"
	*c.DueDate = due.AddDate(1, 0, 0)

	if orig.Attachments[0].Name != "a.txt" {
		t.Error("clone shares attachment storage with original")
	}
	if !orig.DueDate.Equal(due) {
		t.Error("clone shares due date with original")
	}
}
