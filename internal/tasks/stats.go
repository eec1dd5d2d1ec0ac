package tasks

import (
	"time"

	"github.com/nhle/taskflow/internal/model"
)

// Stats summarizes the collection for the statistics header.
type Stats struct {
	Total        int `json:"total" toml:"total"`
	Completed    int `json:"completed" toml:"completed"`
	Active       int `json:"active" toml:"active"`
	HighPriority int `json:"highPriority" toml:"high_priority"`
	Overdue      int `json:"overdue" toml:"overdue"`
}

// Percent returns the share of completed tasks, 0 for an empty list.
func (s Stats) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Completed * 100 / s.Total
}

// ComputeStats counts tasks by state at time now.
func ComputeStats(all []model.Task, now time.Time) Stats {
	st := Stats{Total: len(all)}
	for _, t := range all {
		if t.Completed {
			st.Completed++
		}
		if t.Priority == model.PriorityHigh {
			st.HighPriority++
		}
		if t.IsOverdue(now) {
			st.Overdue++
		}
	}
	st.Active = st.Total - st.Completed
	return st
}

// Stats counts the store's tasks at the store's current time.
func (s *Store) Stats() Stats {
	return ComputeStats(s.tasks, s.now())
}
