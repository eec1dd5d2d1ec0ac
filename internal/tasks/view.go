package tasks

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nhle/taskflow/internal/model"
)

// Filter selects which tasks appear in a view.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterHigh      Filter = "high"
	FilterMedium    Filter = "medium"
	FilterLow       Filter = "low"
	FilterOverdue   Filter = "overdue"
)

// Filters lists every filter in cycling order.
var Filters = []Filter{
	FilterAll, FilterActive, FilterCompleted,
	FilterHigh, FilterMedium, FilterLow, FilterOverdue,
}

// SortBy orders a view.
type SortBy string

const (
	SortDefault  SortBy = "default"
	SortPriority SortBy = "priority"
	SortDueDate  SortBy = "dueDate"
	SortNewest   SortBy = "newest"
	SortOldest   SortBy = "oldest"
)

// Sorts lists every sort order in cycling order.
var Sorts = []SortBy{SortDefault, SortPriority, SortDueDate, SortNewest, SortOldest}

// Query is the full set of view parameters. The zero value is the identity
// view: every task in collection order.
type Query struct {
	Filter Filter
	Sort   SortBy
	Search string
}

// IsIdentity reports whether q leaves the collection unchanged.
func (q Query) IsIdentity() bool {
	return (q.Filter == "" || q.Filter == FilterAll) &&
		(q.Sort == "" || q.Sort == SortDefault) &&
		q.Search == ""
}

// ParseFilter converts a filter name, case-insensitively.
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	for _, f := range Filters {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// ParseSort converts a sort name, case-insensitively. "due" is accepted
// as shorthand for dueDate.
func ParseSort(s string) (SortBy, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "due") {
		return SortDueDate, nil
	}
	for _, o := range Sorts {
		if strings.EqualFold(s, string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

// NextFilter returns the filter after f, wrapping around.
func NextFilter(f Filter) Filter {
	i := slices.Index(Filters, f)
	return Filters[(i+1)%len(Filters)]
}

// NextSort returns the sort order after o, wrapping around.
func NextSort(o SortBy) SortBy {
	i := slices.Index(Sorts, o)
	return Sorts[(i+1)%len(Sorts)]
}

func (f Filter) match(t model.Task, now time.Time) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterHigh:
		return t.Priority == model.PriorityHigh
	case FilterMedium:
		return t.Priority == model.PriorityMedium
	case FilterLow:
		return t.Priority == model.PriorityLow
	case FilterOverdue:
		return t.IsOverdue(now)
	default:
		return true
	}
}

// DeriveView filters, searches and sorts all into a new slice. The input is
// never modified. Sorting is stable, so ties keep collection order.
func DeriveView(all []model.Task, q Query, now time.Time) []model.Task {
	needle := strings.ToLower(q.Search)

	view := make([]model.Task, 0, len(all))
	for _, t := range all {
		if !q.Filter.match(t, now) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Text), needle) {
			continue
		}
		view = append(view, t)
	}

	switch q.Sort {
	case SortPriority:
		slices.SortStableFunc(view, func(a, b model.Task) int {
			return b.Priority.Rank() - a.Priority.Rank()
		})
	case SortDueDate:
		slices.SortStableFunc(view, compareDue)
	case SortNewest:
		slices.SortStableFunc(view, func(a, b model.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortOldest:
		slices.SortStableFunc(view, func(a, b model.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	}
	return view
}

// compareDue orders dated tasks ascending and puts undated tasks last.
func compareDue(a, b model.Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	default:
		return a.DueDate.Compare(*b.DueDate)
	}
}
