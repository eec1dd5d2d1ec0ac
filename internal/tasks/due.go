package tasks

import (
	"fmt"
	"strings"
	"time"
)

// Accepted due date layouts. A bare date means the end of that day.
const (
	DueDateLayout     = "2006-01-02"
	DueDateTimeLayout = "2006-01-02 15:04"
)

// ParseDue parses user input into a due date in loc. Blank input means
// no due date.
func ParseDue(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(DueDateTimeLayout, s, loc); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(DueDateLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q, use YYYY-MM-DD or YYYY-MM-DD HH:MM", s)
	}
	y, m, d := t.Date()
	end := time.Date(y, m, d, 23, 59, 0, 0, loc)
	return &end, nil
}

// FormatDue renders a due date the way ParseDue reads it back.
func FormatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	local := t.Local()
	if local.Hour() == 23 && local.Minute() == 59 {
		return local.Format(DueDateLayout)
	}
	return local.Format(DueDateTimeLayout)
}
