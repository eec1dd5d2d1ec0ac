package tasks

import (
	"testing"
	"time"
)

func TestParseDue(t *testing.T) {
	loc := time.UTC

	got, err := ParseDue("", loc)
	if err != nil || got != nil {
		t.Errorf("blank input: got %v, %v", got, err)
	}

	got, err = ParseDue("2026-05-01", loc)
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	if want := time.Date(2026, 5, 1, 23, 59, 0, 0, loc); !got.Equal(want) {
		t.Errorf("date = %v, want %v", got, want)
	}

	got, err = ParseDue(" 2026-05-01 09:30 ", loc)
	if err != nil {
		t.Fatalf("date time: %v", err)
	}
	if want := time.Date(2026, 5, 1, 9, 30, 0, 0, loc); !got.Equal(want) {
		t.Errorf("date time = %v, want %v", got, want)
	}

	if _, err := ParseDue("next tuesday", loc); err == nil {
		t.Error("expected error for free text")
	}
}

func TestFormatDueRoundTrip(t *testing.T) {
	for _, in := range []string{"2026-05-01", "2026-05-01 09:30"} {
		d, err := ParseDue(in, time.Local)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatDue(d); got != in {
			t.Errorf("FormatDue(ParseDue(%q)) = %q", in, got)
		}
	}
	if FormatDue(nil) != "" {
		t.Error("nil due date should format as empty")
	}
}
