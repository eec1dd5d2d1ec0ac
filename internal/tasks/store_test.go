package tasks_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/store"
	"github.com/nhle/taskflow/internal/tasks"
	"github.com/nhle/taskflow/internal/testutil"
)

// memRepo is an in-memory Repository that records every save.
type memRepo struct {
	initial []model.Task
	saved   [][]model.Task
	loadErr error
	saveErr error
}

func (r *memRepo) LoadTasks(context.Context) ([]model.Task, error) {
	return r.initial, r.loadErr
}

func (r *memRepo) SaveTasks(_ context.Context, ts []model.Task) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, ts)
	return nil
}

var base = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// openStore returns a store with a fixed clock and sequential ids t1, t2...
func openStore(t *testing.T, repo *memRepo) *tasks.Store {
	t.Helper()
	n := 0
	s, err := tasks.Open(context.Background(), repo,
		tasks.WithClock(func() time.Time { return base }),
		tasks.WithIDFunc(func() string { n++; return fmt.Sprintf("t%d", n) }),
	)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func ids(ts []model.Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustAdd(t *testing.T, s *tasks.Store, in tasks.Input) model.Task {
	t.Helper()
	task, _, err := s.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("Add(%q): %v", in.Text, err)
	}
	return task
}

func TestOpen(t *testing.T) {
	t.Run("nil load is empty", func(t *testing.T) {
		s := openStore(t, &memRepo{})
		if s.Len() != 0 || s.All() == nil {
			t.Errorf("expected empty non-nil collection, got %#v", s.All())
		}
	})

	t.Run("load error is returned", func(t *testing.T) {
		_, err := tasks.Open(context.Background(), &memRepo{loadErr: errors.New("disk")})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("sqlite backed", func(t *testing.T) {
		ctx := context.Background()
		repo := store.NewTaskRepository(testutil.NewTestStore(t), nil)
		s, err := tasks.Open(ctx, repo)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if _, _, err := s.Add(ctx, tasks.Input{Text: "Persist me", Priority: model.PriorityLow}); err != nil {
			t.Fatalf("Add: %v", err)
		}

		reopened, err := tasks.Open(ctx, repo)
		if err != nil {
			t.Fatalf("reopen: %v", err)
		}
		all := reopened.All()
		if len(all) != 1 || all[0].Text != "Persist me" || all[0].Category != model.DefaultCategory {
			t.Errorf("unexpected reload %+v", all)
		}
	})
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("blank text is rejected", func(t *testing.T) {
		repo := &memRepo{}
		s := openStore(t, repo)
		for _, text := range []string{"", "   ", "\t\n"} {
			_, notes, err := s.Add(ctx, tasks.Input{Text: text, Priority: model.PriorityHigh})
			if !errors.Is(err, tasks.ErrBlankText) {
				t.Errorf("Add(%q) err = %v, want ErrBlankText", text, err)
			}
			if len(notes) != 1 || notes[0].Severity != model.SeverityError || notes[0].Message != "Task text cannot be empty" {
				t.Errorf("unexpected notifications %+v", notes)
			}
		}
		if s.Len() != 0 || len(repo.saved) != 0 {
			t.Errorf("blank add changed state: len=%d saves=%d", s.Len(), len(repo.saved))
		}
	})

	t.Run("valid add appends open task", func(t *testing.T) {
		repo := &memRepo{}
		s := openStore(t, repo)
		due := base.Add(48 * time.Hour)

		for i, text := range []string{"Buy milk", "Call mom", "Write report"} {
			before := s.Len()
			task, notes, err := s.Add(ctx, tasks.Input{Text: text, Priority: model.PriorityHigh, DueDate: &due})
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if s.Len() != before+1 {
				t.Errorf("len = %d, want %d", s.Len(), before+1)
			}
			if task.Completed {
				t.Error("new task should be open")
			}
			if task.ID != fmt.Sprintf("t%d", i+1) || !task.CreatedAt.Equal(base) {
				t.Errorf("unexpected id/createdAt %q %v", task.ID, task.CreatedAt)
			}
			if task.Category != model.DefaultCategory {
				t.Errorf("category = %q, want default", task.Category)
			}
			if len(notes) != 1 || notes[0].Message != "Task added successfully!" {
				t.Errorf("unexpected notifications %+v", notes)
			}
		}
		if len(repo.saved) != 3 || len(repo.saved[2]) != 3 {
			t.Errorf("expected a full save per add, got %d saves", len(repo.saved))
		}
	})

	t.Run("empty priority defaults to medium", func(t *testing.T) {
		s := openStore(t, &memRepo{})
		task := mustAdd(t, s, tasks.Input{Text: "x"})
		if task.Priority != model.PriorityMedium {
			t.Errorf("priority = %q", task.Priority)
		}
	})

	t.Run("unknown priority is rejected", func(t *testing.T) {
		s := openStore(t, &memRepo{})
		_, _, err := s.Add(ctx, tasks.Input{Text: "x", Priority: "urgent"})
		if !errors.Is(err, tasks.ErrInvalidPriority) {
			t.Errorf("err = %v", err)
		}
		if s.Len() != 0 {
			t.Error("collection changed")
		}
	})

	t.Run("too many attachments", func(t *testing.T) {
		s := openStore(t, &memRepo{})
		atts := make([]model.Attachment, 4)
		_, notes, err := s.Add(ctx, tasks.Input{Text: "x", Attachments: atts})
		if !errors.Is(err, tasks.ErrTooManyAttachments) {
			t.Errorf("err = %v", err)
		}
		if len(notes) != 1 || notes[0].Message != "Maximum 3 attachments allowed" {
			t.Errorf("unexpected notifications %+v", notes)
		}
	})

	t.Run("attachments get ids", func(t *testing.T) {
		s := openStore(t, &memRepo{})
		task := mustAdd(t, s, tasks.Input{Text: "x", Attachments: []model.Attachment{{Path: "/tmp/a.pdf"}}})
		if task.Attachments[0].ID == "" || task.Attachments[0].Name != "a.pdf" {
			t.Errorf("attachment not normalized: %+v", task.Attachments[0])
		}
	})

	t.Run("save failure keeps the task", func(t *testing.T) {
		repo := &memRepo{saveErr: errors.New("read-only")}
		s := openStore(t, repo)
		_, notes, err := s.Add(ctx, tasks.Input{Text: "x"})
		if err == nil {
			t.Fatal("expected save error")
		}
		if s.Len() != 1 {
			t.Errorf("expected in-memory add to stand, len=%d", s.Len())
		}
		if len(notes) != 2 || notes[1].Severity != model.SeverityError {
			t.Errorf("expected success plus failure notification, got %+v", notes)
		}
	})
}

func TestEdit(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	s := openStore(t, repo)
	orig := mustAdd(t, s, tasks.Input{Text: "Draft", Priority: model.PriorityLow, Category: "work"})
	if err := s.Toggle(ctx, orig.ID); err != nil {
		t.Fatal(err)
	}

	due := base.Add(time.Hour)
	notes, err := s.Edit(ctx, orig.ID, tasks.Input{Text: "Final", Priority: model.PriorityHigh, DueDate: &due, Category: "study"})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if len(notes) != 1 || notes[0].Message != "Task updated successfully!" {
		t.Errorf("unexpected notifications %+v", notes)
	}

	got, ok := s.Get(orig.ID)
	if !ok {
		t.Fatal("task missing after edit")
	}
	if got.Text != "Final" || got.Priority != model.PriorityHigh || got.Category != "study" || got.DueDate == nil {
		t.Errorf("fields not replaced: %+v", got)
	}
	if !got.Completed || !got.CreatedAt.Equal(orig.CreatedAt) || got.ID != orig.ID {
		t.Errorf("immutable fields changed: %+v", got)
	}

	t.Run("blank text rejected", func(t *testing.T) {
		_, err := s.Edit(ctx, orig.ID, tasks.Input{Text: " "})
		if !errors.Is(err, tasks.ErrBlankText) {
			t.Errorf("err = %v", err)
		}
		if got, _ := s.Get(orig.ID); got.Text != "Final" {
			t.Errorf("text changed to %q", got.Text)
		}
	})

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		saves := len(repo.saved)
		notes, err := s.Edit(ctx, "missing", tasks.Input{Text: "x"})
		if err != nil || notes != nil {
			t.Errorf("expected silent no-op, got %v %v", notes, err)
		}
		if len(repo.saved) != saves {
			t.Error("no-op edit should not save")
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	s := openStore(t, repo)
	a := mustAdd(t, s, tasks.Input{Text: "a"})
	b := mustAdd(t, s, tasks.Input{Text: "b"})

	notes, err := s.Delete(ctx, a.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(notes) != 1 || notes[0].Message != "Task deleted!" || notes[0].Severity != model.SeverityInfo {
		t.Errorf("unexpected notifications %+v", notes)
	}
	if got := ids(s.All()); !equalIDs(got, []string{b.ID}) {
		t.Errorf("remaining = %v", got)
	}

	saves := len(repo.saved)
	notes, err = s.Delete(ctx, a.ID)
	if err != nil || len(notes) != 0 {
		t.Errorf("second delete should be silent, got %v %v", notes, err)
	}
	if len(repo.saved) != saves {
		t.Error("deleting an absent id should not save")
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, &memRepo{})
	task := mustAdd(t, s, tasks.Input{Text: "flip"})

	if err := s.Toggle(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(task.ID); !got.Completed {
		t.Error("expected completed after one toggle")
	}
	if err := s.Toggle(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(task.ID); got.Completed {
		t.Error("expected open after two toggles")
	}
	if err := s.Toggle(ctx, "missing"); err != nil {
		t.Errorf("toggle of unknown id: %v", err)
	}
}

func TestAllReturnsCopies(t *testing.T) {
	s := openStore(t, &memRepo{})
	mustAdd(t, s, tasks.Input{Text: "original", Attachments: []model.Attachment{{Name: "a"}}})

	all := s.All()
	all[0].Text = "mutated"
	all[0].Attachments[0].Name = "mutated"

	got := s.All()[0]
	if got.Text != "original" || got.Attachments[0].Name != "a" {
		t.Errorf("store state leaked through All(): %+v", got)
	}
}

func TestReorder(t *testing.T) {
	ctx := context.Background()

	build := func(t *testing.T) *tasks.Store {
		s := openStore(t, &memRepo{})
		mustAdd(t, s, tasks.Input{Text: "one", Priority: model.PriorityLow})
		mustAdd(t, s, tasks.Input{Text: "two", Priority: model.PriorityHigh})
		mustAdd(t, s, tasks.Input{Text: "three", Priority: model.PriorityLow})
		mustAdd(t, s, tasks.Input{Text: "four", Priority: model.PriorityHigh})
		mustAdd(t, s, tasks.Input{Text: "five", Priority: model.PriorityLow})
		return s
	}

	tests := []struct {
		name     string
		query    tasks.Query
		from, to int
		want     []string
	}{
		{"identity move down", tasks.Query{}, 0, 2, []string{"t2", "t3", "t1", "t4", "t5"}},
		{"identity move up", tasks.Query{}, 4, 1, []string{"t1", "t5", "t2", "t3", "t4"}},
		{"identity to end", tasks.Query{}, 0, 4, []string{"t2", "t3", "t4", "t5", "t1"}},
		{"same index", tasks.Query{}, 2, 2, []string{"t1", "t2", "t3", "t4", "t5"}},
		// view is t2, t4: moving t4 above t2 must not disturb hidden tasks.
		{"filtered move up", tasks.Query{Filter: tasks.FilterHigh}, 1, 0, []string{"t1", "t4", "t2", "t3", "t5"}},
		// view is t1, t3, t5: t1 lands right after t5.
		{"filtered move down", tasks.Query{Filter: tasks.FilterLow}, 0, 2, []string{"t2", "t3", "t4", "t5", "t1"}},
		// priority sort view is t2, t4, t1, t3, t5.
		{"sorted view", tasks.Query{Sort: tasks.SortPriority}, 0, 3, []string{"t1", "t3", "t2", "t4", "t5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := build(t)
			if err := s.Reorder(ctx, tt.query, tt.from, tt.to); err != nil {
				t.Fatalf("Reorder: %v", err)
			}
			if got := ids(s.All()); !equalIDs(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("out of range", func(t *testing.T) {
		s := build(t)
		for _, idx := range [][2]int{{-1, 0}, {0, 5}, {5, 0}, {0, -1}} {
			err := s.Reorder(ctx, tasks.Query{}, idx[0], idx[1])
			if !errors.Is(err, tasks.ErrIndexOutOfRange) {
				t.Errorf("Reorder(%d,%d) err = %v", idx[0], idx[1], err)
			}
		}
		err := s.Reorder(ctx, tasks.Query{Filter: tasks.FilterHigh}, 0, 2)
		if !errors.Is(err, tasks.ErrIndexOutOfRange) {
			t.Errorf("index beyond filtered view: err = %v", err)
		}
		if got := ids(s.All()); !equalIDs(got, []string{"t1", "t2", "t3", "t4", "t5"}) {
			t.Errorf("order changed: %v", got)
		}
	})
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, &memRepo{})
	for _, text := range []string{"a", "b", "c"} {
		mustAdd(t, s, tasks.Input{Text: text})
	}

	if err := s.Move(ctx, tasks.Query{}, "t3", -1); err != nil {
		t.Fatal(err)
	}
	if got := ids(s.All()); !equalIDs(got, []string{"t1", "t3", "t2"}) {
		t.Errorf("after move up: %v", got)
	}

	if err := s.Move(ctx, tasks.Query{}, "t1", -1); err != nil {
		t.Errorf("move past top should be a no-op, got %v", err)
	}
	if err := s.Move(ctx, tasks.Query{}, "t2", 1); err != nil {
		t.Errorf("move past bottom should be a no-op, got %v", err)
	}
	if err := s.Move(ctx, tasks.Query{}, "nope", 1); err != nil {
		t.Errorf("unknown id should be a no-op, got %v", err)
	}
	if got := ids(s.All()); !equalIDs(got, []string{"t1", "t3", "t2"}) {
		t.Errorf("no-op moves changed order: %v", got)
	}
}

func TestAddThenFilterHigh(t *testing.T) {
	s := openStore(t, &memRepo{})
	mustAdd(t, s, tasks.Input{Text: "Buy milk", Priority: model.PriorityHigh, Category: "general"})

	view := s.View(tasks.Query{Filter: tasks.FilterHigh})
	if len(view) != 1 || view[0].Text != "Buy milk" {
		t.Errorf("view = %+v", view)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, &memRepo{})
	past := base.Add(-time.Hour)

	mustAdd(t, s, tasks.Input{Text: "a", Priority: model.PriorityHigh, DueDate: &past})
	b := mustAdd(t, s, tasks.Input{Text: "b", Priority: model.PriorityHigh, DueDate: &past})
	mustAdd(t, s, tasks.Input{Text: "c", Priority: model.PriorityLow})
	if err := s.Toggle(ctx, b.ID); err != nil {
		t.Fatal(err)
	}

	got := s.Stats()
	want := tasks.Stats{Total: 3, Completed: 1, Active: 2, HighPriority: 2, Overdue: 1}
	if got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
	if got.Percent() != 33 {
		t.Errorf("Percent = %d", got.Percent())
	}
	if (tasks.Stats{}).Percent() != 0 {
		t.Error("empty Percent should be 0")
	}
}
