package store_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/store"
	"github.com/nhle/taskflow/internal/testutil"
)

func newRepo(t *testing.T) (*store.TaskRepository, *store.SQLiteStore, *bytes.Buffer) {
	t.Helper()
	kv := testutil.NewTestStore(t)
	var buf bytes.Buffer
	logger := log.New(&buf)
	return store.NewTaskRepository(kv, logger), kv, &buf
}

func TestTaskRepository_MissingKeyIsEmpty(t *testing.T) {
	repo, _, _ := newRepo(t)

	tasks, err := repo.LoadTasks(context.Background())
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", tasks)
	}
}

func TestTaskRepository_SaveStoresJSONArray(t *testing.T) {
	ctx := context.Background()
	repo, kv, _ := newRepo(t)

	due := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	in := []model.Task{
		{
			ID:        "t1",
			Text:      "Buy milk",
			Priority:  model.PriorityHigh,
			Category:  "shopping",
			CreatedAt: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
			DueDate:   &due,
			Attachments: []model.Attachment{
				{ID: "a1", Name: "list.txt", MimeType: "text/plain", SizeBytes: 12, Path: "/tmp/list.txt"},
			},
		},
		{
			ID:        "t2",
			Text:      "Run",
			Completed: true,
			Priority:  model.PriorityLow,
			Category:  "health",
			CreatedAt: time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC),
		},
	}
	if err := repo.SaveTasks(ctx, in); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}

	raw, ok, err := kv.Get(ctx, store.KeyTasks)
	if err != nil || !ok {
		t.Fatalf("expected stored tasks, ok=%v err=%v", ok, err)
	}
	var generic []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		t.Fatalf("stored value is not a JSON array: %v", err)
	}
	if generic[0]["dueDate"] == nil || generic[0]["createdAt"] == nil {
		t.Errorf("expected camelCase date fields, got %v", generic[0])
	}
	if _, has := generic[1]["dueDate"]; has {
		t.Error("expected dueDate to be omitted when absent")
	}

	out, err := repo.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(out) != 2 || out[0].ID != "t1" || out[1].ID != "t2" {
		t.Fatalf("expected order t1,t2, got %+v", out)
	}
	if out[0].DueDate == nil || !out[0].DueDate.Equal(due) {
		t.Errorf("due date lost: %v", out[0].DueDate)
	}
	if len(out[0].Attachments) != 1 || out[0].Attachments[0].Path != "/tmp/list.txt" {
		t.Errorf("attachments lost: %+v", out[0].Attachments)
	}
}

func TestTaskRepository_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	repo, kv, _ := newRepo(t)

	if err := repo.SaveTasks(ctx, nil); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	raw, _, _ := kv.Get(ctx, store.KeyTasks)
	if raw != "[]" {
		t.Errorf("expected [], got %q", raw)
	}
}

func TestTaskRepository_UnparsablePayloadIsEmpty(t *testing.T) {
	ctx := context.Background()
	repo, kv, logs := newRepo(t)

	for _, payload := range []string{"{not json", `{"id":"x"}`, `"tasks"`} {
		if err := kv.Set(ctx, store.KeyTasks, payload); err != nil {
			t.Fatal(err)
		}
		tasks, err := repo.LoadTasks(ctx)
		if err != nil {
			t.Fatalf("LoadTasks(%q): %v", payload, err)
		}
		if len(tasks) != 0 {
			t.Errorf("payload %q: expected empty list, got %d tasks", payload, len(tasks))
		}
	}
	if !strings.Contains(logs.String(), "unreadable") {
		t.Errorf("expected a warning to be logged, got %q", logs.String())
	}
}

func TestTaskRepository_SkipsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	repo, kv, logs := newRepo(t)

	payload := `[
		{"id":"ok","text":"Keep me","priority":"medium","createdAt":"2026-01-02T03:04:05Z","category":""},
		{"id":"bad-priority","text":"x","priority":"urgent","createdAt":"2026-01-02T03:04:05Z"},
		{"id":"blank","text":"   ","priority":"low","createdAt":"2026-01-02T03:04:05Z"},
		{"id":12345,"text":"numeric id","priority":"low","createdAt":"2026-01-02T03:04:05Z"},
		{"id":"ok","text":"duplicate","priority":"low","createdAt":"2026-01-02T03:04:05Z"},
		{"id":"bad-date","text":"x","priority":"low","createdAt":"yesterday"}
	]`
	if err := kv.Set(ctx, store.KeyTasks, payload); err != nil {
		t.Fatal(err)
	}

	tasks, err := repo.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 surviving task, got %d: %+v", len(tasks), tasks)
	}
	if tasks[0].ID != "ok" || tasks[0].Text != "Keep me" {
		t.Errorf("unexpected survivor %+v", tasks[0])
	}
	if tasks[0].Category != model.DefaultCategory {
		t.Errorf("expected empty category to default to %q, got %q", model.DefaultCategory, tasks[0].Category)
	}
	if !strings.Contains(logs.String(), "skipping") {
		t.Errorf("expected skip warnings, got %q", logs.String())
	}
}

func TestValidateTaskRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  string
		wantErr bool
	}{
		{"minimal", `{"id":"a","text":"t","priority":"high","createdAt":"2026-01-01T00:00:00Z"}`, false},
		{"null due date", `{"id":"a","text":"t","priority":"high","createdAt":"2026-01-01T00:00:00Z","dueDate":null}`, false},
		{"missing text", `{"id":"a","priority":"high","createdAt":"2026-01-01T00:00:00Z"}`, true},
		{"four attachments", `{"id":"a","text":"t","priority":"high","createdAt":"2026-01-01T00:00:00Z","attachments":[{"name":"1"},{"name":"2"},{"name":"3"},{"name":"4"}]}`, true},
		{"negative size", `{"id":"a","text":"t","priority":"high","createdAt":"2026-01-01T00:00:00Z","attachments":[{"name":"1","size":-1}]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v interface{}
			if err := json.Unmarshal([]byte(tt.record), &v); err != nil {
				t.Fatal(err)
			}
			err := store.ValidateTaskRecord(v)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTaskRecord err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
