package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nhle/taskflow/internal/model"
)

func sample() []model.Task {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	due := created.Add(24 * time.Hour)
	return []model.Task{
		{ID: "t1", Text: "Buy milk", Priority: model.PriorityHigh, Category: "shopping", CreatedAt: created, DueDate: &due},
		{ID: "t2", Text: "Stretch", Priority: model.PriorityLow, Category: "health", CreatedAt: created, Completed: true,
			Attachments: []model.Attachment{{ID: "a1", Name: "plan.pdf", MimeType: "application/pdf", SizeBytes: 42, Path: "/tmp/plan.pdf"}}},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, " TOML ": FormatTOML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("expected error for yaml")
	}
}

func TestWriteJSON(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, NewDocument(sample(), now)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if len(doc.Tasks) != 2 || doc.Stats.Total != 2 || doc.Stats.Completed != 1 || doc.Stats.HighPriority != 1 {
		t.Errorf("unexpected document %+v", doc)
	}
	if !strings.Contains(buf.String(), `"dueDate"`) {
		t.Errorf("expected camelCase task fields in %s", buf.String())
	}
}

func TestWriteTOML(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := Write(&buf, FormatTOML, NewDocument(sample(), now)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"[[tasks]]", "[stats]", `text = "Buy milk"`, "[[tasks.attachments]]"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	var doc Document
	if _, err := toml.Decode(out, &doc); err != nil {
		t.Fatalf("output is not valid toml: %v", err)
	}
	if len(doc.Tasks) != 2 || doc.Tasks[1].Attachments[0].Name != "plan.pdf" {
		t.Errorf("unexpected decoded document %+v", doc)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, NewDocument(nil, time.Now())); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"tasks": []`) {
		t.Errorf("expected empty task array, got %s", buf.String())
	}
}
