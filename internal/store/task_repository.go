package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nhle/taskflow/internal/model"
)

// TaskRepository persists the whole task collection as one JSON array
// under KeyTasks. There are no partial updates.
type TaskRepository struct {
	kv     KV
	logger *log.Logger
}

// NewTaskRepository wraps kv. A nil logger discards warnings.
func NewTaskRepository(kv KV, logger *log.Logger) *TaskRepository {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TaskRepository{kv: kv, logger: logger}
}

// LoadTasks reads the stored collection. A missing key yields an empty
// list. A payload that is not a JSON array also yields an empty list, and
// individual records that fail schema validation or decoding are skipped;
// both cases are logged as warnings. Only storage failures are returned.
func (r *TaskRepository) LoadTasks(ctx context.Context) ([]model.Task, error) {
	raw, ok, err := r.kv.Get(ctx, KeyTasks)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if !ok || len(bytes.TrimSpace([]byte(raw))) == 0 {
		return []model.Task{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		r.logger.Warn("stored tasks are unreadable, starting empty", "err", err)
		return []model.Task{}, nil
	}

	tasks := make([]model.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		var generic interface{}
		if err := json.Unmarshal(rec, &generic); err != nil {
			r.logger.Warn("skipping unreadable task record", "index", i, "err", err)
			continue
		}
		if err := ValidateTaskRecord(generic); err != nil {
			r.logger.Warn("skipping invalid task record", "index", i, "err", err)
			continue
		}

		var t model.Task
		if err := json.Unmarshal(rec, &t); err != nil {
			r.logger.Warn("skipping undecodable task record", "index", i, "err", err)
			continue
		}
		if seen[t.ID] {
			r.logger.Warn("skipping duplicate task id", "index", i, "id", t.ID)
			continue
		}
		seen[t.ID] = true
		if t.Category == "" {
			t.Category = model.DefaultCategory
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

// SaveTasks replaces the stored collection with tasks.
func (r *TaskRepository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshaling tasks: %w", err)
	}
	if err := r.kv.Set(ctx, KeyTasks, string(data)); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}
