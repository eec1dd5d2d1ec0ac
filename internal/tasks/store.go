package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nhle/taskflow/internal/model"
)

// Repository loads and saves the whole task collection.
type Repository interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
}

// Input carries the user-editable fields of a task for Add and Edit.
type Input struct {
	Text        string
	Priority    model.Priority
	DueDate     *time.Time
	Category    string
	Attachments []model.Attachment
}

// Store owns the ordered task collection. Every mutation goes through one
// of its methods and is followed by a full save through the repository.
// A Store is not safe for concurrent use; the TUI and CLI drive it from a
// single goroutine.
type Store struct {
	repo   Repository
	tasks  []model.Task
	logger *log.Logger

	now             func() time.Time
	newID           func() string
	defaultCategory string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for createdAt and overdue checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides the task id generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultCategory sets the category applied when Input.Category is blank.
func WithDefaultCategory(c string) Option {
	return func(s *Store) {
		if strings.TrimSpace(c) != "" {
			s.defaultCategory = c
		}
	}
}

func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Open loads the collection from repo once and returns a ready Store.
func Open(ctx context.Context, repo Repository, opts ...Option) (*Store, error) {
	s := &Store{
		repo:            repo,
		logger:          log.New(io.Discard),
		now:             time.Now,
		newID:           newTaskID,
		defaultCategory: model.DefaultCategory,
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded, err := repo.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening task store: %w", err)
	}
	s.tasks = loaded
	if s.tasks == nil {
		s.tasks = []model.Task{}
	}
	s.logger.Debug("task store opened", "count", len(s.tasks))
	return s, nil
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// validate checks in and returns the matching error notification on failure.
func (s *Store) validate(in Input) (Input, *model.Notification, error) {
	if strings.TrimSpace(in.Text) == "" {
		n := model.Failure("Task text cannot be empty")
		return in, &n, ErrBlankText
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !in.Priority.Valid() {
		n := model.Failure(fmt.Sprintf("Unknown priority %q", in.Priority))
		return in, &n, fmt.Errorf("%w: %q", ErrInvalidPriority, in.Priority)
	}
	if len(in.Attachments) > model.MaxAttachments {
		n := model.Failure(fmt.Sprintf("Maximum %d attachments allowed", model.MaxAttachments))
		return in, &n, ErrTooManyAttachments
	}
	if strings.TrimSpace(in.Category) == "" {
		in.Category = s.defaultCategory
	}
	in.Attachments = normalizeAttachments(in.Attachments)
	if in.DueDate != nil {
		d := *in.DueDate
		in.DueDate = &d
	}
	return in, nil, nil
}

// Add appends a new open task built from in.
func (s *Store) Add(ctx context.Context, in Input) (model.Task, []model.Notification, error) {
	in, fail, err := s.validate(in)
	if err != nil {
		return model.Task{}, []model.Notification{*fail}, err
	}

	t := model.Task{
		ID:          s.newID(),
		Text:        in.Text,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Category:    in.Category,
		CreatedAt:   s.now(),
		Attachments: in.Attachments,
	}
	s.tasks = append(s.tasks, t)

	notes := []model.Notification{model.Success("Task added successfully!")}
	if err := s.persist(ctx); err != nil {
		return t.Clone(), append(notes, saveFailed), err
	}
	return t.Clone(), notes, nil
}

// Edit replaces the mutable fields of the task with the given id. The id,
// completion flag and creation time are preserved. An unknown id is a
// silent no-op.
func (s *Store) Edit(ctx context.Context, id string, in Input) ([]model.Notification, error) {
	in, fail, err := s.validate(in)
	if err != nil {
		return []model.Notification{*fail}, err
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	t := &s.tasks[i]
	t.Text = in.Text
	t.Priority = in.Priority
	t.DueDate = in.DueDate
	t.Category = in.Category
	t.Attachments = in.Attachments

	notes := []model.Notification{model.Success("Task updated successfully!")}
	if err := s.persist(ctx); err != nil {
		return append(notes, saveFailed), err
	}
	return notes, nil
}

// Delete removes the task with the given id. Deleting an absent id does
// nothing and emits nothing.
func (s *Store) Delete(ctx context.Context, id string) ([]model.Notification, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)

	notes := []model.Notification{model.Info("Task deleted!")}
	if err := s.persist(ctx); err != nil {
		return append(notes, saveFailed), err
	}
	return notes, nil
}

// Toggle flips the completion flag of the task with the given id.
func (s *Store) Toggle(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.persist(ctx)
}

// Reorder moves the task at view index from to view index to, where both
// indices address DeriveView(All(), q, now). The move is applied to the
// underlying collection by id: the moved task lands directly after the
// target when moving down and directly before it when moving up, so tasks
// hidden by q keep their relative order.
func (s *Store) Reorder(ctx context.Context, q Query, from, to int) error {
	view := DeriveView(s.tasks, q, s.now())
	if from < 0 || from >= len(view) || to < 0 || to >= len(view) {
		return fmt.Errorf("%w: move %d to %d in view of %d", ErrIndexOutOfRange, from, to, len(view))
	}
	if from == to {
		return nil
	}

	src := s.indexOf(view[from].ID)
	moving := s.tasks[src]
	s.tasks = append(s.tasks[:src], s.tasks[src+1:]...)

	dst := s.indexOf(view[to].ID)
	if from < to {
		dst++
	}
	s.tasks = append(s.tasks, model.Task{})
	copy(s.tasks[dst+1:], s.tasks[dst:])
	s.tasks[dst] = moving

	return s.persist(ctx)
}

// Move shifts the task with the given id by delta positions within the view
// for q. Moves past either end of the view and unknown ids are no-ops.
func (s *Store) Move(ctx context.Context, q Query, id string, delta int) error {
	view := DeriveView(s.tasks, q, s.now())
	from := -1
	for i, t := range view {
		if t.ID == id {
			from = i
			break
		}
	}
	to := from + delta
	if from < 0 || delta == 0 || to < 0 || to >= len(view) {
		return nil
	}
	return s.Reorder(ctx, q, from, to)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// All returns a copy of the collection in stored order.
func (s *Store) All() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// View derives the display list for q at the store's current time.
func (s *Store) View(q Query) []model.Task {
	return DeriveView(s.All(), q, s.now())
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

var saveFailed = model.Failure("Changes could not be saved")

// persist writes the full collection. The in-memory change stands even when
// the write fails.
func (s *Store) persist(ctx context.Context) error {
	if err := s.repo.SaveTasks(ctx, s.All()); err != nil {
		s.logger.Error("saving tasks failed", "count", len(s.tasks), "err", err)
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}
