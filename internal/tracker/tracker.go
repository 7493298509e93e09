// Package tracker holds the application state and the command handlers
// that change it. Every mutating handler performs one repository round
// trip and then replaces the in-memory task sequence wholesale with the
// sequence the repository returned.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/store"
	"github.com/nhle/task-tracker/internal/view"
)

var (
	ErrEmptyTitle      = errors.New("task title must not be empty")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrUnknownTab      = errors.New("unknown tab")
)

// State is the transient application state. Only Tasks is persisted.
type State struct {
	Tasks         []model.Task
	Filters       model.Filters
	CurrentTaskID *int64
}

// NewTask carries the create-form input.
type NewTask struct {
	Title       string
	Description string
	Priority    string
	Category    string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now as the source of ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// Tracker mediates between user commands and the repository.
// Handlers are serialized, so at most one round trip is in flight.
type Tracker struct {
	mu    sync.Mutex
	repo  store.Repository
	now   func() time.Time
	state State
}

// New returns a Tracker with empty state. Call Load to populate it.
func New(repo store.Repository, opts ...Option) *Tracker {
	t := &Tracker{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	t.state = initialState()
	return t
}

func initialState() State {
	return State{Tasks: []model.Task{}, Filters: model.DefaultFilters()}
}

// Reset discards all transient state without touching the repository.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = initialState()
}

// Load replaces the task mirror with the persisted sequence.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		log.Printf("tracker: loading tasks: %v", err)
		return err
	}
	t.state.Tasks = tasks
	return nil
}

// Create validates in, builds a new active task, and appends it.
func (t *Tracker) Create(ctx context.Context, in NewTask) (model.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Task{}, ErrEmptyTitle
	}
	priority, err := model.ParsePriority(in.Priority)
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", ErrInvalidPriority, err)
	}
	category := in.Category
	if strings.TrimSpace(category) == "" {
		category = model.DefaultCategory
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.timestamp()
	task := model.Task{
		ID:          t.nextID(now),
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		Category:    category,
		CreatedAt:   now,
	}

	tasks, err := t.repo.SaveTask(ctx, task)
	if err != nil {
		log.Printf("tracker: creating task %q: %v", in.Title, err)
		return model.Task{}, err
	}
	t.state.Tasks = tasks
	log.Printf("tracker: created task %d in %q", task.ID, category)
	return task, nil
}

// Complete marks an active task completed. Unknown, completed, and
// deleted tasks are left alone and changed is false.
func (t *Tracker) Complete(ctx context.Context, id int64) (changed bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.find(id)
	if !ok || !task.IsActive() {
		return false, nil
	}

	now := t.timestamp()
	task.Completed = true
	task.CompletedAt = &now

	if err := t.update(ctx, task); err != nil {
		log.Printf("tracker: completing task %d: %v", id, err)
		return false, err
	}
	log.Printf("tracker: completed task %d", id)
	return true, nil
}

// Delete tombstones an active task. Completed tasks cannot be deleted;
// like unknown ids they are a silent no-op.
func (t *Tracker) Delete(ctx context.Context, id int64) (changed bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.find(id)
	if !ok || task.Completed || task.Deleted {
		return false, nil
	}

	now := t.timestamp()
	task.Deleted = true
	task.DeletedAt = &now

	if err := t.update(ctx, task); err != nil {
		log.Printf("tracker: deleting task %d: %v", id, err)
		return false, err
	}
	log.Printf("tracker: deleted task %d", id)
	return true, nil
}

// SetFilter selects the category shown on tab. An empty category
// selects model.FilterAll.
func (t *Tracker) SetFilter(tab model.Tab, category string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.Filters.Set(tab, category) {
		return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	return nil
}

// Select marks id as the task shown in the detail view and returns it
// from the mirror. A miss leaves the selection unchanged.
func (t *Tracker) Select(id int64) (model.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.find(id)
	if !ok {
		return model.Task{}, false
	}
	t.state.CurrentTaskID = &id
	return task, true
}

// ClearSelection closes the detail view.
func (t *Tracker) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.CurrentTaskID = nil
}

// Current returns the selected task, if any.
func (t *Tracker) Current() (model.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.CurrentTaskID == nil {
		return model.Task{}, false
	}
	return t.find(*t.state.CurrentTaskID)
}

// Snapshot returns a copy of the state that is safe to read while other
// handlers run.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := State{
		Tasks:   make([]model.Task, len(t.state.Tasks)),
		Filters: t.state.Filters,
	}
	copy(s.Tasks, t.state.Tasks)
	if t.state.CurrentTaskID != nil {
		id := *t.state.CurrentTaskID
		s.CurrentTaskID = &id
	}
	return s
}

// Project renders the current state into per-tab views.
func (t *Tracker) Project() view.Projection {
	s := t.Snapshot()
	return view.Project(s.Tasks, s.Filters)
}

func (t *Tracker) find(id int64) (model.Task, bool) {
	for _, task := range t.state.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

func (t *Tracker) update(ctx context.Context, task model.Task) error {
	tasks, err := t.repo.UpdateTask(ctx, task)
	if err != nil {
		return err
	}
	t.state.Tasks = tasks
	return nil
}

// timestamp returns the current time in UTC at millisecond precision,
// the resolution ids and stored timestamps share.
func (t *Tracker) timestamp() time.Time {
	return t.now().UTC().Truncate(time.Millisecond)
}

// nextID derives an id from now, stepping past the largest known id when
// the clock has not advanced beyond it.
func (t *Tracker) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, task := range t.state.Tasks {
		if task.ID >= id {
			id = task.ID + 1
		}
	}
	return id
}
