package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nhle/task-tracker/internal/model"
)

// TaskStore implements Repository over a KV, keeping the whole task
// sequence as one JSON array under TasksKey.
type TaskStore struct {
	kv KV
}

// NewTaskStore returns a TaskStore backed by kv.
func NewTaskStore(kv KV) *TaskStore {
	return &TaskStore{kv: kv}
}

// ListTasks returns the full persisted sequence, or an empty sequence if
// nothing has been saved yet.
func (s *TaskStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	raw, ok, err := s.kv.Get(ctx, TasksKey)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if !ok || len(raw) == 0 {
		return []model.Task{}, nil
	}

	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// SaveTask appends task to the end of the sequence. Ids are not checked
// for collisions.
func (s *TaskStore) SaveTask(ctx context.Context, task model.Task) ([]model.Task, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	tasks = append(tasks, task)
	if err := s.write(ctx, tasks); err != nil {
		return nil, fmt.Errorf("saving task %d: %w", task.ID, err)
	}
	return tasks, nil
}

// UpdateTask replaces, in place, the first record whose id matches task.ID.
// A missing id leaves the sequence untouched and is not an error.
func (s *TaskStore) UpdateTask(ctx context.Context, task model.Task) ([]model.Task, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].ID != task.ID {
			continue
		}
		tasks[i] = task
		if err := s.write(ctx, tasks); err != nil {
			return nil, fmt.Errorf("updating task %d: %w", task.ID, err)
		}
		return tasks, nil
	}

	return tasks, nil
}

// DeleteTaskRecord physically removes every record with the given id.
// User-facing deletion is a tombstone written through UpdateTask instead.
func (s *TaskStore) DeleteTaskRecord(ctx context.Context, id int64) ([]model.Task, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}

	if err := s.write(ctx, kept); err != nil {
		return nil, fmt.Errorf("deleting task %d: %w", id, err)
	}
	return kept, nil
}

func (s *TaskStore) write(ctx context.Context, tasks []model.Task) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	return s.kv.Set(ctx, TasksKey, raw)
}
