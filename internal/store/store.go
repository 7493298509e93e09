package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nhle/task-tracker/internal/model"
)

// TasksKey is the single key holding the serialized task sequence.
const TasksKey = "tasks"

// ErrUnknownDriver is returned by Open for an unsupported storage driver.
var ErrUnknownDriver = errors.New("unknown storage driver")

// ErrMemoryPath is returned by Open when ":memory:" is given to a driver
// other than sqlite.
var ErrMemoryPath = errors.New(`":memory:" path is only valid for the sqlite driver`)

// KV is an opaque, durable blob store keyed by string.
type KV interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been set.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	Close() error
}

// Repository defines the task persistence operations. Every operation is a
// full read-modify-write round trip and returns the resulting sequence.
type Repository interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	SaveTask(ctx context.Context, task model.Task) ([]model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) ([]model.Task, error)
	DeleteTaskRecord(ctx context.Context, id int64) ([]model.Task, error)
}

// Open returns the KV selected by cfg.Driver. An empty Path resolves to
// the default file inside model.DefaultDataDir.
func Open(cfg model.StorageConfig) (KV, error) {
	switch cfg.Driver {
	case "", "sqlite":
		if cfg.Path == sqliteMemory {
			return NewSQLiteKV(sqliteMemory)
		}
		path, err := resolvePath(cfg.Path, "tasktracker.db")
		if err != nil {
			return nil, err
		}
		return NewSQLiteKV(path)
	case "file":
		if cfg.Path == sqliteMemory {
			return nil, ErrMemoryPath
		}
		path, err := resolvePath(cfg.Path, "tasks.json")
		if err != nil {
			return nil, err
		}
		return NewFileKV(path)
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

const sqliteMemory = ":memory:"

func resolvePath(path, defaultName string) (string, error) {
	if path == "" {
		path = filepath.Join(model.DefaultDataDir(), defaultName)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return path, nil
}
