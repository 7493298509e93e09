package testutil

import (
	"testing"

	"github.com/nhle/task-tracker/internal/store"
)

// NewTestStore creates an in-memory SQLiteKV with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteKV {
	t.Helper()

	s, err := store.NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestRepository wraps NewTestStore in a TaskStore.
func NewTestRepository(t *testing.T) *store.TaskStore {
	t.Helper()
	return store.NewTaskStore(NewTestStore(t))
}
