package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/store"
	"github.com/nhle/task-tracker/tests/testutil"
)

// fakeClock returns start and advances by one second on every call.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}

func newTracker(t *testing.T) (*Tracker, store.Repository, *fakeClock) {
	t.Helper()

	repo := testutil.NewTestRepository(t)
	clock := &fakeClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	tr := New(repo, WithClock(clock.Now))
	require.NoError(t, tr.Load(context.Background()))
	return tr, repo, clock
}

func mustCreate(t *testing.T, tr *Tracker, in NewTask) model.Task {
	t.Helper()
	task, err := tr.Create(context.Background(), in)
	require.NoError(t, err)
	return task
}

func TestCreate_Defaults(t *testing.T) {
	tr, repo, _ := newTracker(t)
	ctx := context.Background()

	task := mustCreate(t, tr, NewTask{Title: "  Buy milk ", Priority: "low"})

	assert.Equal(t, "  Buy milk ", task.Title, "title is stored as typed")
	assert.Equal(t, model.DefaultCategory, task.Category)
	assert.Equal(t, model.PriorityLow, task.Priority)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.False(t, task.Deleted)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), task.CreatedAt)
	assert.Equal(t, task.CreatedAt.UnixMilli(), task.ID)

	persisted, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, task, persisted[0])
	assert.Equal(t, persisted, tr.Snapshot().Tasks)
}

func TestCreate_KeepsCategoryVerbatim(t *testing.T) {
	tr, _, _ := newTracker(t)

	task := mustCreate(t, tr, NewTask{Title: "x", Priority: "high", Category: "Side Project"})
	assert.Equal(t, "Side Project", task.Category)

	padded := mustCreate(t, tr, NewTask{Title: "y", Priority: "low", Category: "  Work "})
	assert.Equal(t, "  Work ", padded.Category)

	blank := mustCreate(t, tr, NewTask{Title: "z", Priority: "low", Category: "   "})
	assert.Equal(t, model.DefaultCategory, blank.Category)
}

func TestCreate_Validation(t *testing.T) {
	tr, _, _ := newTracker(t)
	ctx := context.Background()

	_, err := tr.Create(ctx, NewTask{Title: "   ", Priority: "low"})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = tr.Create(ctx, NewTask{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidPriority)

	assert.Empty(t, tr.Snapshot().Tasks)
}

func TestCreate_AppendsAndKeepsIDsUnique(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	frozen := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	tr := New(repo, WithClock(func() time.Time { return frozen }))
	ctx := context.Background()

	a := mustCreate(t, tr, NewTask{Title: "a", Priority: "low"})
	b := mustCreate(t, tr, NewTask{Title: "b", Priority: "low"})

	assert.NotEqual(t, a.ID, b.ID)
	assert.Greater(t, b.ID, a.ID)

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, b, tasks[len(tasks)-1])
}

func TestComplete(t *testing.T) {
	tr, _, _ := newTracker(t)
	ctx := context.Background()
	task := mustCreate(t, tr, NewTask{Title: "x", Priority: "medium"})

	changed, err := tr.Complete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	got := tr.Snapshot().Tasks[0]
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	firstCompletedAt := *got.CompletedAt

	changed, err = tr.Complete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, changed, "re-complete is a no-op")
	assert.Equal(t, firstCompletedAt, *tr.Snapshot().Tasks[0].CompletedAt)
}

func TestComplete_UnknownAndDeletedAreNoops(t *testing.T) {
	tr, _, _ := newTracker(t)
	ctx := context.Background()

	changed, err := tr.Complete(ctx, 12345)
	require.NoError(t, err)
	assert.False(t, changed)

	task := mustCreate(t, tr, NewTask{Title: "x", Priority: "medium"})
	_, err = tr.Delete(ctx, task.ID)
	require.NoError(t, err)

	changed, err = tr.Complete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, tr.Snapshot().Tasks[0].Completed)
}

func TestDelete_Tombstones(t *testing.T) {
	tr, repo, _ := newTracker(t)
	ctx := context.Background()
	task := mustCreate(t, tr, NewTask{Title: "x", Priority: "medium"})

	changed, err := tr.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	persisted, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1, "soft delete keeps the record")
	assert.True(t, persisted[0].Deleted)
	assert.NotNil(t, persisted[0].DeletedAt)
	assert.Equal(t, model.TabDeleted, persisted[0].Tab())
}

func TestDelete_CompletedIsNoop(t *testing.T) {
	tr, _, _ := newTracker(t)
	ctx := context.Background()
	task := mustCreate(t, tr, NewTask{Title: "x", Priority: "medium"})
	_, err := tr.Complete(ctx, task.ID)
	require.NoError(t, err)

	changed, err := tr.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	got := tr.Snapshot().Tasks[0]
	assert.False(t, got.Deleted)
	assert.Nil(t, got.DeletedAt)
}

func TestDelete_UnknownIsNoop(t *testing.T) {
	tr, _, _ := newTracker(t)

	changed, err := tr.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSetFilter(t *testing.T) {
	tr, _, _ := newTracker(t)

	require.NoError(t, tr.SetFilter(model.TabActive, "Work"))
	assert.Equal(t, "Work", tr.Snapshot().Filters.Get(model.TabActive))
	assert.Equal(t, model.FilterAll, tr.Snapshot().Filters.Get(model.TabCompleted))

	require.NoError(t, tr.SetFilter(model.TabActive, ""))
	assert.Equal(t, model.FilterAll, tr.Snapshot().Filters.Get(model.TabActive))

	assert.ErrorIs(t, tr.SetFilter("archive", "Work"), ErrUnknownTab)
}

func TestSelect(t *testing.T) {
	tr, _, _ := newTracker(t)
	task := mustCreate(t, tr, NewTask{Title: "x", Priority: "medium"})

	_, ok := tr.Current()
	assert.False(t, ok)

	got, ok := tr.Select(task.ID)
	require.True(t, ok)
	assert.Equal(t, task, got)

	cur, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, task.ID, cur.ID)

	_, ok = tr.Select(999)
	assert.False(t, ok)
	require.NotNil(t, tr.Snapshot().CurrentTaskID, "miss keeps the selection")

	tr.ClearSelection()
	assert.Nil(t, tr.Snapshot().CurrentTaskID)
}

func TestReset(t *testing.T) {
	tr, repo, _ := newTracker(t)
	task := mustCreate(t, tr, NewTask{Title: "x", Priority: "medium"})
	tr.Select(task.ID)
	require.NoError(t, tr.SetFilter(model.TabDeleted, "General"))

	tr.Reset()
	s := tr.Snapshot()
	assert.Empty(t, s.Tasks)
	assert.Nil(t, s.CurrentTaskID)
	assert.Equal(t, model.DefaultFilters(), s.Filters)

	require.NoError(t, tr.Load(context.Background()))
	assert.Len(t, tr.Snapshot().Tasks, 1)

	persisted, err := repo.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Len(t, persisted, 1)
}

func TestSnapshotIsACopy(t *testing.T) {
	tr, _, _ := newTracker(t)
	mustCreate(t, tr, NewTask{Title: "x", Priority: "medium"})

	s := tr.Snapshot()
	s.Tasks[0].Title = "mutated"
	assert.Equal(t, "x", tr.Snapshot().Tasks[0].Title)
}

func TestEndToEnd_BuyMilk(t *testing.T) {
	tr, _, _ := newTracker(t)
	ctx := context.Background()

	task := mustCreate(t, tr, NewTask{Title: "Buy milk", Priority: "low", Category: ""})

	active := tr.Project().Tab(model.TabActive)
	require.Len(t, active.Tasks, 1)
	assert.Equal(t, "General", active.Tasks[0].Category)

	_, err := tr.Complete(ctx, task.ID)
	require.NoError(t, err)

	p := tr.Project()
	assert.Empty(t, p.Tab(model.TabActive).Tasks)
	completed := p.Tab(model.TabCompleted).Tasks
	require.Len(t, completed, 1)
	assert.NotNil(t, completed[0].CompletedAt)

	changed, err := tr.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	p = tr.Project()
	assert.Len(t, p.Tab(model.TabCompleted).Tasks, 1)
	assert.Empty(t, p.Tab(model.TabDeleted).Tasks)
}

func TestRepositoryErrorLeavesStateUnchanged(t *testing.T) {
	boom := errors.New("store offline")
	repo := &flakyRepo{Repository: store.NewTaskStore(store.NewMemoryKV())}
	tr := New(repo)
	ctx := context.Background()

	task := mustCreate(t, tr, NewTask{Title: "x", Priority: "low"})
	repo.err = boom

	_, err := tr.Complete(ctx, task.ID)
	assert.ErrorIs(t, err, boom)
	assert.False(t, tr.Snapshot().Tasks[0].Completed)

	_, err = tr.Create(ctx, NewTask{Title: "y", Priority: "low"})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, tr.Snapshot().Tasks, 1)

	assert.ErrorIs(t, tr.Load(ctx), boom)
}

type flakyRepo struct {
	store.Repository
	err error
}

func (r *flakyRepo) ListTasks(ctx context.Context) ([]model.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.Repository.ListTasks(ctx)
}

func (r *flakyRepo) SaveTask(ctx context.Context, t model.Task) ([]model.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.Repository.SaveTask(ctx, t)
}

func (r *flakyRepo) UpdateTask(ctx context.Context, t model.Task) ([]model.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.Repository.UpdateTask(ctx, t)
}
