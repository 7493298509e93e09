package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/store"
	"github.com/nhle/task-tracker/internal/tracker"
)

func newTestServer(t *testing.T, kv store.KV) (http.Handler, *tracker.Tracker) {
	t.Helper()

	next := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		next = next.Add(time.Second)
		return next
	}
	tr := tracker.New(store.NewTaskStore(kv), tracker.WithClock(clock))
	require.NoError(t, tr.Load(context.Background()))
	return NewRouter(NewApp(tr)), tr
}

func do(h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t, store.NewMemoryKV())

	rec := do(h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestCreateTask(t *testing.T) {
	h, tr := newTestServer(t, store.NewMemoryKV())

	rec := do(h, http.MethodPost, "/tasks", url.Values{
		"title":    {"Buy milk"},
		"priority": {"low"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?tab=active", rec.Header().Get("Location"))

	tasks := tr.Snapshot().Tasks
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, model.DefaultCategory, tasks[0].Category)
}

func TestCreateTask_Validation(t *testing.T) {
	h, tr := newTestServer(t, store.NewMemoryKV())

	rec := do(h, http.MethodPost, "/tasks", url.Values{"title": {"  "}, "priority": {"low"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), tracker.ErrEmptyTitle.Error())

	rec = do(h, http.MethodPost, "/tasks", url.Values{"title": {"x"}, "priority": {"urgent"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, tr.Snapshot().Tasks)
}

func TestIndexEscapesTaskText(t *testing.T) {
	h, tr := newTestServer(t, store.NewMemoryKV())
	_, err := tr.Create(context.Background(), tracker.NewTask{
		Title:    "<script>alert(1)</script>",
		Priority: "high",
		Category: "<b>Work</b>",
	})
	require.NoError(t, err)

	rec := do(h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, body, "<b>Work</b>")
	assert.Contains(t, body, `id="activeTasks"`)
	assert.Contains(t, body, "No completed tasks yet")
}

func TestDetailAndActions(t *testing.T) {
	h, tr := newTestServer(t, store.NewMemoryKV())
	task, err := tr.Create(context.Background(), tracker.NewTask{Title: "a", Priority: "medium"})
	require.NoError(t, err)
	path := "/tasks/" + itoa(task.ID)

	rec := do(h, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), path+"/complete")
	cur, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, task.ID, cur.ID)

	rec = do(h, http.MethodPost, path+"/complete", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, tr.Snapshot().Tasks[0].Completed)

	// Completed tasks no longer offer actions and cannot be deleted.
	rec = do(h, http.MethodGet, path, nil)
	assert.NotContains(t, rec.Body.String(), path+"/complete")

	rec = do(h, http.MethodPost, path+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.False(t, tr.Snapshot().Tasks[0].Deleted)
}

func TestDelete(t *testing.T) {
	h, tr := newTestServer(t, store.NewMemoryKV())
	task, err := tr.Create(context.Background(), tracker.NewTask{Title: "a", Priority: "medium"})
	require.NoError(t, err)

	rec := do(h, http.MethodPost, "/tasks/"+itoa(task.ID)+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, tr.Snapshot().Tasks[0].Deleted)
}

func TestDetailNotFoundAndBadID(t *testing.T) {
	h, _ := newTestServer(t, store.NewMemoryKV())

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/tasks/42", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/tasks/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/tasks/abc/complete", nil).Code)
}

func TestSetFilter(t *testing.T) {
	h, tr := newTestServer(t, store.NewMemoryKV())

	rec := do(h, http.MethodPost, "/filters/completed", url.Values{"category": {"Work"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?tab=completed", rec.Header().Get("Location"))
	assert.Equal(t, "Work", tr.Snapshot().Filters.Get(model.TabCompleted))

	rec = do(h, http.MethodPost, "/filters/archive", url.Values{"category": {"Work"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTasksAPI(t *testing.T) {
	h, tr := newTestServer(t, store.NewMemoryKV())

	rec := do(h, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	a, err := tr.Create(context.Background(), tracker.NewTask{Title: "a", Priority: "low"})
	require.NoError(t, err)
	_, err = tr.Create(context.Background(), tracker.NewTask{Title: "b", Priority: "low"})
	require.NoError(t, err)
	_, err = tr.Complete(context.Background(), a.ID)
	require.NoError(t, err)

	rec = do(h, http.MethodGet, "/api/tasks", nil)
	var all []model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	rec = do(h, http.MethodGet, "/api/tasks?tab=completed", nil)
	var completed []model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &completed))
	require.Len(t, completed, 1)
	assert.Equal(t, "a", completed[0].Title)

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/tasks?tab=nope", nil).Code)
}

func TestPersistenceErrorIs500(t *testing.T) {
	h, tr := newTestServer(t, brokenKV{})

	rec := do(h, http.MethodPost, "/tasks", url.Values{"title": {"a"}, "priority": {"low"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, tr.Snapshot().Tasks)
}

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (brokenKV) Set(context.Context, string, []byte) error         { return errors.New("disk full") }
func (brokenKV) Close() error                                      { return nil }

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
