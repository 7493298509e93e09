package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/task-tracker/internal/tracker"
)

// tasksChangedMsg is sent after a command handler finished its round trip
// with the repository. The tracker already holds the new state; the UI
// only needs to re-project it. closeDetail is set when a complete or
// delete changed the task, which ends any open detail.
type tasksChangedMsg struct {
	status      string
	err         error
	closeDetail bool
}

// loadTasks performs the initial fetch.
func (m *Model) loadTasks() tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		if err := t.Load(context.Background()); err != nil {
			return tasksChangedMsg{err: err}
		}
		return tasksChangedMsg{}
	}
}

// createTask persists a new task built from the form values.
func (m *Model) createTask(in tracker.NewTask) tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		task, err := t.Create(context.Background(), in)
		if err != nil {
			return tasksChangedMsg{err: fmt.Errorf("creating task: %w", err)}
		}
		return tasksChangedMsg{status: fmt.Sprintf("created %q", task.Title)}
	}
}

// completeTask marks an active task as completed.
func (m *Model) completeTask(id int64) tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		changed, err := t.Complete(context.Background(), id)
		if err != nil {
			return tasksChangedMsg{err: fmt.Errorf("completing task: %w", err)}
		}
		if !changed {
			return tasksChangedMsg{status: "nothing to complete"}
		}
		return tasksChangedMsg{status: "task completed", closeDetail: true}
	}
}

// deleteTask moves an active task to the deleted tab.
func (m *Model) deleteTask(id int64) tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		changed, err := t.Delete(context.Background(), id)
		if err != nil {
			return tasksChangedMsg{err: fmt.Errorf("deleting task: %w", err)}
		}
		if !changed {
			return tasksChangedMsg{status: "nothing to delete"}
		}
		return tasksChangedMsg{status: "task deleted", closeDetail: true}
	}
}
