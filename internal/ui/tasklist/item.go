package tasklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/theme"
	"github.com/nhle/task-tracker/internal/view"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	parts := []string{
		view.PriorityLabel(i.Task.Priority),
		i.Task.Category,
		view.FormatDate(i.Task.CreatedAt),
	}
	return strings.Join(parts, " | ")
}

// TaskDelegate implements list.ItemDelegate and draws each task as a
// two-line card.
type TaskDelegate struct{}

// Height returns the number of lines each item takes.
func (d TaskDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d TaskDelegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d TaskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task card.
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderCard(ti.Task, index == m.Index()))
}

// renderCard formats a task as a title line followed by a metadata line.
func renderCard(task model.Task, selected bool) string {
	var prefix string
	switch task.Tab() {
	case model.TabCompleted:
		prefix = "✓"
	case model.TabDeleted:
		prefix = "✗"
	default:
		prefix = "○"
	}

	priBadge := theme.PriorityStyle(task.Priority).Render(view.PriorityLabel(task.Priority))
	titleLine := fmt.Sprintf("%s %s  %s", prefix, task.Title, priBadge)

	meta := []string{
		theme.CategoryStyle.Render(task.Category),
		theme.DateStyle.Render("created " + view.FormatDate(task.CreatedAt)),
	}
	if task.Completed && task.CompletedAt != nil {
		meta = append(meta, theme.DateStyle.Render("completed "+view.FormatDate(*task.CompletedAt)))
	}
	if task.Deleted && task.DeletedAt != nil {
		meta = append(meta, theme.DateStyle.Render("deleted "+view.FormatDate(*task.DeletedAt)))
	}
	metaLine := "  " + strings.Join(meta, "  ")

	if !task.IsActive() {
		titleLine = theme.DimmedStyle.Render(titleLine)
	}

	card := titleLine + "\n" + metaLine
	if selected {
		return theme.SelectedItemStyle.Render(card)
	}
	return theme.ListItemStyle.Render(card)
}
