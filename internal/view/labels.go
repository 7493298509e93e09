package view

import (
	"time"

	"github.com/nhle/task-tracker/internal/model"
)

// AllLabel is the display text of the synthetic "all" filter option.
const AllLabel = "All"

// NoDescription is shown in place of an empty description.
const NoDescription = "No description"

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

var priorityLabels = map[model.Priority]string{
	model.PriorityLow:    "Low",
	model.PriorityMedium: "Medium",
	model.PriorityHigh:   "High",
}

// PriorityLabel returns the display label for p. Unknown values are
// returned verbatim.
func PriorityLabel(p model.Priority) string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

// TabLabel returns the display name for tab.
func TabLabel(tab model.Tab) string {
	switch tab {
	case model.TabActive:
		return "Active"
	case model.TabCompleted:
		return "Completed"
	case model.TabDeleted:
		return "Deleted"
	default:
		return string(tab)
	}
}

// EmptyState is the message shown when a tab has nothing to list.
type EmptyState struct {
	Title string
	Hint  string
}

// EmptyStateFor returns the fixed empty-state message for tab.
func EmptyStateFor(tab model.Tab) EmptyState {
	switch tab {
	case model.TabCompleted:
		return EmptyState{
			Title: "No completed tasks yet",
			Hint:  "Completed tasks will appear here",
		}
	case model.TabDeleted:
		return EmptyState{
			Title: "No deleted tasks yet",
			Hint:  "Deleted tasks will appear here",
		}
	default:
		return EmptyState{
			Title: "No active tasks yet",
			Hint:  "Create a new task to get started",
		}
	}
}

// FormatDate renders a calendar date in local time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}

// FormatDateTime renders a timestamp in local time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateTimeLayout)
}

// FormatOptionalDateTime renders t, or "-" when unset.
func FormatOptionalDateTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return FormatDateTime(*t)
}
