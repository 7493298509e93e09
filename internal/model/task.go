package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCategory is assigned to tasks created without a category.
const DefaultCategory = "General"

// Priority is the user-selected urgency of a task.
type Priority string

// Known priority values. Stored records may carry other values; those are
// displayed verbatim.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the known priorities in form order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority converts user input into a known Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q", s)
	}
}

// Task is a single trackable work item. It is never physically removed;
// deletion sets the Deleted tombstone.
type Task struct {
	// ID is the creation time in Unix milliseconds and the sole identity key.
	ID int64 `json:"id" yaml:"id"`

	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Category    string   `json:"category" yaml:"category"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`

	Completed   bool       `json:"completed" yaml:"completed"`
	CompletedAt *time.Time `json:"completedAt" yaml:"completed_at,omitempty"`

	Deleted   bool       `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" yaml:"deleted_at,omitempty"`
}

// Tab is one of the three mutually exclusive task views.
type Tab string

const (
	TabActive    Tab = "active"
	TabCompleted Tab = "completed"
	TabDeleted   Tab = "deleted"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabActive, TabCompleted, TabDeleted}

// ParseTab converts a tab name into a Tab.
func ParseTab(s string) (Tab, bool) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case TabActive, TabCompleted, TabDeleted:
		return t, true
	default:
		return "", false
	}
}

// Tab reports which view the task belongs to.
func (t Task) Tab() Tab {
	switch {
	case t.Deleted:
		return TabDeleted
	case t.Completed:
		return TabCompleted
	default:
		return TabActive
	}
}

// IsActive reports whether the task is neither completed nor deleted.
func (t Task) IsActive() bool { return t.Tab() == TabActive }

// FilterAll is the synthetic filter value that disables category filtering.
const FilterAll = "all"

// Filters holds the selected category filter for each tab.
type Filters struct {
	Active    string `json:"active"`
	Completed string `json:"completed"`
	Deleted   string `json:"deleted"`
}

// DefaultFilters returns filters with every tab set to FilterAll.
func DefaultFilters() Filters {
	return Filters{Active: FilterAll, Completed: FilterAll, Deleted: FilterAll}
}

// Get returns the filter value for tab. Unset values read as FilterAll.
func (f Filters) Get(tab Tab) string {
	var v string
	switch tab {
	case TabActive:
		v = f.Active
	case TabCompleted:
		v = f.Completed
	case TabDeleted:
		v = f.Deleted
	}
	if v == "" {
		return FilterAll
	}
	return v
}

// Set assigns the filter value for tab and reports whether tab is known.
func (f *Filters) Set(tab Tab, category string) bool {
	if category == "" {
		category = FilterAll
	}
	switch tab {
	case TabActive:
		f.Active = category
	case TabCompleted:
		f.Completed = category
	case TabDeleted:
		f.Deleted = category
	default:
		return false
	}
	return true
}
