// Package view derives the per-tab task lists, filter options, and
// rendered fragments from the application state. Nothing here mutates
// its input.
package view

import "github.com/nhle/task-tracker/internal/model"

// Option is one entry of a tab's category filter control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// TabView is the renderable projection of a single tab.
type TabView struct {
	Tab model.Tab

	// Tasks is the tab's group restricted by Filter, in sequence order.
	Tasks []model.Task

	// Total counts the tab's group before category filtering.
	Total int

	// Filter is the effective category filter.
	Filter  string
	Options []Option

	Empty EmptyState
}

// Projection holds all three tabs plus the category set they share.
type Projection struct {
	Tabs       []TabView
	Categories []string
}

// Tab returns the projection of tab.
func (p Projection) Tab(tab model.Tab) TabView {
	for _, tv := range p.Tabs {
		if tv.Tab == tab {
			return tv
		}
	}
	return TabView{Tab: tab, Filter: model.FilterAll, Empty: EmptyStateFor(tab)}
}

// Partition splits tasks into the active, completed, and deleted groups,
// preserving sequence order within each group.
func Partition(tasks []model.Task) (active, completed, deleted []model.Task) {
	for _, t := range tasks {
		switch t.Tab() {
		case model.TabActive:
			active = append(active, t)
		case model.TabCompleted:
			completed = append(completed, t)
		case model.TabDeleted:
			deleted = append(deleted, t)
		}
	}
	return active, completed, deleted
}

// FilterByCategory keeps the tasks whose category equals category exactly.
// model.FilterAll keeps everything.
func FilterByCategory(tasks []model.Task, category string) []model.Task {
	if category == "" || category == model.FilterAll {
		return tasks
	}
	var out []model.Task
	for _, t := range tasks {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns the distinct categories across all tasks, in order
// of first appearance.
func Categories(tasks []model.Task) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tasks {
		if seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}

// FilterOptions builds a filter control's options, led by the synthetic
// "all" option. The returned selection is selected if it is still one of
// categories and model.FilterAll otherwise.
func FilterOptions(categories []string, selected string) ([]Option, string) {
	effective := model.FilterAll
	for _, c := range categories {
		if c == selected {
			effective = selected
			break
		}
	}

	opts := make([]Option, 0, len(categories)+1)
	opts = append(opts, Option{
		Value:    model.FilterAll,
		Label:    AllLabel,
		Selected: effective == model.FilterAll,
	})
	for _, c := range categories {
		if c == model.FilterAll {
			continue
		}
		opts = append(opts, Option{Value: c, Label: c, Selected: c == effective})
	}
	return opts, effective
}

// Project derives every tab's view from the full task sequence and the
// current per-tab filters.
func Project(tasks []model.Task, filters model.Filters) Projection {
	active, completed, deleted := Partition(tasks)
	categories := Categories(tasks)

	groups := map[model.Tab][]model.Task{
		model.TabActive:    active,
		model.TabCompleted: completed,
		model.TabDeleted:   deleted,
	}

	p := Projection{Categories: categories}
	for _, tab := range model.Tabs {
		opts, filter := FilterOptions(categories, filters.Get(tab))
		group := groups[tab]
		p.Tabs = append(p.Tabs, TabView{
			Tab:     tab,
			Tasks:   FilterByCategory(group, filter),
			Total:   len(group),
			Filter:  filter,
			Options: opts,
			Empty:   EmptyStateFor(tab),
		})
	}
	return p
}

// NextFilter returns the option value after current, wrapping to "all".
func NextFilter(opts []Option, current string) string {
	if len(opts) == 0 {
		return model.FilterAll
	}
	for i, o := range opts {
		if o.Value == current {
			return opts[(i+1)%len(opts)].Value
		}
	}
	return opts[0].Value
}
