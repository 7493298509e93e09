package app

import (
	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/ui"
	"github.com/nhle/task-tracker/internal/view"
)

// shiftTab returns the tab delta positions away from current, wrapping
// around in display order.
func shiftTab(current model.Tab, delta int) model.Tab {
	n := len(model.Tabs)
	for i, t := range model.Tabs {
		if t == current {
			return model.Tabs[((i+delta)%n+n)%n]
		}
	}
	return model.TabActive
}

// tabEntries builds the tab bar entries for the projection.
func tabEntries(p view.Projection, current model.Tab) []ui.TabEntry {
	entries := make([]ui.TabEntry, len(model.Tabs))
	for i, t := range model.Tabs {
		entries[i] = ui.TabEntry{
			Label:  view.TabLabel(t),
			Count:  p.Tab(t).Total,
			Active: t == current,
		}
	}
	return entries
}

// filterLabel describes the effective filter of tv for the header.
func filterLabel(tv view.TabView) string {
	if tv.Filter == model.FilterAll {
		return "category: " + view.AllLabel
	}
	return "category: " + tv.Filter
}
