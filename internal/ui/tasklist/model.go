package tasklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/task-tracker/internal/keys"
	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/theme"
	"github.com/nhle/task-tracker/internal/view"
)

// SelectedTaskMsg is sent when a user selects a task to view details.
type SelectedTaskMsg struct {
	TaskID int64
}

// Model is the task list for a single tab.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	tab    view.TabView
	width  int
	height int
}

// New creates a new task list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, TaskDelegate{}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return Model{
		list:   l,
		keys:   k,
		tab:    view.TabView{Tab: model.TabActive, Empty: view.EmptyStateFor(model.TabActive)},
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the list.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetTab replaces the list contents with the projected tab. The cursor
// stays on the same task when it is still visible.
func (m *Model) SetTab(tv view.TabView) tea.Cmd {
	var keepID int64
	keep := false
	if cur, ok := m.SelectedTask(); ok && tv.Tab == m.tab.Tab {
		keepID, keep = cur.ID, true
	}

	m.tab = tv
	items := make([]list.Item, len(tv.Tasks))
	index := 0
	for i, task := range tv.Tasks {
		items[i] = TaskItem{Task: task}
		if keep && task.ID == keepID {
			index = i
		}
	}

	cmd := m.list.SetItems(items)
	if len(items) > 0 {
		if !keep {
			index = 0
		}
		m.list.Select(index)
	}
	return cmd
}

// Tab returns the projected tab currently shown.
func (m Model) Tab() view.TabView {
	return m.tab
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Select) {
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTaskMsg{TaskID: task.ID}
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows the tab's empty-state title and hint.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	title := lipgloss.NewStyle().Bold(true).Render(m.tab.Empty.Title)
	text := title + "\n\n" + m.tab.Empty.Hint
	if m.tab.Filter != model.FilterAll && m.tab.Total > 0 {
		text = title + "\n\nNo tasks in category " + m.tab.Filter + ". Press f to change the filter."
	}
	return style.Render(text)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
