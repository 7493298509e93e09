package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/tracker"
	"github.com/nhle/task-tracker/internal/ui"
	"github.com/nhle/task-tracker/internal/ui/command"
	"github.com/nhle/task-tracker/internal/ui/detail"
	helpview "github.com/nhle/task-tracker/internal/ui/help"
	"github.com/nhle/task-tracker/internal/ui/taskform"
	"github.com/nhle/task-tracker/internal/ui/tasklist"
	"github.com/nhle/task-tracker/internal/view"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewTaskCreate
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the tracker.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	tracker      *tracker.Tracker
	keys         *KeyMap
	tab          model.Tab
	projection   view.Projection
	taskList     tasklist.Model
	detail       detail.Model
	helpView     helpview.Model
	commandView  command.Model
	taskForm     taskform.Model
	ready        bool
	status       string
	errMessage   string
}

// New creates a new root application model over the given tracker,
// starting on defaultTab.
func New(t *tracker.Tracker, defaultTab model.Tab) Model {
	keys := DefaultKeyMap()
	if _, ok := model.ParseTab(string(defaultTab)); !ok {
		defaultTab = model.TabActive
	}

	return Model{
		currentView: ViewList,
		tracker:     t,
		keys:        keys,
		tab:         defaultTab,
		projection:  t.Project(),
		taskList:    tasklist.New(keys, 80, 24),
		detail:      detail.New(keys, 80, 24),
		helpView:    helpview.New(keys, 80, 24),
		commandView: command.New(80, 24),
		taskForm:    taskform.New(80, 24),
	}
}

// Init returns the initial command that loads the persisted tasks.
func (m Model) Init() tea.Cmd {
	return m.loadTasks()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.taskForm.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case tasksChangedMsg:
		if msg.err != nil {
			m.errMessage = msg.err.Error()
		} else {
			m.errMessage = ""
			m.status = msg.status
			if msg.closeDetail && m.currentView == ViewDetail {
				m.closeDetail()
			}
		}
		return m, m.refresh()

	case tasklist.SelectedTaskMsg:
		task, ok := m.tracker.Select(msg.TaskID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetTask(&task)
		return m, nil

	case detail.BackMsg:
		m.closeDetail()
		return m, nil

	case detail.ActionMsg:
		return m, m.runAction(msg.Action, msg.TaskID)

	case taskform.TaskSubmittedMsg:
		m.currentView = ViewList
		return m, m.createTask(msg.Task)

	case taskform.FormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		m.errMessage = ""

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// The form and the palette own every other key while open.
		if m.currentView == ViewTaskCreate || m.currentView == ViewCommand {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case key.Matches(msg, m.keys.Command):
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, m.commandView.Focus()

		case key.Matches(msg, m.keys.Back) && m.currentView == ViewHelp:
			m.currentView = m.previousView
			return m, nil
		}

		if m.currentView == ViewList {
			if cmd, handled := m.handleListKey(msg); handled {
				return m, cmd
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleListKey processes the list-only shortcuts. It reports false for
// keys the task list itself should see.
func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.New):
		return m.openForm(), true

	case key.Matches(msg, m.keys.Complete):
		if task, ok := m.taskList.SelectedTask(); ok && task.IsActive() {
			return m.completeTask(task.ID), true
		}
		return nil, true

	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.taskList.SelectedTask(); ok && task.IsActive() {
			return m.deleteTask(task.ID), true
		}
		return nil, true

	case key.Matches(msg, m.keys.Filter):
		tv := m.projection.Tab(m.tab)
		return m.setFilter(view.NextFilter(tv.Options, tv.Filter)), true

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(shiftTab(m.tab, 1)), true

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(shiftTab(m.tab, -1)), true

	case key.Matches(msg, m.keys.TabActive):
		return m.switchTab(model.TabActive), true

	case key.Matches(msg, m.keys.TabCompleted):
		return m.switchTab(model.TabCompleted), true

	case key.Matches(msg, m.keys.TabDeleted):
		return m.switchTab(model.TabDeleted), true
	}
	return nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewTaskCreate:
		m.taskForm, cmd = m.taskForm.Update(msg)
	}

	return m, cmd
}

// refresh re-projects the tracker state into the list and, when open,
// the detail view.
func (m *Model) refresh() tea.Cmd {
	m.projection = m.tracker.Project()
	cmd := m.taskList.SetTab(m.projection.Tab(m.tab))

	if m.currentView == ViewDetail || m.previousView == ViewDetail {
		if cur, ok := m.tracker.Current(); ok {
			m.detail.SetTask(&cur)
		}
	}
	return cmd
}

// switchTab shows tab and closes any open detail.
func (m *Model) switchTab(tab model.Tab) tea.Cmd {
	m.tab = tab
	if m.currentView == ViewDetail {
		m.closeDetail()
	}
	return m.refresh()
}

func (m *Model) closeDetail() {
	m.tracker.ClearSelection()
	m.detail.SetTask(nil)
	m.currentView = ViewList
}

// setFilter applies category to the current tab's filter.
func (m *Model) setFilter(category string) tea.Cmd {
	if err := m.tracker.SetFilter(m.tab, category); err != nil {
		m.errMessage = err.Error()
		return nil
	}
	return m.refresh()
}

// openForm switches to the new task form.
func (m *Model) openForm() tea.Cmd {
	m.previousView = ViewList
	m.currentView = ViewTaskCreate
	m.taskForm.SetCategories(m.projection.Categories)
	return m.taskForm.Start()
}

// runAction executes a detail or palette action against id.
func (m *Model) runAction(action string, id int64) tea.Cmd {
	switch action {
	case detail.ActionComplete:
		return m.completeTask(id)
	case detail.ActionDelete:
		return m.deleteTask(id)
	default:
		return nil
	}
}

// targetTask returns the task a palette action applies to: the open
// detail, else the list cursor.
func (m Model) targetTask() (model.Task, bool) {
	if m.currentView == ViewDetail {
		return m.detail.Task()
	}
	return m.taskList.SelectedTask()
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(input string) tea.Cmd {
	c, err := command.Parse(input)
	if err != nil {
		m.errMessage = err.Error()
		return nil
	}

	switch c.Kind {
	case command.KindNew:
		return m.openForm()
	case command.KindComplete, command.KindDelete:
		task, ok := m.targetTask()
		if !ok || !task.IsActive() {
			m.errMessage = "no active task selected"
			return nil
		}
		if c.Kind == command.KindComplete {
			return m.completeTask(task.ID)
		}
		return m.deleteTask(task.ID)
	case command.KindTab:
		return m.switchTab(c.Tab)
	case command.KindFilter:
		return m.setFilter(c.Category)
	case command.KindHelp:
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil
	case command.KindQuit:
		return tea.Quit
	default:
		return nil
	}
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	tv := m.projection.Tab(m.tab)
	header := m.layout.RenderHeader("Task Tracker", filterLabel(tv))
	tabBar := m.layout.RenderTabBar(tabEntries(m.projection, m.tab))
	content := m.renderContent()

	var statusBar string
	if m.errMessage != "" {
		statusBar = m.layout.RenderErrorBar(m.errMessage)
	} else {
		statusBar = m.layout.RenderStatusBar(m.keyHints())
	}

	return m.layout.RenderWithFrame(header, tabBar, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewTaskCreate:
		return m.taskForm.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | up/down history | esc close"
	case ViewDetail:
		return m.detail.Hints()
	case ViewTaskCreate:
		return "enter submit | esc cancel"
	default:
		hints := "q quit | ? help | n new | f filter | 1/2/3 tabs"
		if m.tab == model.TabActive {
			hints = "q quit | ? help | n new | x complete | d delete | f filter | 1/2/3 tabs"
		}
		if m.status != "" {
			return fmt.Sprintf("%s | %s", m.status, hints)
		}
		return hints
	}
}
