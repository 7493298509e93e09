package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nhle/task-tracker/internal/keys"
	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/theme"
	"github.com/nhle/task-tracker/internal/view"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// ActionMsg signals the parent to execute an action on the current task.
type ActionMsg struct {
	Action string
	TaskID int64
}

// Actions carried by ActionMsg.
const (
	ActionComplete = "complete"
	ActionDelete   = "delete"
)

// Model is the task detail view component.
type Model struct {
	task     *model.Task
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.Complete):
			if m.task != nil && m.task.IsActive() {
				id := m.task.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: ActionComplete, TaskID: id}
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if m.task != nil && m.task.IsActive() {
				id := m.task.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: ActionDelete, TaskID: id}
				}
			}
			return m, nil
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.task == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No task selected")
	}

	return m.viewport.View()
}

// Hints returns the status bar hints for the shown task. Actions are
// offered for active tasks only.
func (m Model) Hints() string {
	if m.task != nil && m.task.IsActive() {
		return "esc back | x complete | d delete | j/k scroll"
	}
	return "esc back | j/k scroll"
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.task == nil {
		return ""
	}

	task := m.task
	var sections []string

	// Title
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(m.wrap(task.Title)))

	// Badges line: status + priority + category
	tab := task.Tab()
	statusBadge := theme.StatusStyle(tab).Render(view.TabLabel(tab))
	priBadge := theme.PriorityStyle(task.Priority).Render(view.PriorityLabel(task.Priority))
	catBadge := theme.CategoryStyle.Render(task.Category)

	badgeLine := lipgloss.JoinHorizontal(
		lipgloss.Top, statusBadge, "  ", priBadge, "  ", catBadge,
	)
	sections = append(sections, badgeLine, "")

	// Metadata table
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	sections = append(sections, fmt.Sprintf(
		"%s    %s",
		metaStyle.Render("Created:"),
		valStyle.Render(view.FormatDateTime(task.CreatedAt)),
	))
	if task.Completed {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Completed:"),
			valStyle.Render(view.FormatOptionalDateTime(task.CompletedAt)),
		))
	}
	if task.Deleted {
		sections = append(sections, fmt.Sprintf(
			"%s    %s",
			metaStyle.Render("Deleted:"),
			valStyle.Render(view.FormatOptionalDateTime(task.DeletedAt)),
		))
	}

	// Separator
	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 0)))
	sections = append(sections, "", separator, "")

	// Description
	descHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections = append(sections, descHeaderStyle.Render("Description"))

	body := m.wrap(task.Description)
	if strings.TrimSpace(task.Description) == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render(view.NoDescription)
	}
	sections = append(sections, body)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// wrap word-wraps s to the panel width.
func (m Model) wrap(s string) string {
	width := m.width - 4
	if width < 20 {
		return s
	}
	return wordwrap.String(s, width)
}

// SetTask updates the task being displayed and re-renders the content.
// A nil task shows the empty placeholder.
func (m *Model) SetTask(task *model.Task) {
	if task != nil {
		t := *task
		task = &t
	}
	m.task = task
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Task returns the task being displayed.
func (m Model) Task() (model.Task, bool) {
	if m.task == nil {
		return model.Task{}, false
	}
	return *m.task, true
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.viewport.SetContent(m.renderContent())
}
