package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/task-tracker/internal/keys"
	"github.com/nhle/task-tracker/internal/theme"
)

// paletteCommands lists what the : prompt accepts, in display order.
var paletteCommands = [][2]string{
	{"new", "open the new task form"},
	{"complete", "complete the selected task"},
	{"delete", "delete the selected task"},
	{"tab <active|completed|deleted>", "switch tab"},
	{"filter <category>", "filter the current tab"},
	{"filter all", "clear the current tab's filter"},
	{"quit", "exit"},
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	h.ShowAll = true
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay: key bindings, then palette commands.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	bindings := m.help.View(m.keys)

	cmdStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue)
	var lines []string
	for _, c := range paletteCommands {
		lines = append(lines, fmt.Sprintf("%s  %s",
			cmdStyle.Render(fmt.Sprintf("%-32s", ":"+c[0])),
			theme.HelpStyle.Render(c[1]),
		))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Keyboard Shortcuts"),
		bindings,
		"",
		titleStyle.Render("Commands"),
		strings.Join(lines, "\n"),
	)

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
