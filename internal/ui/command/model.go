package command

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/task-tracker/internal/theme"
)

// historyLimit caps how many executed commands the palette remembers.
const historyLimit = 20

// CommandMsg carries palette input that parsed cleanly.
type CommandMsg string

// CancelMsg closes the palette without running anything. Sent on esc and
// when enter is pressed on blank input.
type CancelMsg struct{}

// Model is the ":" command palette. Input is parsed before it leaves the
// palette, so a typo keeps the palette open with the parse error shown.
type Model struct {
	input   textinput.Model
	history []string
	// recall indexes history while browsing with up/down; len(history)
	// means the live line.
	recall int
	err    string
	width  int
	height int
}

// New builds a focused palette.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "new, complete, delete, tab <name>, filter <category>"
	ti.Prompt = ": "
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyEsc:
			m.clear()
			return m, func() tea.Msg { return CancelMsg{} }
		case tea.KeyUp:
			m.browse(-1)
			return m, nil
		case tea.KeyDown:
			m.browse(1)
			return m, nil
		}
		m.err = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	line := m.input.Value()
	if _, err := Parse(line); err != nil {
		if errors.Is(err, ErrEmpty) {
			m.clear()
			return m, func() tea.Msg { return CancelMsg{} }
		}
		m.err = err.Error()
		return m, nil
	}

	m.remember(line)
	m.clear()
	return m, func() tea.Msg { return CommandMsg(line) }
}

func (m *Model) remember(line string) {
	if n := len(m.history); n > 0 && m.history[n-1] == line {
		return
	}
	m.history = append(m.history, line)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

func (m *Model) browse(step int) {
	if len(m.history) == 0 {
		return
	}
	m.recall = min(max(m.recall+step, 0), len(m.history))
	if m.recall == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.recall])
	m.input.CursorEnd()
}

func (m *Model) clear() {
	m.input.Reset()
	m.err = ""
	m.recall = len(m.history)
}

// Err returns the parse error from the last enter, if any.
func (m Model) Err() string {
	return m.err
}

// History returns executed commands, oldest first.
func (m Model) History() []string {
	return append([]string(nil), m.history...)
}

func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Run command")

	rows := []string{title, m.input.View()}
	if m.err != "" {
		rows = append(rows, theme.ErrorStyle.Render(m.err))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
