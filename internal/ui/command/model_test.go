package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeLine(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func enter(t *testing.T, m Model) (Model, tea.Msg) {
	t.Helper()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func TestModel_SubmitValidCommand(t *testing.T) {
	m := New(80, 24)
	m = typeLine(m, "tab completed")

	m, msg := enter(t, m)
	assert.Equal(t, CommandMsg("tab completed"), msg)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, []string{"tab completed"}, m.History())
}

func TestModel_ParseErrorStaysOpen(t *testing.T) {
	m := New(80, 24)
	m = typeLine(m, "bogus")

	m, msg := enter(t, m)
	assert.Nil(t, msg)
	assert.NotEmpty(t, m.Err())
	assert.Equal(t, "bogus", m.input.Value())
	assert.Contains(t, m.View(), m.Err())
	assert.Empty(t, m.History())

	m = typeLine(m, "x")
	assert.Empty(t, m.Err(), "typing clears the error")
}

func TestModel_BlankAndEscCancel(t *testing.T) {
	m := New(80, 24)

	_, msg := enter(t, m)
	assert.Equal(t, CancelMsg{}, msg)

	m = typeLine(m, "new")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
	assert.Empty(t, m.input.Value())
}

func TestModel_HistoryRecall(t *testing.T) {
	m := New(80, 24)
	for _, line := range []string{"tab deleted", "filter Work", "filter Work"} {
		m = typeLine(m, line)
		m, _ = enter(t, m)
	}
	assert.Equal(t, []string{"tab deleted", "filter Work"}, m.History())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "filter Work", m.input.Value())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "tab deleted", m.input.Value())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "tab deleted", m.input.Value())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, m.input.Value())
}
