package tui

import (
	"testing"

	"yqhp/calculator/internal/display"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m Model, text string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func press(m Model, key tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(Model), cmd
}

func TestModel_EnterEvaluates(t *testing.T) {
	pad := display.NewPad(0, 10)
	m := New(pad)

	m = typeText(m, "2+3*4")
	assert.Equal(t, "2+3*4", m.input.Value())

	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, "14", pad.Display())
	require.Len(t, pad.History(), 1)

	view := m.View()
	assert.Contains(t, view, "14")
	assert.Contains(t, view, "2+3*4")
}

func TestModel_EnterOnEmptyInputIsIgnored(t *testing.T) {
	pad := display.NewPad(0, 10)
	m := New(pad)

	m, _ = press(m, tea.KeyEnter)
	assert.Empty(t, pad.History())
}

func TestModel_ErrorShown(t *testing.T) {
	pad := display.NewPad(0, 10)
	m := New(pad)

	m = typeText(m, "(1+")
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, display.ErrorText, pad.Display())
	assert.Contains(t, m.View(), display.ErrorText)
}

func TestModel_ClearHistory(t *testing.T) {
	pad := display.NewPad(0, 10)
	m := New(pad)

	m = typeText(m, "1+1")
	m, _ = press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyCtrlL)
	assert.Empty(t, pad.History())
}

func TestModel_Recall(t *testing.T) {
	pad := display.NewPad(0, 10)
	m := New(pad)

	for _, expr := range []string{"1+1", "2+2"} {
		m = typeText(m, expr)
		m, _ = press(m, tea.KeyEnter)
	}

	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, "2+2", m.input.Value())
	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, "1+1", m.input.Value())
	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, "1+1", m.input.Value())
	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, "2+2", m.input.Value())
	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, "", m.input.Value())
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := New(display.NewPad(0, 10))
		m, cmd := press(m, key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Equal(t, "", m.View())
	}
}

func TestModel_InitBlinks(t *testing.T) {
	assert.NotNil(t, New(display.NewPad(0, 10)).Init())
}
