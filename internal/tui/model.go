// Package tui is an interactive terminal calculator.
package tui

import (
	"fmt"
	"strings"

	"yqhp/calculator/internal/display"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// visibleHistory is how many past entries the view shows.
const visibleHistory = 8

// Model is the bubbletea model hosting a display.Pad.
type Model struct {
	pad    *display.Pad
	input  textinput.Model
	styles Styles

	// recall walks back through history with the up/down keys; -1 means
	// the input holds fresh text.
	recall int
	width  int

	quitting bool
}

// New creates a calculator model around pad.
func New(pad *display.Pad) Model {
	ti := textinput.New()
	ti.Placeholder = "2+3*4, sqrt(16), 5!, sin(pi/2)..."
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 48
	ti.Focus()

	return Model{
		pad:    pad,
		input:  ti,
		styles: DefaultStyles(),
		recall: -1,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			expr := strings.TrimSpace(m.input.Value())
			if expr == "" {
				return m, nil
			}
			m.pad.Submit(expr)
			m.input.SetValue("")
			m.recall = -1
			return m, nil

		case tea.KeyCtrlL:
			m.pad.ClearHistory()
			m.recall = -1
			return m, nil

		case tea.KeyUp:
			m.recallEntry(1)
			return m, nil

		case tea.KeyDown:
			m.recallEntry(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// recallEntry moves step entries back (positive) or forward (negative)
// through history and loads that expression into the input.
func (m *Model) recallEntry(step int) {
	history := m.pad.History()
	if len(history) == 0 {
		return
	}

	next := m.recall + step
	if next < 0 {
		m.recall = -1
		m.input.SetValue("")
		return
	}
	if next >= len(history) {
		next = len(history) - 1
	}

	m.recall = next
	m.input.SetValue(history[len(history)-1-next].Expression)
	m.input.CursorEnd()
}

// View renders the calculator.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Calculator"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	result := m.pad.Display()
	switch {
	case result == "":
		b.WriteString(m.styles.Muted.Render("= "))
	case result == display.ErrorText:
		b.WriteString(m.styles.Error.Render("= " + result))
	default:
		b.WriteString(m.styles.Result.Render("= " + result))
	}
	b.WriteString("\n")

	history := m.pad.History()
	if len(history) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("history"))
		b.WriteString("\n")

		shown := 0
		for i := len(history) - 1; i >= 0 && shown < visibleHistory; i-- {
			entry := history[i]
			style := m.styles.Result
			if entry.Result == display.ErrorText {
				style = m.styles.Error
			}
			fmt.Fprintf(&b, "  %s %s %s\n",
				m.styles.Expression.Render(entry.Expression),
				m.styles.Muted.Render("="),
				style.Render(entry.Result),
			)
			shown++
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter evaluate • ↑/↓ recall • ctrl+l clear history • esc quit"))

	return m.styles.Frame.Render(b.String()) + "\n"
}

// Run starts the interactive calculator and blocks until the user quits.
func Run(pad *display.Pad, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(pad), opts...).Run()
	return err
}
