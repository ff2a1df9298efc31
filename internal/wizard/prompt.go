package wizard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/printq/internal/timeutil"
)

// HintFunc describes what the current input would do. An empty hint is not
// shown.
type HintFunc func(input string) string

// ClockModel is the bubbletea model for the wall-clock prompt.
type ClockModel struct {
	title string
	input textinput.Model
	hint  HintFunc
	err   error
	value string
	width int
}

var (
	promptTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	promptHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	promptErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	promptMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

// NewClockModel creates a prompt for an HH:MM time.
func NewClockModel(title string, hint HintFunc) ClockModel {
	ti := textinput.New()
	ti.Placeholder = "HH:MM"
	ti.Focus()
	ti.CharLimit = 5
	ti.Width = 10

	return ClockModel{
		title: title,
		input: ti,
		hint:  hint,
		width: 80,
	}
}

// Init initializes the model.
func (m ClockModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m ClockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			clock, err := timeutil.ParseClock(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.value = clock.String()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
	}
	return m, cmd
}

// View renders the model.
func (m ClockModel) View() string {
	var b strings.Builder

	b.WriteString(promptTitleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(promptErrorStyle.Render(m.err.Error()))
	case m.hint != nil:
		if h := m.hint(m.input.Value()); h != "" {
			b.WriteString(promptHintStyle.Render(h))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(promptMutedStyle.Render("enter confirm • esc cancel"))

	return b.String()
}

// Value returns the confirmed HH:MM, or "" if the prompt was cancelled.
func (m ClockModel) Value() string {
	return m.value
}

// RunClockPrompt asks for a wall-clock time.
func RunClockPrompt(title string, hint HintFunc) (string, error) {
	p := tea.NewProgram(NewClockModel(title, hint))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	return finalModel.(ClockModel).Value(), nil
}
