package wizard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/timeline"
	"github.com/tessro/printq/internal/timeutil"
)

// ItemModel is the bubbletea model for the queue item picker.
type ItemModel struct {
	title    string
	entries  []timeline.Entry
	cursor   int
	selected core.Item
	width    int
	height   int
}

// Styles for the item picker
var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	pickerItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	pickerSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	pickerTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	pickerMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

// NewItemModel creates a picker over the entries accepted by filter. A nil
// filter accepts everything.
func NewItemModel(title string, entries []timeline.Entry, filter func(core.Item) bool) ItemModel {
	var kept []timeline.Entry
	for _, e := range entries {
		if filter == nil || filter(e.Item) {
			kept = append(kept, e)
		}
	}
	return ItemModel{
		title:   title,
		entries: kept,
		width:   80,
		height:  20,
	}
}

// Init initializes the model.
func (m ItemModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ItemModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "enter", " ":
			if m.cursor < len(m.entries) {
				m.selected = m.entries[m.cursor].Item
				return m, tea.Quit
			}

		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j", "ctrl+n":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			if len(m.entries) > 0 {
				m.cursor = len(m.entries) - 1
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the model.
func (m ItemModel) View() string {
	var b strings.Builder

	b.WriteString(pickerTitleStyle.Render(m.title))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(pickerMutedStyle.Render("Nothing to pick"))
		b.WriteString("\n")
	}
	for i, e := range m.entries {
		line := e.Item.ItemName() + " " +
			pickerTimeStyle.Render(timeutil.FormatClock(e.Start)+" → "+timeutil.FormatClock(e.End))
		if minutes, ok := core.DurationOf(e.Item); ok {
			line += pickerMutedStyle.Render(" (" + timeutil.FormatDuration(minutes) + ")")
		}

		if i == m.cursor {
			b.WriteString(pickerSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(pickerItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pickerMutedStyle.Render("↑/↓ navigate • enter select • esc quit"))

	return b.String()
}

// Selected returns the chosen item, or nil if none.
func (m ItemModel) Selected() core.Item {
	return m.selected
}

// RunItemPicker runs the picker and returns the chosen item.
func RunItemPicker(title string, entries []timeline.Entry, filter func(core.Item) bool) (core.Item, error) {
	model := NewItemModel(title, entries, filter)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(ItemModel).Selected(), nil
}
