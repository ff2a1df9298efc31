// Package styles holds the dashboard palette and shared lipgloss styles.
package styles

import (
	"os"
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tessro/printq/internal/core"
)

// Colors, filled from the active catppuccin flavour by Apply.
var (
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	TextDim   lipgloss.Color
	Surface   lipgloss.Color
)

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Running   lipgloss.Style
	Done      lipgloss.Style
	Alert     lipgloss.Style
	Selected  lipgloss.Style
)

// Border styles
var (
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
)

func init() {
	Apply("dark")
}

// IsDark reports whether theme resolves to a dark background. "auto" asks
// the terminal.
func IsDark(theme string) bool {
	switch strings.ToLower(theme) {
	case "light":
		return false
	case "dark":
		return true
	}
	return termenv.HasDarkBackground()
}

// Apply rebuilds every style from the catppuccin flavour matching theme and
// sets the color profile. NO_COLOR forces plain output.
func Apply(theme string) {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	f := catppuccin.Latte
	if IsDark(theme) {
		f = catppuccin.Mocha
	}

	Primary = lipgloss.Color(f.Mauve().Hex)
	Accent = lipgloss.Color(f.Peach().Hex)
	Success = lipgloss.Color(f.Green().Hex)
	Warning = lipgloss.Color(f.Yellow().Hex)
	Error = lipgloss.Color(f.Red().Hex)
	Info = lipgloss.Color(f.Blue().Hex)
	Border = lipgloss.Color(f.Surface2().Hex)
	Text = lipgloss.Color(f.Text().Hex)
	TextMuted = lipgloss.Color(f.Subtext0().Hex)
	TextDim = lipgloss.Color(f.Overlay0().Hex)
	Surface = lipgloss.Color(f.Surface0().Hex)

	Title = lipgloss.NewStyle().Bold(true).Foreground(Text)
	Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	Label = lipgloss.NewStyle().Foreground(TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Dim = lipgloss.NewStyle().Foreground(TextDim)
	Running = lipgloss.NewStyle().Foreground(Success)
	Done = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	Alert = lipgloss.NewStyle().Foreground(Error)
	Selected = lipgloss.NewStyle().Background(Surface)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// ProgressBar creates a progress bar string
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(Border)

	return filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("─", width-filled))
}

// KindBadge returns a short colored tag for an item kind.
func KindBadge(kind core.Kind) string {
	switch kind {
	case core.KindPrint:
		return lipgloss.NewStyle().Foreground(Info).Render("PRINT")
	case core.KindGap:
		return lipgloss.NewStyle().Foreground(Warning).Render("GAP  ")
	case core.KindWait:
		return lipgloss.NewStyle().Foreground(Accent).Render("WAIT ")
	default:
		return "     "
	}
}
