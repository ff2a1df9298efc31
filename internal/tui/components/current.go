package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/timeutil"
	"github.com/tessro/printq/internal/tui/styles"
)

// Current displays the print that is running now.
type Current struct{}

// NewCurrent creates a new Current component
func NewCurrent() *Current {
	return &Current{}
}

// Render renders the current print panel
func (c *Current) Render(current *core.CurrentTask, now time.Time, width, height int, focused bool) string {
	title := styles.PanelTitle("Printing", focused)

	var content string
	if current == nil {
		content = styles.Muted.Render("Nothing printing")
	} else {
		content = c.renderTask(current, now, width-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (c *Current) renderTask(current *core.CurrentTask, now time.Time, width int) string {
	name := styles.Title.Render(xansi.Truncate(current.Task.Name, width-2, "…"))

	remaining := current.Remaining(now)
	var status string
	if current.IsComplete(now) {
		status = styles.Done.Render("✓ " + remaining)
	} else {
		status = styles.Running.Render("● " + remaining + " left")
	}

	percent := current.ProgressPercent(now)
	barWidth := width - 6
	if barWidth < 10 {
		barWidth = 10
	}
	progress := fmt.Sprintf("%s %3.0f%%", styles.ProgressBar(percent, barWidth), percent)

	finish := styles.Subtitle.Render("Finishes " + timeutil.FormatRelative(current.EndTime, now))
	length := styles.Dim.Render(timeutil.FormatDuration(current.Task.DurationMinutes) + " job")

	return lipgloss.JoinVertical(lipgloss.Left,
		name,
		status,
		"",
		progress,
		"",
		finish,
		length,
	)
}
