package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/timeline"
	"github.com/tessro/printq/internal/timeutil"
	"github.com/tessro/printq/internal/tui/styles"
)

// Queue displays the projected queue with a selection cursor.
type Queue struct {
	offset   int
	selected int
}

// NewQueue creates a new Queue component
func NewQueue() *Queue {
	return &Queue{}
}

// SelectNext moves the cursor down, stopping at the last of n items.
func (q *Queue) SelectNext(n int) {
	if q.selected < n-1 {
		q.selected++
	}
}

// SelectPrev moves the cursor up.
func (q *Queue) SelectPrev() {
	if q.selected > 0 {
		q.selected--
	}
}

// Select puts the cursor on index i, clamped to n items.
func (q *Queue) Select(i, n int) {
	q.selected = i
	q.Clamp(n)
}

// Clamp keeps the cursor inside a queue of n items.
func (q *Queue) Clamp(n int) {
	if q.selected >= n {
		q.selected = n - 1
	}
	if q.selected < 0 {
		q.selected = 0
	}
}

// Selected returns the selected index
func (q *Queue) Selected() int {
	return q.selected
}

// Render renders the queue panel. banner is the queue completion time; a
// zero banner is not shown.
func (q *Queue) Render(entries []timeline.Entry, banner, now time.Time, width, height int, focused bool) string {
	title := styles.PanelTitle("Queue", focused)

	header := ""
	if !banner.IsZero() {
		header = styles.Highlight.Render("Queue completes " + timeutil.FormatRelative(banner, now))
	}

	var content string
	if len(entries) == 0 {
		content = styles.Muted.Render("Queue is empty")
	} else {
		content = q.renderQueue(entries, now, width-4, height-6)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		header,
		"",
		content,
	))
}

func (q *Queue) renderQueue(entries []timeline.Entry, now time.Time, width, maxLines int) string {
	q.Clamp(len(entries))

	visibleCount := maxLines - 1 // Leave room for "more" indicator
	if visibleCount < 1 {
		visibleCount = 1
	}

	// Keep the cursor on screen
	if q.selected < q.offset {
		q.offset = q.selected
	}
	if q.selected >= q.offset+visibleCount {
		q.offset = q.selected - visibleCount + 1
	}
	if q.offset >= len(entries) {
		q.offset = 0
	}

	start := q.offset
	end := start + visibleCount
	if end > len(entries) {
		end = len(entries)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		e := entries[i]

		num := fmt.Sprintf("%2d.", i+1)
		detail := entryDetail(e.Item)
		times := timeutil.FormatRelative(e.Start, now) + " → " + timeutil.FormatRelative(e.End, now)

		// "NN. " + badge + spacing around detail and times
		available := width - 4 - 6 - len(detail) - len(times) - 4
		name := xansi.Truncate(e.Item.ItemName(), max(available, 1), "…")

		line := fmt.Sprintf("%s %s %s %s  %s",
			styles.Dim.Render(num),
			styles.KindBadge(e.Item.Kind()),
			name,
			styles.Muted.Render(detail),
			styles.Subtitle.Render(times))

		if i == q.selected {
			line = styles.Selected.Render("▸" + line)
		} else {
			line = " " + line
		}
		lines = append(lines, line)
	}

	if end < len(entries) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(entries)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// entryDetail is the duration of a timed item or the set time of a wait.
func entryDetail(item core.Item) string {
	if w, ok := item.(core.WaitUntilTask); ok {
		return "until " + w.WaitUntil.String()
	}
	if minutes, ok := core.DurationOf(item); ok {
		return timeutil.FormatDuration(minutes)
	}
	return ""
}
