package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/timeline"
	"github.com/tessro/printq/internal/timeutil"
)

// Table renders rows with go-pretty.
type Table struct {
	out    io.Writer
	tw     table.Writer
	right  map[int]bool
	header int
}

// NewTable creates a new table writing to stdout.
func NewTable(headers ...string) *Table {
	return NewTableWriter(os.Stdout, headers...)
}

// NewTableWriter creates a table writing to a specific writer.
func NewTableWriter(out io.Writer, headers ...string) *Table {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if len(headers) > 0 {
		row := make(table.Row, len(headers))
		for i, h := range headers {
			row[i] = h
		}
		tw.AppendHeader(row)
	}
	return &Table{out: out, tw: tw, right: map[int]bool{}, header: len(headers)}
}

// AlignRight right-aligns the 1-based column numbers.
func (t *Table) AlignRight(columns ...int) {
	for _, c := range columns {
		t.right[c] = true
	}
}

// Row adds a row to the table.
func (t *Table) Row(values ...string) {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	t.tw.AppendRow(row)
}

// Flush writes the table output.
func (t *Table) Flush() {
	configs := make([]table.ColumnConfig, 0, t.header)
	for i := 1; i <= t.header; i++ {
		align := text.AlignLeft
		if t.right[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i, Align: align, AlignHeader: text.AlignLeft})
	}
	t.tw.SetColumnConfigs(configs)
	_, _ = fmt.Fprintln(t.out, t.tw.Render())
}

// printJSON encodes v to stdout.
func printJSON(v any) error {
	return json.NewEncoder(os.Stdout).Encode(v)
}

// colorEnabled reports whether stdout is a terminal that should get colour.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func init() {
	color.NoColor = !colorEnabled()
}

var (
	printBadge = color.New(color.FgCyan, color.Bold).SprintFunc()
	gapBadge   = color.New(color.FgYellow).SprintFunc()
	waitBadge  = color.New(color.FgMagenta).SprintFunc()
	dimText    = color.New(color.Faint).SprintFunc()
	okText     = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// KindBadge returns a coloured label for an item kind.
func KindBadge(k core.Kind) string {
	switch k {
	case core.KindPrint:
		return printBadge("PRINT")
	case core.KindGap:
		return gapBadge("GAP")
	case core.KindWait:
		return waitBadge("WAIT")
	default:
		return string(k)
	}
}

// ItemDetail is the duration of a print or gap, or the target clock of a
// wait.
func ItemDetail(item core.Item) string {
	if it, ok := item.(core.WaitUntilTask); ok {
		return "until " + it.WaitUntil.String()
	}
	minutes, _ := core.DurationOf(item)
	return timeutil.FormatDuration(minutes)
}

// HumanTime renders t relative to now ("3:04 PM", "Tomorrow 9:00 AM") with
// a humanized distance appended ("in 2 hours").
func HumanTime(t, now time.Time) string {
	return fmt.Sprintf("%s (%s)", timeutil.FormatRelative(t, now), humanize.RelTime(t, now, "ago", "from now"))
}

// Position renders a 1-based queue position as an ordinal.
func Position(i int) string {
	return humanize.Ordinal(i + 1)
}

// entryJSON is the JSON shape of a projected queue entry.
func entryJSON(i int, e timeline.Entry) map[string]any {
	out := map[string]any{
		"position": i + 1,
		"id":       e.Item.ItemID(),
		"type":     e.Item.Kind(),
		"name":     e.Item.ItemName(),
		"start":    e.Start.Format(time.RFC3339),
		"end":      e.End.Format(time.RFC3339),
		"minutes":  e.Minutes(),
	}
	switch it := e.Item.(type) {
	case core.WaitUntilTask:
		out["wait_until"] = it.WaitUntil.String()
	default:
		m, _ := core.DurationOf(it)
		out["duration_minutes"] = m
	}
	return out
}

// currentJSON is the JSON shape of the running print.
func currentJSON(c *core.CurrentTask, now time.Time) map[string]any {
	if c == nil {
		return nil
	}
	return map[string]any{
		"id":               c.Task.ID,
		"name":             c.Task.Name,
		"duration_minutes": c.Task.DurationMinutes,
		"end":              c.EndTime.Format(time.RFC3339),
		"remaining":        c.Remaining(now),
		"progress_percent": c.ProgressPercent(now),
	}
}

// itemJSON is the JSON shape of a newly created item.
func itemJSON(item core.Item) map[string]any {
	out := map[string]any{
		"id":   item.ItemID(),
		"type": item.Kind(),
		"name": item.ItemName(),
	}
	if w, ok := item.(core.WaitUntilTask); ok {
		out["wait_until"] = w.WaitUntil.String()
	} else {
		m, _ := core.DurationOf(item)
		out["duration_minutes"] = m
	}
	return out
}

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatProgress formats a progress bar for a percentage.
func FormatProgress(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}
