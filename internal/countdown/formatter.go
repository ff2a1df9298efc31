package countdown

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/printq/internal/timeutil"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template. Fields: Type, Emoji, Time,
// Timestamp, Name, Remaining, Finish, Progress.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}
	parts = append(parts, eventDescription(e))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      e.Type.String(),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
		Remaining: e.Remaining,
	}
	if e.Current != nil {
		data.Name = e.Current.Task.Name
		data.Finish = timeutil.FormatRelative(e.Current.EndTime, e.Timestamp)
		data.Progress = int(e.Current.ProgressPercent(e.Timestamp))
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Name      string
	Remaining string
	Finish    string
	Progress  int
}

func eventDescription(e Event) string {
	name := "print"
	if e.Current != nil {
		name = e.Current.Task.Name
	}

	switch e.Type {
	case EventTick:
		return fmt.Sprintf("%s: %s remaining", name, e.Remaining)
	case EventCompleted:
		return fmt.Sprintf("%s: %s", name, timeutil.Completed)
	case EventCleared:
		if e.Current != nil {
			return fmt.Sprintf("%s: cleared", name)
		}
		return "Nothing printing"
	case EventChanged:
		if e.Current != nil {
			return fmt.Sprintf("Now printing: %s, finishes %s (%s)",
				name, timeutil.FormatRelative(e.Current.EndTime, e.Timestamp), e.Remaining)
		}
		return "Print changed"
	default:
		return "Unknown event"
	}
}

func eventEmoji(t EventType) string {
	switch t {
	case EventTick:
		return "⏳"
	case EventCompleted:
		return "✅"
	case EventCleared:
		return "⏹️"
	case EventChanged:
		return "🖨️"
	default:
		return "❓"
	}
}

// String returns the event name used in templates and JSON.
func (t EventType) String() string {
	switch t {
	case EventTick:
		return "tick"
	case EventCompleted:
		return "completed"
	case EventCleared:
		return "cleared"
	case EventChanged:
		return "changed"
	default:
		return "unknown"
	}
}
