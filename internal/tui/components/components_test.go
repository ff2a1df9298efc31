package components

import (
	"strings"
	"testing"
	"time"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/timeline"
	"github.com/tessro/printq/internal/timeutil"
)

var baseTime = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func TestQueueCursor(t *testing.T) {
	tests := []struct {
		name string
		move func(q *Queue)
		want int
	}{
		{"next", func(q *Queue) { q.SelectNext(3) }, 1},
		{"next clamps", func(q *Queue) { q.SelectNext(3); q.SelectNext(3); q.SelectNext(3) }, 2},
		{"prev at top", func(q *Queue) { q.SelectPrev() }, 0},
		{"select clamps high", func(q *Queue) { q.Select(9, 3) }, 2},
		{"select clamps low", func(q *Queue) { q.Select(-4, 3) }, 0},
		{"clamp empty", func(q *Queue) { q.Select(2, 3); q.Clamp(0) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			tt.move(q)
			if got := q.Selected(); got != tt.want {
				t.Errorf("Selected() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQueueRender(t *testing.T) {
	q := core.Queue{
		core.NewPrint("Benchy", 30),
		core.NewGap("Prep Time", 15),
		core.NewWait("Wait Until", timeutil.MustParseClock("18:00")),
	}
	entries := timeline.Project(baseTime, q).Entries

	out := NewQueue().Render(entries, entries[2].End, baseTime, 100, 20, true)
	for _, want := range []string{"Benchy", "30m", "Prep Time", "15m", "until 18:00", "6:00 PM", "Queue completes 6:00 PM"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	empty := NewQueue().Render(nil, time.Time{}, baseTime, 100, 20, false)
	if !strings.Contains(empty, "Queue is empty") || strings.Contains(empty, "completes") {
		t.Errorf("empty render wrong:\n%s", empty)
	}
}

func TestQueueRenderScrollsToCursor(t *testing.T) {
	var q core.Queue
	for i := 0; i < 20; i++ {
		q = append(q, core.NewPrint("Part", 10))
	}
	entries := timeline.Project(baseTime, q).Entries

	view := NewQueue()
	view.Select(19, len(entries))
	out := view.Render(entries, time.Time{}, baseTime, 100, 12, true)
	if !strings.Contains(out, "20.") {
		t.Errorf("selected last row should be visible:\n%s", out)
	}
	if strings.Contains(out, " 1.") {
		t.Errorf("first row should have scrolled off:\n%s", out)
	}
}

func TestCurrentRender(t *testing.T) {
	c := NewCurrent()

	if out := c.Render(nil, baseTime, 80, 10, false); !strings.Contains(out, "Nothing printing") {
		t.Errorf("idle render missing placeholder:\n%s", out)
	}

	cur := &core.CurrentTask{
		Task:    core.NewPrint("Benchy", 60),
		EndTime: baseTime.Add(45 * time.Minute),
	}
	out := c.Render(cur, baseTime, 80, 10, true)
	for _, want := range []string{"Benchy", "45m left", "25%", "Finishes 10:45 AM", "1h job"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	done := c.Render(cur, baseTime.Add(time.Hour), 80, 10, true)
	if !strings.Contains(done, timeutil.Completed) {
		t.Errorf("finished render should say %s:\n%s", timeutil.Completed, done)
	}
}
