package core

import (
	"time"

	"github.com/tessro/printq/internal/timeutil"
)

// DefaultGapMinutes is used when no default gap has been stored.
const DefaultGapMinutes = 15

// CurrentTask is the print job presently running.
type CurrentTask struct {
	Task    PrintTask `json:"item"`
	EndTime time.Time `json:"endTime"`
}

// Remaining returns the human readable time left, or "Completed".
func (c *CurrentTask) Remaining(now time.Time) string {
	if c == nil {
		return ""
	}
	return timeutil.Remaining(c.EndTime, now)
}

// IsComplete reports whether the end time has been reached.
func (c *CurrentTask) IsComplete(now time.Time) bool {
	return c != nil && !c.EndTime.After(now)
}

// ProgressPercent returns progress as a percentage (0-100), measured against
// the task's recorded duration.
func (c *CurrentTask) ProgressPercent(now time.Time) float64 {
	if c == nil || c.Task.DurationMinutes <= 0 {
		return 0
	}
	total := time.Duration(c.Task.DurationMinutes) * time.Minute
	left := c.EndTime.Sub(now)
	switch {
	case left <= 0:
		return 100
	case left >= total:
		return 0
	}
	return float64(total-left) / float64(total) * 100
}

// State is everything that gets persisted: the running task, the queue and
// the default gap length.
type State struct {
	Current           *CurrentTask
	Queue             Queue
	DefaultGapMinutes int
}

// DefaultState returns the empty first-run state.
func DefaultState() State {
	return NewState(DefaultGapMinutes)
}

// NewState returns an empty state whose default gap is gapMinutes, or
// DefaultGapMinutes when gapMinutes is not positive.
func NewState(gapMinutes int) State {
	if gapMinutes <= 0 {
		gapMinutes = DefaultGapMinutes
	}
	return State{DefaultGapMinutes: gapMinutes}
}

// HasCurrent returns true if a task is running.
func (s *State) HasCurrent() bool {
	return s != nil && s.Current != nil
}

// Clone returns a copy that shares nothing mutable with s.
func (s State) Clone() State {
	out := s
	out.Queue = s.Queue.Clone()
	if s.Current != nil {
		cur := *s.Current
		out.Current = &cur
	}
	return out
}
