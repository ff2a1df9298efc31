// Package countdown re-evaluates the running print on a fixed interval and
// reports remaining-time changes.
package countdown

import (
	"context"
	"sync"
	"time"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/timeutil"
)

// EventType represents the kind of countdown event.
type EventType int

const (
	// EventTick reports a new remaining-time string.
	EventTick EventType = iota
	// EventCompleted fires once when the end time is reached.
	EventCompleted
	// EventCleared fires when the running print goes away. The ticker stops
	// after sending it.
	EventCleared
	// EventChanged fires when a different print starts or the end time moves.
	EventChanged
)

// Event is a countdown state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Remaining string
	Current   *core.CurrentTask
}

// Source returns the running print, or nil when nothing runs.
type Source func() *core.CurrentTask

// Ticker polls a Source and emits events.
type Ticker struct {
	source   Source
	interval time.Duration
	now      func() time.Time
	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
}

// NewTicker creates a ticker polling source every interval (default 1s).
func NewTicker(source Source, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{
		source:   source,
		interval: interval,
		now:      time.Now,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
}

// WithClock replaces time.Now. Call before Start.
func (t *Ticker) WithClock(now func() time.Time) *Ticker {
	t.now = now
	return t
}

// Events returns the channel of countdown events. It is closed when Start
// returns.
func (t *Ticker) Events() <-chan Event {
	return t.events
}

// Start emits the initial state, then polls until ctx is cancelled, Stop is
// called, or the running print is cleared.
func (t *Ticker) Start(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	defer close(t.events)

	var prev *core.CurrentTask
	var prevRemaining string

	emit := func() bool {
		curr := t.source()
		now := t.now()
		events := diff(prev, curr, prevRemaining, now)
		for _, e := range events {
			select {
			case t.events <- e:
			default:
				// Drop event if channel is full
			}
		}
		prev = curr
		if curr != nil {
			prevRemaining = curr.Remaining(now)
		}
		return curr != nil
	}

	if !emit() {
		t.send(Event{Type: EventCleared, Timestamp: t.now()})
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.done:
			return nil
		case <-ticker.C:
			if !emit() {
				return nil
			}
		}
	}
}

// Stop stops the ticker. It is safe to call more than once.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
	})
}

func (t *Ticker) send(e Event) {
	select {
	case t.events <- e:
	default:
	}
}

// diff compares two polls and returns the events between them.
func diff(prev, curr *core.CurrentTask, prevRemaining string, now time.Time) []Event {
	// First poll
	if prev == nil {
		if curr == nil {
			return nil
		}
		return []Event{tickOrCompleted(curr, now)}
	}

	if curr == nil {
		return []Event{{Type: EventCleared, Timestamp: now, Current: prev}}
	}

	if taskChanged(prev, curr) {
		return []Event{{Type: EventChanged, Timestamp: now, Remaining: curr.Remaining(now), Current: curr}}
	}

	remaining := curr.Remaining(now)
	if remaining == prevRemaining {
		return nil
	}
	return []Event{tickOrCompleted(curr, now)}
}

func tickOrCompleted(curr *core.CurrentTask, now time.Time) Event {
	remaining := curr.Remaining(now)
	typ := EventTick
	if remaining == timeutil.Completed {
		typ = EventCompleted
	}
	return Event{Type: typ, Timestamp: now, Remaining: remaining, Current: curr}
}

// taskChanged returns true if a different print is running or the end time
// moved.
func taskChanged(prev, curr *core.CurrentTask) bool {
	return prev.Task.ID != curr.Task.ID || !prev.EndTime.Equal(curr.EndTime)
}
