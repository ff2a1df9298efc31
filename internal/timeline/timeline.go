// Package timeline projects start and finish times for every queued item.
//
// Projection is a pure left fold over the queue starting at an anchor time.
// Print and gap items advance the cursor by their duration. Wait items jump
// the cursor to the next occurrence of their clock time, rolling to the next
// calendar day when that time is at or before the cursor.
package timeline

import (
	"time"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/timeutil"
)

// Entry is one projected queue item.
type Entry struct {
	Item  core.Item
	Start time.Time
	End   time.Time
}

// Minutes returns the projected length of the entry in whole minutes.
func (e Entry) Minutes() int {
	return int(e.End.Sub(e.Start) / time.Minute)
}

// Projection is the ordered result of projecting a queue.
type Projection struct {
	Anchor  time.Time
	Entries []Entry
}

// Completion returns the end of the last item. The bool is false for an
// empty queue, in which case callers fall back to the current task's end
// time or now.
func (p Projection) Completion() (time.Time, bool) {
	if len(p.Entries) == 0 {
		return time.Time{}, false
	}
	return p.Entries[len(p.Entries)-1].End, true
}

// Lookup returns the entry for the item with id.
func (p Projection) Lookup(id string) (Entry, bool) {
	for _, e := range p.Entries {
		if e.Item.ItemID() == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Anchor returns the time the queue starts: the current task's end time, or
// now when nothing is running.
func Anchor(current *core.CurrentTask, now time.Time) time.Time {
	if current != nil {
		return current.EndTime
	}
	return now
}

// Project walks q in order from anchor. The queue is only read.
func Project(anchor time.Time, q core.Queue) Projection {
	p := Projection{
		Anchor:  anchor,
		Entries: make([]Entry, 0, len(q)),
	}

	cursor := anchor
	for _, item := range q {
		start := cursor
		end := advance(cursor, item)
		p.Entries = append(p.Entries, Entry{Item: item, Start: start, End: end})
		cursor = end
	}
	return p
}

func advance(cursor time.Time, item core.Item) time.Time {
	switch it := item.(type) {
	case core.WaitUntilTask:
		return it.WaitUntil.Next(cursor)
	case core.PrintTask:
		return timeutil.AddMinutes(cursor, it.DurationMinutes)
	case core.GapTask:
		return timeutil.AddMinutes(cursor, it.DurationMinutes)
	default:
		return cursor
	}
}
