package core

import (
	"github.com/tessro/printq/internal/timeutil"
)

// Kind discriminates the queue item variants.
type Kind string

const (
	KindPrint Kind = "print"
	KindGap   Kind = "gap"
	KindWait  Kind = "wait"
)

// Item is an entry in the print queue. The set of implementations is closed:
// PrintTask, GapTask and WaitUntilTask.
type Item interface {
	ItemID() string
	ItemName() string
	Kind() Kind

	withID(id string) Item
}

// PrintTask is a print job with a fixed duration.
type PrintTask struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// GapTask is preparation or buffer time between jobs. It cannot become the
// current task.
type GapTask struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// WaitUntilTask pauses the queue until a wall-clock time of day.
type WaitUntilTask struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	WaitUntil timeutil.Clock `json:"waitUntilTime"`
}

func (p PrintTask) ItemID() string   { return p.ID }
func (p PrintTask) ItemName() string { return p.Name }
func (p PrintTask) Kind() Kind       { return KindPrint }

func (p PrintTask) withID(id string) Item {
	p.ID = id
	return p
}

func (g GapTask) ItemID() string   { return g.ID }
func (g GapTask) ItemName() string { return g.Name }
func (g GapTask) Kind() Kind       { return KindGap }

func (g GapTask) withID(id string) Item {
	g.ID = id
	return g
}

func (w WaitUntilTask) ItemID() string   { return w.ID }
func (w WaitUntilTask) ItemName() string { return w.Name }
func (w WaitUntilTask) Kind() Kind       { return KindWait }

func (w WaitUntilTask) withID(id string) Item {
	w.ID = id
	return w
}

// NewPrint creates a print task with a fresh id.
func NewPrint(name string, minutes int) PrintTask {
	return PrintTask{ID: NewID(KindPrint), Name: name, DurationMinutes: minutes}
}

// NewGap creates a gap with a fresh id.
func NewGap(name string, minutes int) GapTask {
	return GapTask{ID: NewID(KindGap), Name: name, DurationMinutes: minutes}
}

// NewWait creates a wait-until item with a fresh id.
func NewWait(name string, at timeutil.Clock) WaitUntilTask {
	return WaitUntilTask{ID: NewID(KindWait), Name: name, WaitUntil: at}
}

// DurationOf returns the duration of a print or gap item. The second value
// is false for wait items, whose length depends on where they land.
func DurationOf(item Item) (int, bool) {
	switch it := item.(type) {
	case PrintTask:
		return it.DurationMinutes, true
	case GapTask:
		return it.DurationMinutes, true
	default:
		return 0, false
	}
}

// Duplicate returns a copy of item with a fresh id.
func Duplicate(item Item) Item {
	return item.withID(NewID(item.Kind()))
}
