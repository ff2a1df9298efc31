package core

import (
	"slices"
	"time"

	"github.com/tessro/printq/internal/timeutil"
)

// Queue is the ordered list of upcoming items. Order is execution order.
//
// Every mutating method returns a new Queue and leaves the receiver and its
// backing array untouched.
type Queue []Item

// Len returns the number of items in the queue.
func (q Queue) Len() int {
	return len(q)
}

// IsEmpty returns true if the queue has no items.
func (q Queue) IsEmpty() bool {
	return len(q) == 0
}

// Index returns the position of the item with id, or -1.
func (q Queue) Index(id string) int {
	for i, item := range q {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}

// Find returns the item with id.
func (q Queue) Find(id string) (Item, bool) {
	if i := q.Index(id); i >= 0 {
		return q[i], true
	}
	return nil, false
}

// IDs returns the item ids in order.
func (q Queue) IDs() []string {
	ids := make([]string, len(q))
	for i, item := range q {
		ids[i] = item.ItemID()
	}
	return ids
}

// Clone returns a copy with its own backing array. Items are values, so the
// copy is deep.
func (q Queue) Clone() Queue {
	if q == nil {
		return nil
	}
	out := make(Queue, len(q))
	copy(out, q)
	return out
}

// Append adds item to the tail.
func (q Queue) Append(item Item) Queue {
	out := make(Queue, 0, len(q)+1)
	out = append(out, q...)
	return append(out, item)
}

// InsertAfter places item immediately after the item with afterID. When
// afterID is not in the queue the item is appended instead of dropped.
func (q Queue) InsertAfter(afterID string, item Item) Queue {
	i := q.Index(afterID)
	if i < 0 {
		return q.Append(item)
	}
	out := make(Queue, 0, len(q)+1)
	out = append(out, q[:i+1]...)
	out = append(out, item)
	return append(out, q[i+1:]...)
}

// RemoveByID drops the item with id. A missing id is a no-op.
func (q Queue) RemoveByID(id string) Queue {
	out := make(Queue, 0, len(q))
	for _, item := range q {
		if item.ItemID() != id {
			out = append(out, item)
		}
	}
	return out
}

// Reorder replaces the sequence with order. The caller supplies a
// permutation of the same items; it is not validated.
func (q Queue) Reorder(order Queue) Queue {
	return order.Clone()
}

// Arrange reorders the queue by id. Unknown ids are skipped and items whose
// ids were not listed keep their relative order after the listed ones.
func (q Queue) Arrange(ids []string) Queue {
	order := make(Queue, 0, len(q))
	used := make(map[string]bool, len(ids))
	for _, id := range ids {
		if used[id] {
			continue
		}
		if item, ok := q.Find(id); ok {
			order = append(order, item)
			used[id] = true
		}
	}
	for _, item := range q {
		if !used[item.ItemID()] {
			order = append(order, item)
		}
	}
	return q.Reorder(order)
}

// Move shifts the item with id by delta positions, clamped to the ends of
// the queue. A missing id is a no-op.
func (q Queue) Move(id string, delta int) Queue {
	from := q.Index(id)
	if from < 0 || delta == 0 {
		return q.Clone()
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(q)-1 {
		to = len(q) - 1
	}

	item := q[from]
	out := slices.Delete(q.Clone(), from, from+1)
	return slices.Insert(out, to, item)
}

// DuplicateByID appends a copy of the item with id, under a fresh id, to the
// tail. The bool is false when id is not in the queue.
func (q Queue) DuplicateByID(id string) (Queue, Item, bool) {
	item, ok := q.Find(id)
	if !ok {
		return q.Clone(), nil, false
	}
	dup := Duplicate(item)
	return q.Append(dup), dup, true
}

// PromoteToCurrent removes the print task with id and returns it as the
// running task, ending now plus its duration. Gaps, waits and unknown ids
// are rejected: the queue is returned unchanged with a nil task and false.
func (q Queue) PromoteToCurrent(id string, now time.Time) (Queue, *CurrentTask, bool) {
	item, ok := q.Find(id)
	if !ok {
		return q.Clone(), nil, false
	}
	task, ok := item.(PrintTask)
	if !ok {
		return q.Clone(), nil, false
	}

	current := &CurrentTask{
		Task:    task,
		EndTime: timeutil.AddMinutes(now, task.DurationMinutes),
	}
	return q.RemoveByID(id), current, true
}

// Clear returns an empty queue.
func (q Queue) Clear() Queue {
	return Queue{}
}
