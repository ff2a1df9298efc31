package timeline

import (
	"slices"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/tessro/printq/internal/core"
)

// Projector memoizes Project. It recomputes only when the anchor or the
// queue contents change. A Projector is not safe for concurrent use.
type Projector struct {
	key   uint64
	valid bool
	last  Projection

	computed int
}

// memoKey is the hashed identity of a projection input. Kind is included so
// a print and a gap with identical fields never collide.
type memoKey struct {
	AnchorUnixNano int64
	Location       string
	Offset         int
	Items          []memoItem
}

type memoItem struct {
	Kind      core.Kind
	ID        string
	Name      string
	Minutes   int
	WaitUntil string
}

// Project returns the projection of q from anchor, reusing the previous
// result when the inputs are unchanged. The caller owns the returned
// Entries.
func (p *Projector) Project(anchor time.Time, q core.Queue) Projection {
	key, err := hashInputs(anchor, q)
	if err == nil && p.valid && key == p.key {
		return p.last.clone()
	}

	p.last = Project(anchor, q)
	p.computed++
	p.key = key
	p.valid = err == nil
	return p.last.clone()
}

// clone copies Entries. Items are values, so a shallow copy is enough.
func (pr Projection) clone() Projection {
	pr.Entries = slices.Clone(pr.Entries)
	return pr
}

// Invalidate drops the cached projection.
func (p *Projector) Invalidate() {
	p.valid = false
}

// Computed returns how many times the projection has actually been
// recomputed.
func (p *Projector) Computed() int {
	return p.computed
}

func hashInputs(anchor time.Time, q core.Queue) (uint64, error) {
	_, offset := anchor.Zone()
	k := memoKey{
		AnchorUnixNano: anchor.UnixNano(),
		Location:       anchor.Location().String(),
		Offset:         offset,
		Items:          make([]memoItem, len(q)),
	}
	for i, item := range q {
		mi := memoItem{Kind: item.Kind(), ID: item.ItemID(), Name: item.ItemName()}
		switch it := item.(type) {
		case core.PrintTask:
			mi.Minutes = it.DurationMinutes
		case core.GapTask:
			mi.Minutes = it.DurationMinutes
		case core.WaitUntilTask:
			mi.WaitUntil = it.WaitUntil.String()
		}
		k.Items[i] = mi
	}
	return hashstructure.Hash(k, hashstructure.FormatV2, nil)
}
