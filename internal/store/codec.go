package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/errors"
	"github.com/tessro/printq/internal/timeutil"
)

// document is the persisted blob.
type document struct {
	CurrentPrint      json.RawMessage `json:"currentPrint"`
	Queue             json.RawMessage `json:"queue"`
	DefaultGapMinutes json.RawMessage `json:"defaultGapMinutes"`
}

type wireItem struct {
	Type            core.Kind `json:"type"`
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	WaitUntilTime   string    `json:"waitUntilTime,omitempty"`
}

type wireCurrent struct {
	Item    wireItem `json:"item"`
	EndTime string   `json:"endTime"`
}

// Encode serializes state into the persisted blob.
func Encode(s core.State) ([]byte, error) {
	out := struct {
		CurrentPrint      *wireCurrent `json:"currentPrint"`
		Queue             []wireItem   `json:"queue"`
		DefaultGapMinutes int          `json:"defaultGapMinutes"`
	}{
		Queue:             make([]wireItem, 0, len(s.Queue)),
		DefaultGapMinutes: s.DefaultGapMinutes,
	}

	if s.Current != nil {
		out.CurrentPrint = &wireCurrent{
			Item:    toWire(s.Current.Task),
			EndTime: s.Current.EndTime.Format(time.RFC3339Nano),
		}
	}
	for _, item := range s.Queue {
		out.Queue = append(out.Queue, toWire(item))
	}

	return json.MarshalIndent(out, "", "  ")
}

// Decode parses a persisted blob. It never fails outright: a document that
// cannot be read yields the default state, and individual items that cannot
// be read are skipped. In both cases the returned error wraps
// errors.ErrCorruptState and describes what was dropped.
func Decode(data []byte) (core.State, error) {
	return DecodeWithGap(data, core.DefaultGapMinutes)
}

// DecodeWithGap is Decode with fallbackGap used when the blob carries no
// usable default gap.
func DecodeWithGap(data []byte, fallbackGap int) (core.State, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return core.NewState(fallbackGap), fmt.Errorf("%w: %v", errors.ErrCorruptState, err)
	}

	res := errors.PartialResult[core.State]{Data: core.NewState(fallbackGap)}

	if len(doc.DefaultGapMinutes) > 0 && string(doc.DefaultGapMinutes) != "null" {
		var gap int
		if err := json.Unmarshal(doc.DefaultGapMinutes, &gap); err != nil {
			res.AddError(fmt.Errorf("defaultGapMinutes: %w", err))
		} else if gap > timeutil.MaxMinutes {
			res.AddError(fmt.Errorf("defaultGapMinutes: %d exceeds %d minutes", gap, timeutil.MaxMinutes))
		} else if gap > 0 {
			res.Data.DefaultGapMinutes = gap
		}
	}

	if len(doc.Queue) > 0 && string(doc.Queue) != "null" {
		var raw []json.RawMessage
		if err := json.Unmarshal(doc.Queue, &raw); err != nil {
			res.AddError(fmt.Errorf("queue: %w", err))
		}
		seen := make(map[string]bool, len(raw))
		for i, r := range raw {
			item, err := decodeItem(r)
			if err != nil {
				res.AddError(fmt.Errorf("queue[%d]: %w", i, err))
				continue
			}
			if seen[item.ItemID()] {
				res.AddError(fmt.Errorf("queue[%d]: duplicate id %q reassigned", i, item.ItemID()))
				item = core.Duplicate(item)
			}
			seen[item.ItemID()] = true
			res.Data.Queue = append(res.Data.Queue, item)
		}
	}

	if len(doc.CurrentPrint) > 0 && string(doc.CurrentPrint) != "null" {
		cur, err := decodeCurrent(doc.CurrentPrint)
		if err != nil {
			res.AddError(fmt.Errorf("currentPrint: %w", err))
		} else {
			res.Data.Current = cur
		}
	}

	if res.HasErrors() {
		return res.Data, fmt.Errorf("%w: %s", errors.ErrCorruptState, res.ErrorSummary())
	}
	return res.Data, nil
}

func toWire(item core.Item) wireItem {
	w := wireItem{Type: item.Kind(), ID: item.ItemID(), Name: item.ItemName()}
	switch it := item.(type) {
	case core.PrintTask:
		m := it.DurationMinutes
		w.DurationMinutes = &m
	case core.GapTask:
		m := it.DurationMinutes
		w.DurationMinutes = &m
	case core.WaitUntilTask:
		w.WaitUntilTime = it.WaitUntil.String()
	}
	return w
}

func decodeItem(data json.RawMessage) (core.Item, error) {
	var w wireItem
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return fromWire(w)
}

func fromWire(w wireItem) (core.Item, error) {
	id := w.ID
	if id == "" {
		id = core.NewID(w.Type)
	}

	switch w.Type {
	case core.KindPrint, core.KindGap:
		if w.DurationMinutes == nil {
			return nil, fmt.Errorf("%s %q has no duration", w.Type, id)
		}
		if *w.DurationMinutes < 0 {
			return nil, fmt.Errorf("%s %q has negative duration", w.Type, id)
		}
		if *w.DurationMinutes > timeutil.MaxMinutes {
			return nil, fmt.Errorf("%s %q duration %d exceeds %d minutes", w.Type, id, *w.DurationMinutes, timeutil.MaxMinutes)
		}
		if w.Type == core.KindPrint {
			return core.PrintTask{ID: id, Name: w.Name, DurationMinutes: *w.DurationMinutes}, nil
		}
		return core.GapTask{ID: id, Name: w.Name, DurationMinutes: *w.DurationMinutes}, nil
	case core.KindWait:
		clock, err := timeutil.ParseClock(w.WaitUntilTime)
		if err != nil {
			return nil, err
		}
		return core.WaitUntilTask{ID: id, Name: w.Name, WaitUntil: clock}, nil
	default:
		return nil, fmt.Errorf("unknown item type %q", w.Type)
	}
}

func decodeCurrent(data json.RawMessage) (*core.CurrentTask, error) {
	var w wireCurrent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if w.Item.Type == "" {
		w.Item.Type = core.KindPrint
	}
	item, err := fromWire(w.Item)
	if err != nil {
		return nil, err
	}
	task, ok := item.(core.PrintTask)
	if !ok {
		return nil, fmt.Errorf("current item is a %s, not a print", item.Kind())
	}
	end, err := time.Parse(time.RFC3339Nano, w.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}
	return &core.CurrentTask{Task: task, EndTime: end}, nil
}
