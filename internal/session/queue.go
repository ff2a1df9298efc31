package session

import (
	"strings"

	"go.uber.org/zap"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/errors"
	"github.com/tessro/printq/internal/logging"
	"github.com/tessro/printq/internal/timeutil"
)

// AddPrint appends a print job. The name must be non-empty and the duration
// positive.
func (s *Session) AddPrint(name string, minutes int) (core.PrintTask, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.PrintTask{}, errors.Invalid("print name is empty")
	}
	if err := checkDuration("duration", minutes); err != nil {
		return core.PrintTask{}, err
	}

	task := core.NewPrint(name, minutes)
	s.append("add_print", task)
	return task, nil
}

// AddGap appends a gap. An empty name becomes "Prep Time".
func (s *Session) AddGap(name string, minutes int) (core.GapTask, error) {
	gap, err := newGap(name, minutes)
	if err != nil {
		return core.GapTask{}, err
	}
	s.append("add_gap", gap)
	return gap, nil
}

// AddDefaultGap appends a gap of the default length.
func (s *Session) AddDefaultGap() (core.GapTask, error) {
	return s.AddGap("", s.state.DefaultGapMinutes)
}

// AddWait appends a wait-until item. An empty name becomes "Wait Until".
func (s *Session) AddWait(name, hhmm string) (core.WaitUntilTask, error) {
	wait, err := newWait(name, hhmm)
	if err != nil {
		return core.WaitUntilTask{}, err
	}
	s.append("add_wait", wait)
	return wait, nil
}

// InsertGapAfter places a gap right after afterID, or at the tail when
// afterID is not queued.
func (s *Session) InsertGapAfter(afterID string, minutes int) (core.GapTask, error) {
	gap, err := newGap("", minutes)
	if err != nil {
		return core.GapTask{}, err
	}
	s.insertAfter("insert_gap", afterID, gap)
	return gap, nil
}

// InsertWaitAfter places a wait right after afterID, or at the tail when
// afterID is not queued.
func (s *Session) InsertWaitAfter(afterID, hhmm string) (core.WaitUntilTask, error) {
	wait, err := newWait("", hhmm)
	if err != nil {
		return core.WaitUntilTask{}, err
	}
	s.insertAfter("insert_wait", afterID, wait)
	return wait, nil
}

// Remove deletes the item with id. A missing id changes nothing and
// returns errors.ErrNotFound.
func (s *Session) Remove(id string) error {
	if s.state.Queue.Index(id) < 0 {
		return errors.Errorf(errors.ErrNotFound, "%q", id)
	}
	s.commit("remove", s.with(func(st *core.State) {
		st.Queue = st.Queue.RemoveByID(id)
	}))
	return nil
}

// Reorder arranges the queue in the order of ids. Unknown ids are ignored
// and unlisted items keep their relative order at the end.
func (s *Session) Reorder(ids []string) {
	s.commit("reorder", s.with(func(st *core.State) {
		st.Queue = st.Queue.Arrange(ids)
	}))
}

// Move shifts the item with id by delta positions, clamped to the queue.
func (s *Session) Move(id string, delta int) error {
	if s.state.Queue.Index(id) < 0 {
		return errors.Errorf(errors.ErrNotFound, "%q", id)
	}
	if delta == 0 {
		return nil
	}
	s.commit("move", s.with(func(st *core.State) {
		st.Queue = st.Queue.Move(id, delta)
	}))
	return nil
}

// Duplicate appends a copy of the item with id under a fresh id.
func (s *Session) Duplicate(id string) (core.Item, error) {
	q, dup, ok := s.state.Queue.DuplicateByID(id)
	if !ok {
		return nil, errors.Errorf(errors.ErrNotFound, "%q", id)
	}
	s.commit("duplicate", s.with(func(st *core.State) {
		st.Queue = q
	}))
	return dup, nil
}

// Promote makes the print job with id the current task, ending now plus its
// duration, and removes it from the queue. Gaps and waits are rejected with
// errors.ErrNotPromotable and nothing changes.
func (s *Session) Promote(id string) (*core.CurrentTask, error) {
	item, ok := s.state.Queue.Find(id)
	if !ok {
		return nil, errors.Errorf(errors.ErrNotFound, "%q", id)
	}

	q, current, ok := s.state.Queue.PromoteToCurrent(id, s.now())
	if !ok {
		s.logger.Debug("promotion rejected",
			zap.String(logging.FieldItemID, id),
			zap.String(logging.FieldItemKind, string(item.Kind())))
		return nil, errors.Errorf(errors.ErrNotPromotable, "%s %q is a %s", item.ItemName(), id, item.Kind())
	}

	s.commit("promote", s.with(func(st *core.State) {
		st.Queue = q
		st.Current = current
	}))
	return s.Current(), nil
}

// ClearQueue removes every queued item. The current task is kept.
func (s *Session) ClearQueue() {
	s.commit("clear_queue", s.with(func(st *core.State) {
		st.Queue = st.Queue.Clear()
	}))
}

// SetDefaultGap stores the default gap length.
func (s *Session) SetDefaultGap(minutes int) error {
	if minutes < 0 {
		return errors.Invalid("default gap duration must not be negative, got %d", minutes)
	}
	if minutes > timeutil.MaxMinutes {
		return errors.Invalid("default gap %d minutes exceeds the %d minute limit", minutes, timeutil.MaxMinutes)
	}
	s.commit("set_default_gap", s.with(func(st *core.State) {
		st.DefaultGapMinutes = minutes
	}))
	return nil
}

// Reset clears the current task and queue and restores the default gap.
func (s *Session) Reset() {
	s.commit("reset", core.NewState(s.gap))
}

func (s *Session) append(op string, item core.Item) {
	s.commit(op, s.with(func(st *core.State) {
		st.Queue = st.Queue.Append(item)
	}))
}

func (s *Session) insertAfter(op, afterID string, item core.Item) {
	s.commit(op, s.with(func(st *core.State) {
		st.Queue = st.Queue.InsertAfter(afterID, item)
	}))
}

func newGap(name string, minutes int) (core.GapTask, error) {
	if err := checkDuration("gap duration", minutes); err != nil {
		return core.GapTask{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultGapName
	}
	return core.NewGap(name, minutes), nil
}

func newWait(name, hhmm string) (core.WaitUntilTask, error) {
	clock, err := timeutil.ParseClock(hhmm)
	if err != nil {
		return core.WaitUntilTask{}, errors.Invalid("%v", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultWaitName
	}
	return core.NewWait(name, clock), nil
}
