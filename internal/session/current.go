package session

import (
	"math"
	"strings"
	"time"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/errors"
	"github.com/tessro/printq/internal/timeutil"
)

// SetCurrent starts a print ending minutes from now, replacing any running
// task.
func (s *Session) SetCurrent(name string, minutes int) (*core.CurrentTask, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Invalid("print name is empty")
	}
	if err := checkDuration("duration", minutes); err != nil {
		return nil, err
	}

	now := s.now()
	s.setCurrent("set_current", &core.CurrentTask{
		Task:    core.NewPrint(name, minutes),
		EndTime: timeutil.AddMinutes(now, minutes),
	})
	return s.Current(), nil
}

// SetCurrentUntil starts a print that finishes at end. The recorded
// duration is the whole minutes from now to end, rounded up, and must be
// positive.
func (s *Session) SetCurrentUntil(name string, end time.Time) (*core.CurrentTask, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Invalid("print name is empty")
	}
	minutes := ceilMinutes(end.Sub(s.now()))
	if minutes <= 0 {
		return nil, errors.Invalid("completion timestamp %s is not in the future", end.Format(time.RFC3339))
	}
	if minutes > timeutil.MaxMinutes {
		return nil, errors.Invalid("completion timestamp %s is too far away", end.Format(time.RFC3339))
	}

	s.setCurrent("set_current_until", &core.CurrentTask{
		Task:    core.NewPrint(name, minutes),
		EndTime: end,
	})
	return s.Current(), nil
}

// UpdateEndTime moves the running task's finish time.
func (s *Session) UpdateEndTime(end time.Time) (*core.CurrentTask, error) {
	if s.state.Current == nil {
		return nil, errors.ErrNoCurrentTask
	}
	if end.IsZero() {
		return nil, errors.Invalid("timestamp is empty")
	}
	s.commit("update_end_time", s.with(func(st *core.State) {
		st.Current.EndTime = end
	}))
	return s.Current(), nil
}

// SetRemaining makes the running task finish minutes from now.
func (s *Session) SetRemaining(minutes int) (*core.CurrentTask, error) {
	if s.state.Current == nil {
		return nil, errors.ErrNoCurrentTask
	}
	if err := checkDuration("duration", minutes); err != nil {
		return nil, err
	}
	return s.UpdateEndTime(timeutil.AddMinutes(s.now(), minutes))
}

// ExtendCurrent pushes the running task's finish time by minutes, which may
// be negative to pull it in.
func (s *Session) ExtendCurrent(minutes int) (*core.CurrentTask, error) {
	if s.state.Current == nil {
		return nil, errors.ErrNoCurrentTask
	}
	if minutes == 0 {
		return nil, errors.Invalid("duration must not be zero")
	}
	if minutes > timeutil.MaxMinutes || minutes < -timeutil.MaxMinutes {
		return nil, errors.Invalid("duration %d minutes exceeds the %d minute limit", minutes, timeutil.MaxMinutes)
	}
	return s.UpdateEndTime(timeutil.AddMinutes(s.state.Current.EndTime, minutes))
}

// ClearCurrent stops tracking the running task. Clearing when nothing runs
// is a no-op.
func (s *Session) ClearCurrent() {
	if s.state.Current == nil {
		return
	}
	s.setCurrent("clear_current", nil)
}

func (s *Session) setCurrent(op string, current *core.CurrentTask) {
	s.commit(op, s.with(func(st *core.State) {
		st.Current = current
	}))
}

// checkDuration rejects minutes outside (0, timeutil.MaxMinutes].
func checkDuration(what string, minutes int) error {
	if minutes <= 0 {
		return errors.Invalid("%s must be positive, got %d minutes", what, minutes)
	}
	if minutes > timeutil.MaxMinutes {
		return errors.Invalid("%s %d minutes exceeds the %d minute limit", what, minutes, timeutil.MaxMinutes)
	}
	return nil
}

func ceilMinutes(d time.Duration) int {
	return int(math.Ceil(d.Minutes()))
}
