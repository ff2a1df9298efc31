// Package session owns the scheduler state. Every operation validates its
// input, applies the change and saves. Rejected input leaves the state
// untouched.
package session

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/errors"
	"github.com/tessro/printq/internal/logging"
	"github.com/tessro/printq/internal/store"
	"github.com/tessro/printq/internal/timeline"
)

const (
	// DefaultGapName names gaps added without an explicit name.
	DefaultGapName = "Prep Time"
	// DefaultWaitName names waits added without an explicit name.
	DefaultWaitName = "Wait Until"
)

// Session is the single holder of the scheduler state.
type Session struct {
	state     core.State
	store     store.Store
	logger    *zap.Logger
	projector timeline.Projector
	now       func() time.Time
	gap       int
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithLogger sets the logger. The default discards.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultGap sets the gap length Reset restores. Values that are not
// positive fall back to core.DefaultGapMinutes.
func WithDefaultGap(minutes int) Option {
	return func(s *Session) {
		s.gap = minutes
	}
}

// Open loads state from st. The session is always usable: if the saved
// blob was corrupt the returned error wraps errors.ErrCorruptState and the
// session holds whatever could be recovered.
func Open(st store.Store, opts ...Option) (*Session, error) {
	s := &Session{
		store:  st,
		logger: zap.NewNop(),
		now:    time.Now,
		gap:    core.DefaultGapMinutes,
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := st.Load()
	if err != nil {
		s.logger.Warn("loaded state with errors", zap.String(logging.FieldStore, st.Path()), zap.Error(err))
	}
	s.state = state
	return s, err
}

// Reload re-reads the store, replacing in-memory state.
func (s *Session) Reload() error {
	state, err := s.store.Load()
	if err != nil {
		s.logger.Warn("reloaded state with errors", zap.String(logging.FieldStore, s.store.Path()), zap.Error(err))
	}
	s.state = state
	return err
}

// Now returns the session's current time.
func (s *Session) Now() time.Time {
	return s.now()
}

// State returns a copy of the full state.
func (s *Session) State() core.State {
	return s.state.Clone()
}

// Queue returns a copy of the queue.
func (s *Session) Queue() core.Queue {
	return s.state.Queue.Clone()
}

// Current returns a copy of the running task, or nil.
func (s *Session) Current() *core.CurrentTask {
	if s.state.Current == nil {
		return nil
	}
	cur := *s.state.Current
	return &cur
}

// DefaultGap returns the default gap length in minutes.
func (s *Session) DefaultGap() int {
	return s.state.DefaultGapMinutes
}

// Projection projects the queue from the current anchor.
func (s *Session) Projection() timeline.Projection {
	anchor := timeline.Anchor(s.state.Current, s.now())
	return s.projector.Project(anchor, s.state.Queue)
}

// Banner returns the queue completion time shown in the header, if any.
func (s *Session) Banner() (time.Time, bool) {
	return timeline.Banner(s.state.Current, s.Projection())
}

// Resolve turns a user reference into an item id. A reference is an exact
// id, a unique id prefix, or a 1-based queue position.
func (s *Session) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.Invalid("empty item reference")
	}
	if s.state.Queue.Index(ref) >= 0 {
		return ref, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.state.Queue) {
			return "", errors.WithSuggestion(
				errors.Errorf(errors.ErrNotFound, "no item at position %d", n),
				"Run 'printq queue' to see positions.")
		}
		return s.state.Queue[n-1].ItemID(), nil
	}

	var match string
	for _, id := range s.state.Queue.IDs() {
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", errors.Invalid("%q matches more than one item", ref)
			}
			match = id
		}
	}
	if match == "" {
		return "", errors.Errorf(errors.ErrNotFound, "%q", ref)
	}
	return match, nil
}

// commit replaces the state and saves it. Save failures are logged; the
// in-memory state stays authoritative.
func (s *Session) commit(op string, next core.State) {
	s.state = next
	if err := s.store.Save(s.state); err != nil {
		s.logger.Warn("failed to save state",
			zap.String(logging.FieldOp, op),
			zap.String(logging.FieldStore, s.store.Path()),
			zap.Error(err))
		return
	}
	s.logger.Debug("state saved", zap.String(logging.FieldOp, op), zap.Int("queue_len", len(s.state.Queue)))
}

// with returns a copy of the state for the next commit.
func (s *Session) with(fn func(*core.State)) core.State {
	next := s.state.Clone()
	fn(&next)
	return next
}
