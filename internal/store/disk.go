package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"github.com/tessro/printq/internal/core"
)

// DiskStore keeps the state blob in a diskv directory. Writes from
// concurrent printq processes are serialized with a lock file.
type DiskStore struct {
	dir    string
	d      *diskv.Diskv
	lock   *flock.Flock
	logger *zap.Logger
	gap    int
}

// NewDiskStore opens (creating if needed) the state directory at path.
// A leading ~ is expanded to the user's home directory.
func NewDiskStore(path string, logger *zap.Logger) (*DiskStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dir, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand store path: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &DiskStore{
		dir: dir,
		d: diskv.New(diskv.Options{
			BasePath:  dir,
			Transform: func(string) []string { return []string{} },
			TempDir:   filepath.Join(dir, ".tmp"),
			PathPerm:  0700,
			FilePerm:  0600,
			// Other processes write the same key, so nothing is cached.
			CacheSizeMax: 0,
		}),
		lock:   flock.New(filepath.Join(dir, StateKey+".lock")),
		logger: logger,
		gap:    core.DefaultGapMinutes,
	}, nil
}

// WithDefaultGap sets the gap length used on first run and when the saved
// blob has none.
func (s *DiskStore) WithDefaultGap(minutes int) *DiskStore {
	s.gap = minutes
	return s
}

// Load reads the state blob.
func (s *DiskStore) Load() (core.State, error) {
	if err := s.lock.RLock(); err != nil {
		return core.NewState(s.gap), fmt.Errorf("failed to lock store: %w", err)
	}
	defer s.unlock()

	if !s.d.Has(StateKey) {
		return core.NewState(s.gap), nil
	}

	data, err := s.d.Read(StateKey)
	if err != nil {
		return core.NewState(s.gap), fmt.Errorf("failed to read state: %w", err)
	}

	state, err := DecodeWithGap(data, s.gap)
	if err != nil {
		s.logger.Warn("state blob partly unreadable", zap.String("path", s.file()), zap.Error(err))
	}
	return state, err
}

// Save writes the state blob.
func (s *DiskStore) Save(state core.State) error {
	data, err := Encode(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock store: %w", err)
	}
	defer s.unlock()

	if err := s.d.Write(StateKey, data); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	s.logger.Debug("state saved", zap.String("path", s.file()), zap.Int("queue_len", len(state.Queue)))
	return nil
}

// Path returns the state directory.
func (s *DiskStore) Path() string {
	return s.dir
}

func (s *DiskStore) file() string {
	return filepath.Join(s.dir, StateKey)
}

func (s *DiskStore) unlock() {
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release store lock", zap.Error(err))
	}
}
