package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch emits a value whenever the state blob changes on disk, coalescing
// bursts of writes. The channel is closed once ctx is done or the watcher
// fails. Callers should drain it.
func (s *DiskStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	// Writes land via rename from the temp dir, so watch the directory
	// rather than the file.
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", s.dir, err)
	}

	changes := make(chan struct{}, 1)
	target := filepath.Clean(s.file())

	go func() {
		var mu sync.Mutex
		closed := false
		defer func() {
			mu.Lock()
			closed = true
			close(changes)
			mu.Unlock()
		}()
		defer func() {
			if err := watcher.Close(); err != nil {
				s.logger.Warn("store: watcher close", zap.Error(err))
			}
		}()

		send := func() {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			select {
			case changes <- struct{}{}:
			default:
				// A change is already pending.
			}
		}

		throttle := newThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Debug("store: watcher error", zap.Error(err))
				throttle.Trigger(send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				throttle.Trigger(send)
			}
		}
	}()

	return changes, nil
}

// throttle collapses rapid notifications into one call after delay.
type throttle struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
}

func newThrottle(delay time.Duration) *throttle {
	return &throttle{delay: delay}
}

func (t *throttle) Trigger(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		t.timer = nil
		t.mu.Unlock()
		fn()
	})
}

func (t *throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
