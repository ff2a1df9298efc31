package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/errors"
)

func TestDiskStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	s, err := NewDiskStore(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}

	// First run returns defaults
	state, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if state.DefaultGapMinutes != core.DefaultGapMinutes || len(state.Queue) != 0 {
		t.Errorf("Load() = %+v, want defaults", state)
	}

	end := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	saved := core.State{
		Current: &core.CurrentTask{Task: core.PrintTask{ID: "p0", Name: "Vase", DurationMinutes: 120}, EndTime: end},
		Queue: core.Queue{
			core.PrintTask{ID: "p1", Name: "Clip", DurationMinutes: 20},
			core.GapTask{ID: "g1", Name: "Prep Time", DurationMinutes: 15},
		},
		DefaultGapMinutes: 25,
	}
	if err := s.Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Current == nil || loaded.Current.Task != saved.Current.Task || !loaded.Current.EndTime.Equal(end) {
		t.Errorf("Current = %+v, want %+v", loaded.Current, saved.Current)
	}
	if len(loaded.Queue) != 2 || loaded.Queue[0] != saved.Queue[0] || loaded.Queue[1] != saved.Queue[1] {
		t.Errorf("Queue = %#v, want %#v", loaded.Queue, saved.Queue)
	}
	if loaded.DefaultGapMinutes != 25 {
		t.Errorf("DefaultGapMinutes = %d, want 25", loaded.DefaultGapMinutes)
	}

	// Verify file permissions
	info, err := os.Stat(filepath.Join(dir, StateKey))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("File permissions = %o, want 0600", mode)
	}
}

func TestDiskStoreSharedAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	a, err := NewDiskStore(dir, nil)
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}
	b, err := NewDiskStore(dir, nil)
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}

	if err := a.Save(core.State{Queue: core.Queue{core.PrintTask{ID: "p1", Name: "One", DurationMinutes: 5}}, DefaultGapMinutes: 15}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := a.Save(core.State{Queue: core.Queue{core.PrintTask{ID: "p2", Name: "Two", DurationMinutes: 5}}, DefaultGapMinutes: 15}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	state, err := b.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ids := state.Queue.IDs(); len(ids) != 1 || ids[0] != "p2" {
		t.Errorf("Queue ids = %v, want [p2]", ids)
	}
}

func TestDiskStoreCorruptBlob(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, StateKey), []byte("not json"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s, err := NewDiskStore(dir, nil)
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}

	state, err := s.Load()
	if !errors.Is(err, errors.ErrCorruptState) {
		t.Fatalf("Load() error = %v, want ErrCorruptState", err)
	}
	if state.DefaultGapMinutes != core.DefaultGapMinutes {
		t.Errorf("DefaultGapMinutes = %d, want default", state.DefaultGapMinutes)
	}
}

func TestDiskStoreDefaultGap(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want int
	}{
		{"first run", "", 25},
		{"missing gap", `{"queue": []}`, 25},
		{"zero gap", `{"queue": [], "defaultGapMinutes": 0}`, 25},
		{"saved gap wins", `{"queue": [], "defaultGapMinutes": 40}`, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.blob != "" {
				if err := os.WriteFile(filepath.Join(dir, StateKey), []byte(tt.blob), 0600); err != nil {
					t.Fatalf("WriteFile() error = %v", err)
				}
			}

			s, err := NewDiskStore(dir, nil)
			if err != nil {
				t.Fatalf("NewDiskStore() error = %v", err)
			}
			state, err := s.WithDefaultGap(25).Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if state.DefaultGapMinutes != tt.want {
				t.Errorf("DefaultGapMinutes = %d, want %d", state.DefaultGapMinutes, tt.want)
			}
		})
	}
}

func TestDiskStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	s, err := NewDiskStore("~/printq-state", nil)
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}
	if want := filepath.Join(home, "printq-state"); s.Path() != want {
		t.Errorf("Path() = %q, want %q", s.Path(), want)
	}
}

func TestDiskStoreWatch(t *testing.T) {
	dir := t.TempDir()

	s, err := NewDiskStore(dir, nil)
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	other, err := NewDiskStore(dir, nil)
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}
	if err := other.Save(core.DefaultState()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	cancel()
	for range changes {
		// drain until closed
	}
}
