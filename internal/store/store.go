// Package store persists the scheduler state as a single JSON blob.
package store

import (
	"github.com/tessro/printq/internal/core"
)

// StateKey is the key the blob is stored under.
const StateKey = "scheduler-state"

// Store loads and saves the scheduler state.
type Store interface {
	// Load returns the saved state. A store that has never been written
	// returns the default state and no error. A corrupt blob returns the
	// recoverable part of the state together with an error wrapping
	// errors.ErrCorruptState.
	Load() (core.State, error)
	Save(s core.State) error
	// Path describes where the state lives.
	Path() string
}
