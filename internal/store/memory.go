package store

import (
	"sync"

	"github.com/tessro/printq/internal/core"
)

// MemoryStore keeps the encoded blob in memory. Saves go through the same
// codec as DiskStore.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
	err   error
	gap   int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{gap: core.DefaultGapMinutes}
}

// WithDefaultGap sets the gap length used before the first save and when
// the blob has none.
func (m *MemoryStore) WithDefaultGap(minutes int) *MemoryStore {
	m.gap = minutes
	return m
}

// Load decodes the last saved blob.
func (m *MemoryStore) Load() (core.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return core.NewState(m.gap), nil
	}
	return DecodeWithGap(m.data, m.gap)
}

// Save encodes state, or returns the error set with FailWith.
func (m *MemoryStore) Save(s core.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}
	m.data = data
	m.saves++
	return nil
}

// Path returns a placeholder path.
func (m *MemoryStore) Path() string {
	return ":memory:"
}

// SetRaw replaces the stored blob.
func (m *MemoryStore) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}

// Raw returns the stored blob.
func (m *MemoryStore) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// Saves returns how many saves succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FailWith makes subsequent saves return err. Pass nil to clear.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
