// Package snapshot persists list position across view changes.
//
// When the reader drills into an entry, the UI saves a Snapshot of the
// current list: the loaded entries, the pagination cursor, and the filter
// fingerprint they were loaded under. When the reader comes back, the UI
// consumes the snapshot and restores the list without refetching, but only
// if the filter state still matches the fingerprint the snapshot was taken
// under. A snapshot is consumed at most once.
package snapshot

import (
	"sync"
	"time"

	"github.com/tirtza-weinfeld/carta/internal/query"
)

// OriginDetail marks a snapshot taken on entry into the detail view.
const OriginDetail = "detail"

// Snapshot captures a list position at a moment in time.
type Snapshot struct {
	Entries      []query.Entry `json:"entries"`
	Cursor       string        `json:"cursor"`
	HasNext      bool          `json:"has_next"`
	Fingerprint  string        `json:"fingerprint"`
	ScrollOffset int           `json:"scroll_offset"`
	OriginMarker string        `json:"origin_marker,omitempty"`
	SavedAt      time.Time     `json:"saved_at"`
}

// Store saves and restores list snapshots.
type Store interface {
	// Save records the snapshot, replacing any previous one.
	Save(s Snapshot) error

	// Consume returns the saved snapshot if its origin marker is set and
	// its fingerprint matches, clearing the marker so a second Consume
	// with the same fingerprint returns ok=false. A fingerprint mismatch
	// leaves the snapshot intact for a later matching Consume.
	Consume(fingerprint string) (Snapshot, bool, error)
}

// MemoryStore keeps the snapshot in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	snap Snapshot
	set  bool
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save records the snapshot, replacing any previous one.
func (m *MemoryStore) Save(s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now()
	}
	m.snap = s
	m.set = true
	return nil
}

// Consume implements Store.
func (m *MemoryStore) Consume(fingerprint string) (Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set || m.snap.OriginMarker == "" || len(m.snap.Entries) == 0 {
		return Snapshot{}, false, nil
	}
	if m.snap.Fingerprint != fingerprint {
		return Snapshot{}, false, nil
	}

	snap := m.snap
	m.snap.OriginMarker = ""
	return snap, true, nil
}
