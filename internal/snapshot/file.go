package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the snapshot as JSON so list position survives restarts.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store writing to the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the snapshot file location under the app data dir.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".carta", "snapshot.json")
}

// Save writes the snapshot to disk, replacing any previous one.
func (f *FileStore) Save(s Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Clear removes any persisted snapshot. Called on app start so restore
// semantics stay scoped to a single session.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// Consume implements Store. A consumed snapshot is rewritten with its origin
// marker cleared; a fingerprint mismatch leaves the file untouched.
func (f *FileStore) Consume(fingerprint string) (Snapshot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt file can never be restored. Drop it.
		os.Remove(f.path)
		return Snapshot{}, false, nil
	}

	if snap.OriginMarker == "" || len(snap.Entries) == 0 {
		return Snapshot{}, false, nil
	}
	if snap.Fingerprint != fingerprint {
		return Snapshot{}, false, nil
	}

	cleared := snap
	cleared.OriginMarker = ""
	out, err := json.MarshalIndent(cleared, "", "  ")
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(f.path, out, 0644); err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: %w", err)
	}
	return snap, true, nil
}
