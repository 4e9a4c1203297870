// Package catalog holds the static, precomputed catalog metadata.
//
// The catalog is a build-time artifact: a JSON array of items loaded once at
// process start. A malformed payload is a load-time failure, not a runtime
// condition - the process cannot serve the catalog without it.
//
// # Thread Safety
//
// A loaded Store is immutable and may be shared freely across views without
// locking. There is no mutation API; a reload (development hot-swap) replaces
// the store wholesale.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Category is the difficulty tier of a catalog item.
type Category string

const (
	Easy   Category = "easy"
	Medium Category = "medium"
	Hard   Category = "hard"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Rank returns the fixed ordering rank of the category (easy=1, medium=2,
// hard=3). Unknown categories sort after known ones.
func (c Category) Rank() int {
	switch c {
	case Easy:
		return 1
	case Medium:
		return 2
	case Hard:
		return 3
	}
	return 4
}

// Item is one catalog entry. Items are immutable after load.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasTag reports whether the item carries the given tag slug.
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Store is the read-only, in-memory catalog.
type Store struct {
	items []Item
	byID  map[string]int
}

// Load deserializes a catalog payload. It validates that every item has a
// non-empty, unique id and a known category; any violation fails the load.
func Load(r io.Reader) (*Store, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var items []Item
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	byID := make(map[string]int, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("catalog item %d: empty id", i)
		}
		if prev, ok := byID[item.ID]; ok {
			return nil, fmt.Errorf("catalog item %d: duplicate id %q (first at %d)", i, item.ID, prev)
		}
		if !item.Category.Valid() {
			return nil, fmt.Errorf("catalog item %q: unknown category %q", item.ID, item.Category)
		}
		byID[item.ID] = i
	}

	return &Store{items: items, byID: byID}, nil
}

// LoadFile loads a catalog from a JSON file on disk.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return s, nil
}

// Empty returns a catalog with no items.
func Empty() *Store {
	return &Store{byID: make(map[string]int)}
}

// Items returns the catalog in original load order. The returned slice is a
// copy; the underlying items are immutable.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// ByID looks up an item by its id.
func (s *Store) ByID(id string) (Item, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// Len returns the number of items in the catalog.
func (s *Store) Len() int {
	return len(s.items)
}

// Tags returns the distinct tag slugs across the catalog, in first-seen
// order. Used to drive the tag selector.
func (s *Store) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, item := range s.items {
		for _, t := range item.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}
