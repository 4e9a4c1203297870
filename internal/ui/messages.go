// Package ui provides the Bubble Tea TUI for carta.
package ui

import "github.com/tirtza-weinfeld/carta/internal/query"

// PageLoaded is sent when a page fetch completes.
type PageLoaded struct {
	Entries []query.Entry
	HasNext bool
	Err     error
}

// SearchCommitted is sent when the debounced search text has been quiet
// long enough to apply.
type SearchCommitted struct {
	Query string
}

// SeedComplete is sent when catalog seeding finishes.
type SeedComplete struct {
	NewEntries int
	Err        error
}
