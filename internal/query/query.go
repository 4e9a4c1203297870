// Package query defines the boundary contract to the paginated entry
// source. The list controller depends on this interface, not on a concrete
// store, so tests can substitute a fake pager.
package query

import (
	"context"

	"github.com/tirtza-weinfeld/carta/internal/filter"
)

// Entry is one paginated catalog entry as returned by the query
// collaborator. Unlike catalog.Item it is not owned by this process's
// metadata store.
type Entry struct {
	ID                string `json:"id"`
	Lemma             string `json:"lemma"`
	LanguageCode      string `json:"language_code"`
	DefinitionPreview string `json:"definition_preview"`
	ExampleText       string `json:"example_text,omitempty"`
}

// Page is one fetched page of entries.
//
// NextCursor is an opaque continuation token: empty means there are no more
// pages (HasNext is false). Re-fetching with the same cursor is an
// idempotent read, so a caller may safely retry a failed fetch.
type Page struct {
	Entries    []Entry
	NextCursor string
	HasNext    bool
}

// Pager fetches pages of entries matching a filter state.
//
// An empty cursor requests the first page. Implementations must apply the
// same visibility semantics as filter.Visible so that page one of a new
// filter is consistent with the card view.
type Pager interface {
	FetchPage(ctx context.Context, s filter.State, cursor string, pageSize int) (Page, error)
}
