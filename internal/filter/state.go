package filter

import (
	"net/url"
	"strings"
)

// All is the wildcard selector value for category and tag.
const All = "all"

// SortKey selects the ordering of the visible set.
type SortKey string

const (
	// SortNumber orders by the numeric prefix of the item id.
	SortNumber SortKey = "number"
	// SortCategory orders by the fixed category rank table.
	SortCategory SortKey = "category"
	// SortAlpha orders by locale-aware title comparison.
	SortAlpha SortKey = "alpha"
	// SortCreated and SortUpdated order by timestamp. Date keys are
	// newest-first under Asc; Desc inverts that baseline. This asymmetry is
	// deliberate ("show me new things first") and must be preserved.
	SortCreated SortKey = "created"
	SortUpdated SortKey = "updated"
)

// Direction is the sort direction applied on top of a key's natural order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// State is the live filter state for one view. It fully determines the
// visible subset and display order; it carries no item-derived caches.
type State struct {
	Search   string    // free text, matched against id and title only
	Category string    // All or a category slug
	Tag      string    // All or a tag slug (single-select)
	Sort     SortKey   // malformed keys fall back to SortNumber
	Dir      Direction // anything but Desc is treated as Asc
}

// DefaultState returns the state every view starts from.
func DefaultState() State {
	return State{
		Category: All,
		Tag:      All,
		Sort:     SortNumber,
		Dir:      Asc,
	}
}

// Normalize fills zero values with defaults so that states built from
// partial inputs compare, encode, and query consistently.
func Normalize(s State) State {
	return s.normalized()
}

// normalized fills zero values with defaults so that states decoded from
// partial inputs compare and encode consistently.
func (s State) normalized() State {
	if s.Category == "" {
		s.Category = All
	}
	if s.Tag == "" {
		s.Tag = All
	}
	switch s.Sort {
	case SortNumber, SortCategory, SortAlpha, SortCreated, SortUpdated:
	default:
		s.Sort = SortNumber
	}
	if s.Dir != Desc {
		s.Dir = Asc
	}
	s.Search = strings.TrimSpace(s.Search)
	return s
}

// Values serializes the state to flat string key-value pairs. The encoding
// is lossless and round-trips through Decode.
func (s State) Values() url.Values {
	s = s.normalized()
	v := url.Values{}
	v.Set("q", s.Search)
	v.Set("category", s.Category)
	v.Set("tag", s.Tag)
	v.Set("sort", string(s.Sort))
	v.Set("dir", string(s.Dir))
	return v
}

// Encode returns the canonical query-string form of the state.
func (s State) Encode() string {
	return s.Values().Encode()
}

// Decode rebuilds a state from flat key-value pairs. Missing or malformed
// keys fall back to their defaults; Decode never fails.
func Decode(v url.Values) State {
	s := State{
		Search:   v.Get("q"),
		Category: v.Get("category"),
		Tag:      v.Get("tag"),
		Sort:     SortKey(v.Get("sort")),
		Dir:      Direction(v.Get("dir")),
	}
	return s.normalized()
}

// DecodeQuery is Decode over a raw query string. A string that fails to
// parse yields the default state.
func DecodeQuery(raw string) State {
	v, err := url.ParseQuery(raw)
	if err != nil {
		return DefaultState()
	}
	return Decode(v)
}

// Fingerprint derives the key uniquely identifying this filter combination.
// It is used to detect "the filters changed under me" across async
// boundaries: page results and snapshots are only honored when their
// fingerprint matches the live state's.
func (s State) Fingerprint() string {
	return s.Encode()
}
