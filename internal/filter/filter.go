// Package filter computes the visible, ordered subset of the catalog.
// The predicate and the view computation are pure: same inputs, same
// outputs, no side effects. Both run on every keystroke, so they must never
// fail - malformed inputs degrade to defaults instead.
package filter

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tirtza-weinfeld/carta/internal/catalog"
)

// HiddenRank is the sentinel rank for items excluded by the filter. It is
// past any real position, so a hidden item that gets rendered anyway sorts
// last.
const HiddenRank = 9999

// Visible reports whether the item matches the filter state.
//
// Search matches id and title only - not tags, not body content. That keeps
// the predicate O(len(search)) per item regardless of catalog size, cheap
// enough to run per item on every keystroke.
func Visible(item catalog.Item, s State) bool {
	s = s.normalized()

	if s.Category != All && string(item.Category) != s.Category {
		return false
	}
	if s.Tag != All && !item.HasTag(s.Tag) {
		return false
	}
	if s.Search != "" {
		q := strings.ToLower(s.Search)
		if !strings.Contains(strings.ToLower(item.ID), q) &&
			!strings.Contains(strings.ToLower(item.Title), q) {
			return false
		}
	}
	return true
}

// Stats summarizes a computed view.
type Stats struct {
	Total       int                      // items in the catalog
	Visible     int                      // items matching the filter
	PerCategory map[catalog.Category]int // counts over the *filtered* set
}

// View is the result of ComputeView: the display order of the visible items
// and a rank per id so the presentation layer can position items without
// reordering its own children.
type View struct {
	OrderedIDs []string
	Rank       map[string]int
	Stats      Stats
}

// ComputeView filters items with Visible and sorts the survivors.
//
// All sorts are stable: ties keep the original catalog order. Non-date keys
// order ascending naturally and negate under Desc. Date keys order
// newest-first naturally and negate under Desc, so Asc on a date key shows
// the newest item first.
func ComputeView(items []catalog.Item, s State) View {
	s = s.normalized()

	visible := make([]int, 0, len(items))
	perCategory := make(map[catalog.Category]int)
	for i, item := range items {
		if Visible(item, s) {
			visible = append(visible, i)
			perCategory[item.Category]++
		}
	}

	cmp := comparator(items, s.Sort)
	sort.SliceStable(visible, func(a, b int) bool {
		c := cmp(visible[a], visible[b])
		if s.Dir == Desc {
			c = -c
		}
		return c < 0
	})

	view := View{
		OrderedIDs: make([]string, len(visible)),
		Rank:       make(map[string]int, len(items)),
		Stats: Stats{
			Total:       len(items),
			Visible:     len(visible),
			PerCategory: perCategory,
		},
	}
	for _, item := range items {
		view.Rank[item.ID] = HiddenRank
	}
	for pos, idx := range visible {
		view.OrderedIDs[pos] = items[idx].ID
		view.Rank[items[idx].ID] = pos
	}
	return view
}

// comparator returns a three-way compare over item indices for the given
// key. Unknown keys fall back to SortNumber - this runs on every filter
// change and must never panic the view.
func comparator(items []catalog.Item, key SortKey) func(a, b int) int {
	switch key {
	case SortCategory:
		return func(a, b int) int {
			return items[a].Category.Rank() - items[b].Category.Rank()
		}
	case SortAlpha:
		// A collator is not safe for concurrent use, so each view
		// computation gets its own.
		coll := collate.New(language.English, collate.IgnoreCase)
		return func(a, b int) int {
			return coll.CompareString(items[a].Title, items[b].Title)
		}
	case SortCreated:
		return func(a, b int) int {
			return compareNewestFirst(items[a].CreatedAt.UnixNano(), items[b].CreatedAt.UnixNano())
		}
	case SortUpdated:
		return func(a, b int) int {
			return compareNewestFirst(items[a].UpdatedAt.UnixNano(), items[b].UpdatedAt.UnixNano())
		}
	default: // SortNumber and anything malformed
		return func(a, b int) int {
			return numericPrefix(items[a].ID) - numericPrefix(items[b].ID)
		}
	}
}

// compareNewestFirst orders larger (newer) timestamps before smaller ones.
func compareNewestFirst(a, b int64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

// numericPrefix parses the leading digits of an id. Ids without a numeric
// prefix sort as 0.
func numericPrefix(id string) int {
	n := 0
	for i := 0; i < len(id) && id[i] >= '0' && id[i] <= '9'; i++ {
		n = n*10 + int(id[i]-'0')
	}
	return n
}
