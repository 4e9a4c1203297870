package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/tirtza-weinfeld/carta/internal/catalog"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestVisibleCategory(t *testing.T) {
	item := catalog.Item{ID: "1-a", Title: "Alpha", Category: catalog.Easy}

	if !Visible(item, State{Category: All}) {
		t.Error("category all must not hide anything")
	}
	if !Visible(item, State{Category: "easy"}) {
		t.Error("matching category must be visible")
	}
	if Visible(item, State{Category: "hard"}) {
		t.Error("non-matching category must be hidden")
	}
}

func TestVisibleTag(t *testing.T) {
	item := catalog.Item{ID: "1-a", Title: "Alpha", Category: catalog.Easy, Tags: []string{"arrays", "dp"}}

	if !Visible(item, State{Tag: "dp"}) {
		t.Error("matching tag must be visible")
	}
	if Visible(item, State{Tag: "graphs"}) {
		t.Error("non-matching tag must be hidden")
	}
}

func TestVisibleSearch(t *testing.T) {
	item := catalog.Item{ID: "12-two-sum", Title: "Two Sum", Category: catalog.Easy, Tags: []string{"hashing"}}

	cases := []struct {
		search string
		want   bool
	}{
		{"", true},
		{"   ", true}, // whitespace-only = absent search
		{"TWO", true}, // case-insensitive
		{"two-su", true},
		{"12-", true}, // id matches too
		{"hashing", false}, // tags are not searched
		{"zzz", false},
	}
	for _, tc := range cases {
		got := Visible(item, State{Search: tc.search})
		if got != tc.want {
			t.Errorf("search %q: expected visible=%v, got %v", tc.search, tc.want, got)
		}
	}
}

func TestVisibleDeterministic(t *testing.T) {
	item := catalog.Item{ID: "1-a", Title: "Alpha", Category: catalog.Easy}
	s := State{Search: "alp", Category: "easy"}

	first := Visible(item, s)
	second := Visible(item, s)
	if first != second {
		t.Error("Visible must depend only on its arguments")
	}
}

func TestComputeViewIdempotent(t *testing.T) {
	items := []catalog.Item{
		{ID: "2-b", Title: "Beta", Category: catalog.Hard},
		{ID: "1-a", Title: "Alpha", Category: catalog.Easy},
	}
	s := State{Sort: SortNumber}

	v1 := ComputeView(items, s)
	v2 := ComputeView(items, s)

	if !reflect.DeepEqual(v1.OrderedIDs, v2.OrderedIDs) {
		t.Errorf("OrderedIDs differ between identical calls: %v vs %v", v1.OrderedIDs, v2.OrderedIDs)
	}
	if !reflect.DeepEqual(v1.Rank, v2.Rank) {
		t.Error("Rank differs between identical calls")
	}
}

func TestStableTieBreak(t *testing.T) {
	// Both items share category rank 1; original catalog order must hold.
	items := []catalog.Item{
		{ID: "b", Title: "B", Category: catalog.Easy},
		{ID: "a", Title: "A", Category: catalog.Easy},
	}

	v := ComputeView(items, State{Sort: SortCategory, Dir: Asc})
	want := []string{"b", "a"}
	if !reflect.DeepEqual(v.OrderedIDs, want) {
		t.Errorf("expected stable order %v, got %v", want, v.OrderedIDs)
	}
}

func TestNumberSortFallbackToZero(t *testing.T) {
	items := []catalog.Item{
		{ID: "5-later", Title: "Later", Category: catalog.Easy},
		{ID: "abc-no-number", Title: "No Number", Category: catalog.Easy},
		{ID: "3-mid", Title: "Mid", Category: catalog.Easy},
	}

	v := ComputeView(items, State{Sort: SortNumber, Dir: Asc})
	// abc-no-number parses as 0 and sorts first.
	want := []string{"abc-no-number", "3-mid", "5-later"}
	if !reflect.DeepEqual(v.OrderedIDs, want) {
		t.Errorf("expected %v, got %v", want, v.OrderedIDs)
	}
}

func TestDateSortNewestFirstUnderAsc(t *testing.T) {
	items := []catalog.Item{
		{ID: "old", Title: "Old", Category: catalog.Easy, CreatedAt: date("2024-01-01")},
		{ID: "new", Title: "New", Category: catalog.Easy, CreatedAt: date("2024-06-01")},
	}

	v := ComputeView(items, State{Sort: SortCreated, Dir: Asc})
	if v.OrderedIDs[0] != "new" {
		t.Errorf("date sort under asc must be newest-first, got %v", v.OrderedIDs)
	}

	// Desc inverts the newest-first baseline.
	v = ComputeView(items, State{Sort: SortCreated, Dir: Desc})
	if v.OrderedIDs[0] != "old" {
		t.Errorf("date sort under desc must be oldest-first, got %v", v.OrderedIDs)
	}
}

func TestUpdatedSort(t *testing.T) {
	items := []catalog.Item{
		{ID: "a", Title: "A", Category: catalog.Easy, UpdatedAt: date("2024-02-01")},
		{ID: "b", Title: "B", Category: catalog.Easy, UpdatedAt: date("2024-05-01")},
	}

	v := ComputeView(items, State{Sort: SortUpdated, Dir: Asc})
	if v.OrderedIDs[0] != "b" {
		t.Errorf("expected most recently updated first, got %v", v.OrderedIDs)
	}
}

func TestAlphaSortDesc(t *testing.T) {
	items := []catalog.Item{
		{ID: "1", Title: "Apple", Category: catalog.Easy},
		{ID: "2", Title: "banana", Category: catalog.Easy},
		{ID: "3", Title: "Cherry", Category: catalog.Easy},
	}

	v := ComputeView(items, State{Sort: SortAlpha, Dir: Desc})
	want := []string{"3", "2", "1"} // case-insensitive reverse alphabetical
	if !reflect.DeepEqual(v.OrderedIDs, want) {
		t.Errorf("expected %v, got %v", want, v.OrderedIDs)
	}
}

func TestMalformedSortKeyFallsBack(t *testing.T) {
	items := []catalog.Item{
		{ID: "2-b", Title: "B", Category: catalog.Easy},
		{ID: "1-a", Title: "A", Category: catalog.Easy},
	}

	v := ComputeView(items, State{Sort: SortKey("bogus")})
	want := []string{"1-a", "2-b"}
	if !reflect.DeepEqual(v.OrderedIDs, want) {
		t.Errorf("malformed sort key must fall back to number order, got %v", v.OrderedIDs)
	}
}

func TestHiddenRankSentinel(t *testing.T) {
	items := []catalog.Item{
		{ID: "1-a", Title: "Alpha", Category: catalog.Easy},
		{ID: "2-b", Title: "Beta", Category: catalog.Hard},
	}

	v := ComputeView(items, State{Category: "easy"})
	if v.Rank["1-a"] != 0 {
		t.Errorf("expected rank 0 for visible item, got %d", v.Rank["1-a"])
	}
	if v.Rank["2-b"] != HiddenRank {
		t.Errorf("expected sentinel rank %d for hidden item, got %d", HiddenRank, v.Rank["2-b"])
	}
}

func TestEndToEndScenario(t *testing.T) {
	items := []catalog.Item{
		{ID: "1-a", Title: "Alpha", Category: catalog.Easy},
		{ID: "2-b", Title: "Beta", Category: catalog.Hard},
		{ID: "3-c", Title: "Gamma", Category: catalog.Easy},
	}
	s := State{Category: "easy", Sort: SortAlpha, Dir: Asc}

	v := ComputeView(items, s)

	want := []string{"1-a", "3-c"}
	if !reflect.DeepEqual(v.OrderedIDs, want) {
		t.Errorf("expected %v, got %v", want, v.OrderedIDs)
	}
	if v.Stats.Visible != 2 {
		t.Errorf("expected 2 visible, got %d", v.Stats.Visible)
	}
	if v.Stats.Total != 3 {
		t.Errorf("expected total 3, got %d", v.Stats.Total)
	}
	if v.Stats.PerCategory[catalog.Easy] != 2 {
		t.Errorf("expected 2 easy in filtered set, got %d", v.Stats.PerCategory[catalog.Easy])
	}
	if v.Stats.PerCategory[catalog.Hard] != 0 {
		t.Errorf("per-category counts are over the filtered set, got %d hard", v.Stats.PerCategory[catalog.Hard])
	}
}
