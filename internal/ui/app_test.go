package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tirtza-weinfeld/carta/internal/catalog"
	"github.com/tirtza-weinfeld/carta/internal/filter"
	"github.com/tirtza-weinfeld/carta/internal/list"
	"github.com/tirtza-weinfeld/carta/internal/query"
	"github.com/tirtza-weinfeld/carta/internal/snapshot"
)

// testPager serves numbered entries without a database.
type testPager struct {
	entries []query.Entry
}

func (p *testPager) FetchPage(ctx context.Context, st filter.State, cursor string, pageSize int) (query.Page, error) {
	start := 0
	if cursor != "" {
		fmt.Sscanf(cursor, "%d", &start)
	}
	end := start + pageSize
	if end > len(p.entries) {
		end = len(p.entries)
	}
	page := query.Page{Entries: p.entries[start:end]}
	if end < len(p.entries) {
		page.HasNext = true
		page.NextCursor = fmt.Sprintf("%d", end)
	}
	return page, nil
}

func testApp(t *testing.T) App {
	t.Helper()

	payload := `[
		{"id": "1-two-sum", "title": "Two Sum", "category": "easy", "tags": ["arrays"]},
		{"id": "2-lru-cache", "title": "LRU Cache", "category": "hard", "tags": ["design"]},
		{"id": "3-three-sum", "title": "Three Sum", "category": "medium", "tags": ["arrays"]}
	]`
	cat, err := catalog.Load(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	pager := &testPager{entries: []query.Entry{
		{ID: "1-two-sum", Lemma: "Two Sum"},
		{ID: "2-lru-cache", Lemma: "LRU Cache"},
		{ID: "3-three-sum", Lemma: "Three Sum"},
	}}
	ctrl := list.NewController(pager, 2)
	return New(cat, ctrl, snapshot.NewMemoryStore(), 10*time.Millisecond, 2)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewComputesBrowseView(t *testing.T) {
	m := testApp(t)

	if m.view.Stats.Total != 3 || m.view.Stats.Visible != 3 {
		t.Errorf("expected 3/3 visible on defaults, got %d/%d", m.view.Stats.Visible, m.view.Stats.Total)
	}
	if m.view.OrderedIDs[0] != "1-two-sum" {
		t.Errorf("expected number order, got %v", m.view.OrderedIDs)
	}
}

func TestCategoryKeyNarrowsBrowse(t *testing.T) {
	m := testApp(t)

	model, _ := m.Update(keyRune('c'))
	m = model.(App)

	if m.state.Category != "easy" {
		t.Fatalf("expected category 'easy' after one press, got %q", m.state.Category)
	}
	if m.view.Stats.Visible != 1 {
		t.Errorf("expected 1 visible easy item, got %d", m.view.Stats.Visible)
	}
}

func TestSortKeyCycles(t *testing.T) {
	m := testApp(t)

	model, _ := m.Update(keyRune('s'))
	m = model.(App)
	if m.state.Sort != filter.SortCategory {
		t.Errorf("expected category sort after one press, got %q", m.state.Sort)
	}

	for i := 0; i < len(sortCycle)-1; i++ {
		model, _ = m.Update(keyRune('s'))
		m = model.(App)
	}
	if m.state.Sort != filter.SortCategory {
		t.Errorf("expected full cycle to return to category sort, got %q", m.state.Sort)
	}
}

func TestPageLoadedPopulatesEntries(t *testing.T) {
	m := testApp(t)

	model, _ := m.Update(PageLoaded{
		Entries: []query.Entry{{ID: "1-two-sum", Lemma: "Two Sum"}},
		HasNext: true,
	})
	m = model.(App)

	if len(m.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m.entries))
	}
	if !m.hasNext {
		t.Error("expected hasNext to carry through")
	}
	if m.loading {
		t.Error("loading flag should clear on PageLoaded")
	}
}

func TestPageLoadedError(t *testing.T) {
	m := testApp(t)

	model, _ := m.Update(PageLoaded{Err: fmt.Errorf("store unavailable")})
	m = model.(App)

	if m.err == nil {
		t.Fatal("expected error to be recorded")
	}

	m.mode = modeEntries
	if !strings.Contains(m.View(), "retry") {
		t.Error("entries view should offer a retry hint on error")
	}
}

func TestDetailRoundTripRestoresList(t *testing.T) {
	m := testApp(t)
	m.mode = modeEntries

	// Load the first page synchronously the way Init's command would.
	m.ctrl.LoadMore(context.Background())
	model, _ := m.Update(PageLoaded{Entries: m.ctrl.Entries(), HasNext: m.ctrl.HasNext()})
	m = model.(App)

	m.entryCursor = 1
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(App)
	if m.mode != modeDetail {
		t.Fatal("enter should open the detail view")
	}
	if m.detailEntry == nil || m.detailEntry.ID != "2-lru-cache" {
		t.Fatalf("expected detail for the highlighted entry, got %+v", m.detailEntry)
	}

	entriesBefore := len(m.entries)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = model.(App)
	if m.mode != modeEntries {
		t.Fatal("esc should return to the entry list")
	}
	if len(m.entries) != entriesBefore {
		t.Errorf("restore changed the entry list: %d -> %d", entriesBefore, len(m.entries))
	}
	if m.entryCursor != 1 {
		t.Errorf("expected cursor restored to 1, got %d", m.entryCursor)
	}
}

func TestDetailBackAfterFilterChangeRefetches(t *testing.T) {
	m := testApp(t)
	m.mode = modeEntries
	m.ctrl.LoadMore(context.Background())
	model, _ := m.Update(PageLoaded{Entries: m.ctrl.Entries(), HasNext: m.ctrl.HasNext()})
	m = model.(App)

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(App)

	// Changing the filter while in detail invalidates the snapshot.
	m.state.Category = "hard"
	m.state = filter.Normalize(m.state)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = model.(App)
	if cmd == nil {
		t.Error("mismatched snapshot should trigger a fresh fetch")
	}
	if len(m.entries) != 0 {
		t.Errorf("stale entries should be cleared on refetch, got %d", len(m.entries))
	}
}

func TestBrowseDetailShowsCatalogItem(t *testing.T) {
	m := testApp(t)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(App)
	if m.mode != modeDetail || m.detailItem == nil {
		t.Fatal("enter in browse should open the catalog item detail")
	}
	if m.detailItem.ID != "1-two-sum" {
		t.Errorf("expected first card's detail, got %s", m.detailItem.ID)
	}

	view := m.View()
	if !strings.Contains(view, "Two Sum") {
		t.Error("detail view should render the item title")
	}
}

func TestSearchCommitResetsEntries(t *testing.T) {
	m := testApp(t)
	m.entries = []query.Entry{{ID: "stale"}}

	model, cmd := m.Update(SearchCommitted{Query: "sum"})
	m = model.(App)

	if m.state.Search != "sum" {
		t.Errorf("expected committed search to apply, got %q", m.state.Search)
	}
	if len(m.entries) != 0 {
		t.Error("committed search should clear the loaded entries")
	}
	if cmd == nil {
		t.Error("committed search should start a fetch")
	}
	if m.view.Stats.Visible != 2 {
		t.Errorf("browse view should narrow to 2 sum items, got %d", m.view.Stats.Visible)
	}
}

func TestScrollOffset(t *testing.T) {
	if got := scrollOffset(0, 10); got != 0 {
		t.Errorf("cursor at top: expected offset 0, got %d", got)
	}
	if got := scrollOffset(9, 10); got != 0 {
		t.Errorf("cursor on last visible row: expected offset 0, got %d", got)
	}
	if got := scrollOffset(10, 10); got != 1 {
		t.Errorf("cursor one past viewport: expected offset 1, got %d", got)
	}
	if got := scrollOffset(25, 10); got != 16 {
		t.Errorf("deep cursor: expected offset 16, got %d", got)
	}
}

func TestClearFiltersKey(t *testing.T) {
	m := testApp(t)
	m.state.Category = "hard"
	m.state.Search = "lru"
	m.state = filter.Normalize(m.state)

	model, _ := m.Update(keyRune('x'))
	m = model.(App)

	if m.state.Category != filter.All || m.state.Search != "" {
		t.Errorf("expected defaults after clear, got %+v", m.state)
	}
	if m.view.Stats.Visible != 3 {
		t.Errorf("expected all items visible after clear, got %d", m.view.Stats.Visible)
	}
}
