package ui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tirtza-weinfeld/carta/internal/catalog"
	"github.com/tirtza-weinfeld/carta/internal/deferred"
	"github.com/tirtza-weinfeld/carta/internal/filter"
	"github.com/tirtza-weinfeld/carta/internal/list"
	"github.com/tirtza-weinfeld/carta/internal/logging"
	"github.com/tirtza-weinfeld/carta/internal/query"
	"github.com/tirtza-weinfeld/carta/internal/snapshot"
)

// View mode
type viewMode int

const (
	modeBrowse viewMode = iota
	modeEntries
	modeDetail
)

// sortCycle is the order the s key steps through.
var sortCycle = []filter.SortKey{
	filter.SortNumber,
	filter.SortCategory,
	filter.SortAlpha,
	filter.SortCreated,
	filter.SortUpdated,
}

// App is the root Bubble Tea model.
type App struct {
	catalog *catalog.Store
	ctrl    *list.Controller
	snaps   snapshot.Store
	search  *deferred.Value

	state filter.State
	view  filter.View

	mode        viewMode
	searching   bool
	input       textinput.Model
	cursor      int // browse cursor, index into view.OrderedIDs
	entryCursor int // entries cursor, index into entries
	entries     []query.Entry
	hasNext     bool
	loading     bool
	margin      int

	detailEntry *query.Entry
	detailItem  *catalog.Item

	width  int
	height int
	err    error
}

// New creates the root model. The lookahead margin controls how close to the
// end of the loaded list the cursor must get before the next page is fetched.
func New(cat *catalog.Store, ctrl *list.Controller, snaps snapshot.Store, searchDelay time.Duration, margin int) App {
	input := textinput.New()
	input.Placeholder = "search id or title"
	input.Prompt = "/ "
	input.CharLimit = 80

	if margin <= 0 {
		margin = 5
	}

	state := filter.DefaultState()
	return App{
		catalog: cat,
		ctrl:    ctrl,
		snaps:   snaps,
		search:  deferred.New(searchDelay),
		state:   state,
		view:    filter.ComputeView(cat.Items(), state),
		input:   input,
		margin:  margin,
		hasNext: true,
	}
}

// Init starts the first page fetch and the search commit listener.
func (m App) Init() tea.Cmd {
	return tea.Batch(m.loadPage(), m.waitSearch())
}

// Update handles messages
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case PageLoaded:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			logging.Error("page load failed", "error", msg.Err)
			return m, nil
		}
		m.err = nil
		m.entries = msg.Entries
		m.hasNext = msg.HasNext
		if m.entryCursor >= len(m.entries) && len(m.entries) > 0 {
			m.entryCursor = len(m.entries) - 1
		}
		return m, nil

	case SearchCommitted:
		return m.applySearch(msg.Query)

	case SeedComplete:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		if msg.NewEntries > 0 {
			return m, m.resetAndLoad()
		}
		return m, nil
	}

	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.mode == modeBrowse {
			m.mode = modeEntries
		} else if m.mode == modeEntries {
			m.mode = modeBrowse
		}

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)
		if m.mode == modeEntries && m.ctrl.WantMore(m.entryCursor, m.margin) {
			m.loading = true
			return m, m.loadPage()
		}

	case "enter":
		return m.openDetail()

	case "esc", "backspace":
		return m.goBack()

	case "/":
		m.searching = true
		m.input.SetValue(m.state.Search)
		m.input.Focus()
		return m, textinput.Blink

	case "c":
		m.state.Category = nextCategory(m.state.Category)
		return m.applyFilter()

	case "t":
		m.state.Tag = nextTag(m.catalog.Tags(), m.state.Tag)
		return m.applyFilter()

	case "s":
		m.state.Sort = nextSort(m.state.Sort)
		return m.applyFilter()

	case "o":
		if m.state.Dir == filter.Desc {
			m.state.Dir = filter.Asc
		} else {
			m.state.Dir = filter.Desc
		}
		return m.applyFilter()

	case "x":
		// Clear all filters
		m.state = filter.DefaultState()
		m.search.Set("")
		m.search.Flush()
		return m.applyFilter()

	case "r":
		// Retry after an error, or refetch the current list
		if m.mode == modeEntries || m.err != nil {
			m.err = nil
			m.loading = true
			return m, m.loadPage()
		}
	}

	return m, nil
}

func (m App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.input.Blur()
		m.search.Set(m.input.Value())
		m.search.Flush()
		return m, nil

	case "esc":
		m.searching = false
		m.input.Blur()
		m.input.SetValue(m.state.Search)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.search.Set(m.input.Value())
	return m, cmd
}

// applySearch applies committed search text to both views.
func (m App) applySearch(q string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(q) == strings.TrimSpace(m.state.Search) {
		return m, m.waitSearch()
	}
	m.state.Search = q
	model, cmd := m.applyFilter()
	return model, tea.Batch(cmd, m.waitSearch())
}

// applyFilter recomputes the browse view and restarts entry pagination for
// the new filter state.
func (m App) applyFilter() (tea.Model, tea.Cmd) {
	m.state = filter.Normalize(m.state)
	m.view = filter.ComputeView(m.catalog.Items(), m.state)
	m.cursor = 0
	return m, m.resetAndLoad()
}

func (m *App) resetAndLoad() tea.Cmd {
	m.ctrl.ResetFor(m.state)
	m.entries = nil
	m.entryCursor = 0
	m.hasNext = true
	m.loading = true
	return m.loadPage()
}

func (m *App) moveCursor(delta int) {
	switch m.mode {
	case modeBrowse:
		m.cursor += delta
		if m.cursor < 0 {
			m.cursor = 0
		}
		if n := len(m.view.OrderedIDs); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
	case modeEntries:
		m.entryCursor += delta
		if m.entryCursor < 0 {
			m.entryCursor = 0
		}
		if n := len(m.entries); m.entryCursor >= n && n > 0 {
			m.entryCursor = n - 1
		}
	}
}

// openDetail drills into the highlighted row. Leaving the entry list saves
// a snapshot so the list position survives the round trip.
func (m App) openDetail() (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeBrowse:
		if m.cursor >= len(m.view.OrderedIDs) {
			return m, nil
		}
		item, ok := m.catalog.ByID(m.view.OrderedIDs[m.cursor])
		if !ok {
			return m, nil
		}
		m.detailItem = &item
		m.detailEntry = nil
		m.mode = modeDetail

	case modeEntries:
		if m.entryCursor >= len(m.entries) {
			return m, nil
		}
		entry := m.entries[m.entryCursor]
		if err := m.snaps.Save(snapshot.Snapshot{
			Entries:      m.ctrl.Entries(),
			Cursor:       m.ctrl.Cursor(),
			HasNext:      m.ctrl.HasNext(),
			Fingerprint:  m.ctrl.Fingerprint(),
			ScrollOffset: m.entryCursor,
			OriginMarker: snapshot.OriginDetail,
			SavedAt:      time.Now(),
		}); err != nil {
			logging.Warn("snapshot save failed", "error", err)
		}
		m.detailEntry = &entry
		m.detailItem = nil
		m.mode = modeDetail
	}
	return m, nil
}

// goBack leaves the detail view. If a snapshot was saved on the way in and
// the filter state hasn't changed, the list restores without refetching.
func (m App) goBack() (tea.Model, tea.Cmd) {
	if m.mode != modeDetail {
		return m, nil
	}

	if m.detailItem != nil {
		m.detailItem = nil
		m.mode = modeBrowse
		return m, nil
	}

	m.detailEntry = nil
	m.mode = modeEntries

	snap, ok, err := m.snaps.Consume(m.state.Fingerprint())
	if err != nil {
		logging.Warn("snapshot consume failed", "error", err)
	}
	if ok {
		m.ctrl.Init(m.state, snap.Entries, snap.Cursor, snap.HasNext)
		m.entries = snap.Entries
		m.hasNext = snap.HasNext
		m.entryCursor = snap.ScrollOffset
		if m.entryCursor >= len(m.entries) && len(m.entries) > 0 {
			m.entryCursor = len(m.entries) - 1
		}
		return m, nil
	}
	return m, m.resetAndLoad()
}

// loadPage fetches the next page through the controller.
func (m App) loadPage() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		err := ctrl.LoadMore(context.Background())
		return PageLoaded{
			Entries: ctrl.Entries(),
			HasNext: ctrl.HasNext(),
			Err:     err,
		}
	}
}

// waitSearch blocks on the next committed search value.
func (m App) waitSearch() tea.Cmd {
	updates := m.search.Updates()
	return func() tea.Msg {
		return SearchCommitted{Query: <-updates}
	}
}

func nextCategory(cur string) string {
	switch cur {
	case filter.All, "":
		return string(catalog.Easy)
	case string(catalog.Easy):
		return string(catalog.Medium)
	case string(catalog.Medium):
		return string(catalog.Hard)
	default:
		return filter.All
	}
}

func nextTag(tags []string, cur string) string {
	if len(tags) == 0 {
		return filter.All
	}
	if cur == filter.All || cur == "" {
		return tags[0]
	}
	for i, tag := range tags {
		if tag == cur {
			if i+1 < len(tags) {
				return tags[i+1]
			}
			return filter.All
		}
	}
	return filter.All
}

func nextSort(cur filter.SortKey) filter.SortKey {
	for i, key := range sortCycle {
		if key == cur {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}

// View renders the app
func (m App) View() string {
	var b strings.Builder

	switch m.mode {
	case modeBrowse:
		b.WriteString(SectionHeader.Render("carta · browse"))
		b.WriteString("\n")
		b.WriteString(m.renderFilterBar())
		b.WriteString("\n")
		b.WriteString(m.renderBrowse())
	case modeEntries:
		b.WriteString(SectionHeader.Render("carta · entries"))
		b.WriteString("\n")
		b.WriteString(m.renderFilterBar())
		b.WriteString("\n")
		b.WriteString(m.renderEntries())
	case modeDetail:
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m App) renderFilterBar() string {
	var parts []string
	if m.searching {
		parts = append(parts, m.input.View())
	} else if m.state.Search != "" {
		parts = append(parts, fmt.Sprintf("/%s", m.state.Search))
	}
	if m.state.Category != filter.All {
		parts = append(parts, "category:"+m.state.Category)
	}
	if m.state.Tag != filter.All {
		parts = append(parts, "tag:"+m.state.Tag)
	}
	parts = append(parts, fmt.Sprintf("sort:%s/%s", m.state.Sort, m.state.Dir))

	count := FilterBarCount.Render(fmt.Sprintf(" %d/%d", m.view.Stats.Visible, m.view.Stats.Total))
	return FilterBar.Render(strings.Join(parts, "  ")) + count
}

func (m App) renderBrowse() string {
	if len(m.view.OrderedIDs) == 0 {
		return HelpStyle.Render("No matches. Press 'x' to clear filters.")
	}

	var b strings.Builder
	available := m.contentHeight()
	offset := scrollOffset(m.cursor, available)

	for i := offset; i < len(m.view.OrderedIDs) && i-offset < available; i++ {
		item, ok := m.catalog.ByID(m.view.OrderedIDs[i])
		if !ok {
			continue
		}
		b.WriteString(m.renderCard(item, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m App) renderCard(item catalog.Item, selected bool) string {
	badge := categoryBadge(item.Category)

	title := item.Title
	titleWidth := m.width - lipgloss.Width(badge) - 4
	if titleWidth < 20 {
		titleWidth = 20
	}
	if utf8.RuneCountInString(title) > titleWidth {
		runes := []rune(title)
		title = string(runes[:titleWidth-3]) + "..."
	}

	style := NormalItem
	if selected {
		style = SelectedItem
	}

	line := fmt.Sprintf("%s %s", badge, style.Render(title))
	if len(item.Tags) > 0 && selected {
		var tags strings.Builder
		for _, tag := range item.Tags {
			tags.WriteString(TagBadge.Render(tag))
		}
		line += "\n  " + tags.String()
	}
	return line
}

func (m App) renderEntries() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" +
			HelpStyle.Render("Press 'r' to retry.")
	}
	if len(m.entries) == 0 {
		if m.loading {
			return HelpStyle.Render("Loading entries...")
		}
		return HelpStyle.Render("No matches. Press 'x' to clear filters.")
	}

	var b strings.Builder
	available := m.contentHeight()
	offset := scrollOffset(m.entryCursor, available)

	for i := offset; i < len(m.entries) && i-offset < available; i++ {
		b.WriteString(m.renderEntryLine(m.entries[i], i == m.entryCursor))
		b.WriteString("\n")
	}

	if m.hasNext {
		if m.loading {
			b.WriteString(HelpStyle.Render("loading more..."))
		} else {
			b.WriteString(HelpStyle.Render("scroll for more"))
		}
	}
	return b.String()
}

func (m App) renderEntryLine(e query.Entry, selected bool) string {
	style := NormalItem
	if selected {
		style = SelectedItem
	}

	lemma := e.Lemma
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	if utf8.RuneCountInString(lemma) > width {
		runes := []rune(lemma)
		lemma = string(runes[:width-3]) + "..."
	}

	line := style.Render(lemma)
	if selected && e.DefinitionPreview != "" {
		line += "\n  " + StatusBarText.Render(e.DefinitionPreview)
	}
	return line
}

func (m App) renderDetail() string {
	var b strings.Builder

	switch {
	case m.detailItem != nil:
		item := m.detailItem
		b.WriteString(DetailTitle.Render(item.Title))
		b.WriteString("\n")
		b.WriteString(categoryBadge(item.Category))
		b.WriteString("\n")
		var body strings.Builder
		body.WriteString("id: " + item.ID + "\n")
		if len(item.Tags) > 0 {
			body.WriteString("tags: " + strings.Join(item.Tags, ", ") + "\n")
		}
		if !item.CreatedAt.IsZero() {
			body.WriteString("created: " + item.CreatedAt.Format("2006-01-02") + "\n")
		}
		if !item.UpdatedAt.IsZero() {
			body.WriteString("updated: " + item.UpdatedAt.Format("2006-01-02") + "\n")
		}
		b.WriteString(DetailBody.Render(body.String()))

	case m.detailEntry != nil:
		e := m.detailEntry
		b.WriteString(DetailTitle.Render(e.Lemma))
		b.WriteString("\n")
		var body strings.Builder
		body.WriteString("id: " + e.ID + "\n")
		if e.DefinitionPreview != "" {
			body.WriteString("\n" + e.DefinitionPreview + "\n")
		}
		if e.ExampleText != "" {
			body.WriteString("\n" + e.ExampleText + "\n")
		}
		b.WriteString(DetailBody.Render(body.String()))
	}

	return b.String()
}

func (m App) renderStatusBar() string {
	hint := func(key, desc string) string {
		return StatusBarKey.Render(key) + StatusBarText.Render(" "+desc+"  ")
	}

	var b strings.Builder
	switch m.mode {
	case modeDetail:
		b.WriteString(hint("esc", "back"))
		b.WriteString(hint("q", "quit"))
	default:
		b.WriteString(hint("tab", "switch view"))
		b.WriteString(hint("j/k", "move"))
		b.WriteString(hint("/", "search"))
		b.WriteString(hint("c", "category"))
		b.WriteString(hint("t", "tag"))
		b.WriteString(hint("s", "sort"))
		b.WriteString(hint("o", "order"))
		b.WriteString(hint("enter", "open"))
		b.WriteString(hint("q", "quit"))
	}
	return StatusBar.Render(b.String())
}

// contentHeight is the viewport space left for list rows.
func (m App) contentHeight() int {
	h := m.height - 4 // header, filter bar, status bar
	if h < 1 {
		h = 10
	}
	return h
}

func scrollOffset(cursor, available int) int {
	if cursor >= available {
		return cursor - available + 1
	}
	return 0
}

func categoryBadge(c catalog.Category) string {
	switch c {
	case catalog.Easy:
		return CategoryBadgeEasy.Render(string(c))
	case catalog.Medium:
		return CategoryBadgeMedium.Render(string(c))
	case catalog.Hard:
		return CategoryBadgeHard.Render(string(c))
	default:
		return TagBadge.Render(string(c))
	}
}
