// Package list implements cursor-paginated loading of catalog entries.
//
// A Controller owns the accumulated page state for one filter fingerprint:
// the entries loaded so far, the cursor for the next page, and whether more
// pages exist. Views ask for more data via LoadMore (or the throttled
// WantMore helper) and observe results via the Subscribe() channel.
//
// # Concurrency
//
// Controllers are safe for concurrent use. At most one fetch is in flight at
// a time; LoadMore calls made while a fetch is pending are no-ops. ResetFor
// invalidates any pending fetch, so a fetch that resolves after a reset is
// silently discarded.
//
// Event channels have buffers to prevent blocking. If a subscriber doesn't
// consume events fast enough, events are dropped (non-blocking send).
package list

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/tirtza-weinfeld/carta/internal/filter"
	"github.com/tirtza-weinfeld/carta/internal/query"
)

// EventType categorizes controller events.
type EventType string

const (
	EventStarted  EventType = "started"
	EventAppended EventType = "appended"
	EventReset    EventType = "reset"
	EventError    EventType = "error"
)

// Event is sent to subscribers when controller state changes.
type Event struct {
	Type    EventType
	Entries []query.Entry // Full accumulated list on EventAppended
	HasNext bool          // Populated on EventAppended
	Err     error         // Populated on EventError
}

// Controller accumulates pages of entries for the active filter state.
type Controller struct {
	pager    query.Pager
	pageSize int
	events   chan Event

	mu          sync.RWMutex
	state       filter.State
	fingerprint string
	entries     []query.Entry
	cursor      string
	hasNext     bool
	inFlight    bool
	generation  uint64

	limiter *rate.Limiter
}

// NewController creates a controller that fetches pages of pageSize entries
// through the given pager.
func NewController(pager query.Pager, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = 20
	}
	st := filter.DefaultState()
	return &Controller{
		pager:       pager,
		pageSize:    pageSize,
		events:      make(chan Event, 10),
		state:       st,
		fingerprint: st.Fingerprint(),
		hasNext:     true,
		limiter:     rate.NewLimiter(rate.Limit(4), 1),
	}
}

// Init restores the controller to a previously captured position. Used when
// returning from a detail view so the list resumes where the reader left off.
func (c *Controller) Init(st filter.State, entries []query.Entry, cursor string, hasNext bool) {
	st = filter.Normalize(st)
	c.mu.Lock()
	c.generation++
	c.state = st
	c.fingerprint = st.Fingerprint()
	c.entries = append([]query.Entry(nil), entries...)
	c.cursor = cursor
	c.hasNext = hasNext
	c.inFlight = false
	c.mu.Unlock()

	c.sendEvent(Event{Type: EventReset})
}

// ResetFor clears all loaded entries and adopts a new filter state.
//
// Any fetch still in flight when ResetFor is called belongs to the previous
// generation and its result will be discarded when it arrives.
func (c *Controller) ResetFor(st filter.State) {
	st = filter.Normalize(st)
	c.mu.Lock()
	c.generation++
	c.state = st
	c.fingerprint = st.Fingerprint()
	c.entries = nil
	c.cursor = ""
	c.hasNext = true
	c.inFlight = false
	c.mu.Unlock()

	c.sendEvent(Event{Type: EventReset})
}

// LoadMore fetches the next page and appends it to the accumulated entries.
//
// It is a no-op when a fetch is already in flight or when the store reported
// no further pages. It blocks until the fetch completes or ctx is cancelled,
// and returns the fetch error, if any.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight || !c.hasNext {
		c.mu.Unlock()
		return nil
	}
	c.inFlight = true
	gen := c.generation
	st := c.state
	cursor := c.cursor
	c.mu.Unlock()

	c.sendEvent(Event{Type: EventStarted})

	page, err := c.pager.FetchPage(ctx, st, cursor, c.pageSize)

	c.mu.Lock()
	if gen != c.generation {
		// A reset happened while we were fetching. The result belongs to
		// a filter state the view no longer shows.
		c.mu.Unlock()
		return nil
	}
	c.inFlight = false
	if err != nil {
		c.mu.Unlock()
		c.sendEvent(Event{Type: EventError, Err: err})
		return err
	}
	c.entries = append(c.entries, page.Entries...)
	c.cursor = page.NextCursor
	c.hasNext = page.HasNext
	snapshot := append([]query.Entry(nil), c.entries...)
	hasNext := c.hasNext
	c.mu.Unlock()

	c.sendEvent(Event{Type: EventAppended, Entries: snapshot, HasNext: hasNext})
	return nil
}

// WantMore reports whether the view should trigger a LoadMore, given the
// index of the last visible row and the lookahead margin in rows.
//
// It rate-limits positive answers so a fast scroll doesn't fire a burst of
// triggers before the first fetch lands.
func (c *Controller) WantMore(visibleTail, margin int) bool {
	c.mu.RLock()
	n := len(c.entries)
	hasNext := c.hasNext
	inFlight := c.inFlight
	c.mu.RUnlock()

	if !hasNext || inFlight {
		return false
	}
	if n > 0 && visibleTail < n-margin {
		return false
	}
	return c.limiter.Allow()
}

// Entries returns a copy of the accumulated entries.
func (c *Controller) Entries() []query.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]query.Entry(nil), c.entries...)
}

// Cursor returns the cursor for the next unfetched page.
func (c *Controller) Cursor() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cursor
}

// HasNext reports whether more pages exist beyond the loaded entries.
func (c *Controller) HasNext() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hasNext
}

// State returns the filter state this controller is loading for.
func (c *Controller) State() filter.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Fingerprint returns the canonical fingerprint of the active filter state.
func (c *Controller) Fingerprint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fingerprint
}

// Subscribe returns the event channel.
//
// The returned channel has a buffer of 10 events. Subscribers should consume
// events promptly to avoid dropped events.
//
// The channel is never closed - it lives for the lifetime of the controller.
func (c *Controller) Subscribe() <-chan Event {
	return c.events
}

// sendEvent sends an event to subscribers without blocking.
// If the channel is full, the event is dropped.
func (c *Controller) sendEvent(event Event) {
	select {
	case c.events <- event:
	default:
	}
}
