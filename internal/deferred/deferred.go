// Package deferred holds a value with a trailing-edge commit delay.
//
// The search box updates on every keystroke, but refiltering the entry list
// on every keystroke wastes fetches. A Value keeps the raw text current for
// rendering while deferring the committed value, the one queries run against,
// until the input has been quiet for the configured delay.
package deferred

import (
	"sync"
	"time"
)

// Value debounces string updates.
type Value struct {
	mu        sync.Mutex
	raw       string
	committed string
	delay     time.Duration
	timer     *time.Timer
	updates   chan string
}

// New creates a Value with the given commit delay.
func New(delay time.Duration) *Value {
	if delay <= 0 {
		delay = 250 * time.Millisecond
	}
	return &Value{
		delay:   delay,
		updates: make(chan string, 10),
	}
}

// Set updates the raw value immediately and schedules a commit. A newer Set
// before the delay elapses supersedes the pending commit.
func (v *Value) Set(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.raw = s
	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(v.delay, func() {
		v.commit(s)
	})
}

// Flush commits the raw value immediately, cancelling any pending timer.
func (v *Value) Flush() {
	v.mu.Lock()
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	raw := v.raw
	v.mu.Unlock()

	v.commit(raw)
}

// Raw returns the latest value passed to Set.
func (v *Value) Raw() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.raw
}

// Committed returns the last committed value.
func (v *Value) Committed() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.committed
}

// Updates returns a channel receiving each newly committed value.
//
// The channel has a buffer of 10. If the subscriber doesn't keep up, commits
// are dropped (non-blocking send). The channel is never closed.
func (v *Value) Updates() <-chan string {
	return v.updates
}

func (v *Value) commit(s string) {
	v.mu.Lock()
	if v.committed == s {
		v.mu.Unlock()
		return
	}
	v.committed = s
	v.mu.Unlock()

	select {
	case v.updates <- s:
	default:
	}
}
