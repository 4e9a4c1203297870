package deferred

import (
	"testing"
	"time"
)

func TestRawUpdatesImmediately(t *testing.T) {
	v := New(time.Hour)
	v.Set("tw")

	if v.Raw() != "tw" {
		t.Errorf("expected raw 'tw', got %q", v.Raw())
	}
	if v.Committed() != "" {
		t.Errorf("committed value leaked before the delay: %q", v.Committed())
	}
}

func TestCommitAfterQuietPeriod(t *testing.T) {
	v := New(20 * time.Millisecond)
	v.Set("two")

	waitForCommit(t, v, "two")
}

func TestRapidSetsCommitOnlyLast(t *testing.T) {
	v := New(30 * time.Millisecond)
	updates := v.Updates()

	v.Set("t")
	v.Set("tw")
	v.Set("two sum")

	select {
	case got := <-updates:
		if got != "two sum" {
			t.Errorf("expected only the final value to commit, got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for commit")
	}

	// No earlier intermediate commit should follow.
	select {
	case got := <-updates:
		t.Errorf("unexpected extra commit %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFlushCommitsImmediately(t *testing.T) {
	v := New(time.Hour)
	v.Set("graph")
	v.Flush()

	if v.Committed() != "graph" {
		t.Errorf("expected flush to commit 'graph', got %q", v.Committed())
	}

	// The superseded timer must not re-commit later.
	select {
	case got := <-v.Updates():
		if got != "graph" {
			t.Errorf("expected committed update 'graph', got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for flush commit")
	}
}

func TestNoUpdateWhenValueUnchanged(t *testing.T) {
	v := New(10 * time.Millisecond)
	v.Set("same")
	waitForCommit(t, v, "same")
	<-v.Updates()

	v.Set("same")
	select {
	case got := <-v.Updates():
		t.Errorf("unchanged value must not re-commit, got %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func waitForCommit(t *testing.T, v *Value, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v.Committed() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for commit of %q, committed=%q", want, v.Committed())
}
