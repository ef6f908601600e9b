package alerts

import (
	"sync"
	"testing"
	"time"
)

// collector records banner transitions.
type collector struct {
	mu     sync.Mutex
	states []Banner
}

func (c *collector) record(b Banner) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states = append(c.states, b)
}

func (c *collector) hiddenCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for i, b := range c.states {
		// Count visible→hidden transitions, skipping the initial snapshot.
		if i > 0 && !b.Visible && c.states[i-1].Visible {
			n++
		}
	}
	return n
}

func TestShowSetsState(t *testing.T) {
	s := NewService()
	defer s.Dispose()

	s.Show("Update", "A new version is available", SeverityInfo, 0)

	got := s.Current()
	if !got.Visible {
		t.Error("expected visible banner")
	}
	if got.Title != "Update" || got.Severity != SeverityInfo {
		t.Errorf("unexpected state: %+v", got)
	}
}

func TestDismiss(t *testing.T) {
	s := NewService()
	defer s.Dispose()

	s.Show("T", "M", SeverityWarning, 0)
	s.Dismiss()

	if s.Current().Visible {
		t.Error("expected hidden banner after Dismiss")
	}
}

func TestAutoDismissFiresExactlyOnce(t *testing.T) {
	s := NewService()
	defer s.Dispose()

	c := &collector{}
	s.Subscribe(c.record)

	s.Show("T", "M", SeverityInfo, 50*time.Millisecond)

	time.Sleep(150 * time.Millisecond)

	if s.Current().Visible {
		t.Error("expected auto-dismissed banner")
	}
	if got := c.hiddenCount(); got != 1 {
		t.Errorf("expected exactly one hide transition, got %d", got)
	}
}

func TestNewShowCancelsPendingAutoDismiss(t *testing.T) {
	s := NewService()
	defer s.Dispose()

	s.Show("first", "M", SeverityInfo, 80*time.Millisecond)
	time.Sleep(40 * time.Millisecond)

	// Second Show re-arms the timer from now.
	s.Show("second", "M", SeverityInfo, 80*time.Millisecond)

	// Past the first deadline: the stale timer must not clear the new banner.
	time.Sleep(60 * time.Millisecond)
	if got := s.Current(); !got.Visible || got.Title != "second" {
		t.Errorf("stale timer cleared a newer banner: %+v", got)
	}

	// Past the second deadline: now it hides.
	time.Sleep(60 * time.Millisecond)
	if s.Current().Visible {
		t.Error("expected banner hidden after the re-armed deadline")
	}
}

func TestDismissCancelsAutoDismiss(t *testing.T) {
	s := NewService()
	defer s.Dispose()

	c := &collector{}
	s.Subscribe(c.record)

	s.Show("T", "M", SeverityInfo, 50*time.Millisecond)
	s.Dismiss()

	time.Sleep(100 * time.Millisecond)

	if got := c.hiddenCount(); got != 1 {
		t.Errorf("expected a single hide from Dismiss, got %d", got)
	}
}

func TestDisposeCancelsTimerAndListeners(t *testing.T) {
	s := NewService()

	c := &collector{}
	s.Subscribe(c.record)

	s.Show("T", "M", SeverityInfo, 30*time.Millisecond)
	s.Dispose()

	before := len(c.states)
	time.Sleep(80 * time.Millisecond)

	c.mu.Lock()
	after := len(c.states)
	c.mu.Unlock()
	if after != before {
		t.Error("disposed service must not notify")
	}
}
