package observe

import "testing"

func TestSubscribeDeliversCurrentState(t *testing.T) {
	o := NewObservable("initial")

	var got []string
	o.Subscribe(func(s string) { got = append(got, s) })

	if len(got) != 1 || got[0] != "initial" {
		t.Fatalf("expected synchronous delivery of 'initial', got %v", got)
	}
}

func TestSubscribeDeliversEvenWithoutChanges(t *testing.T) {
	// Zero-value state still counts as "the state at subscription time".
	o := NewObservable(0)

	delivered := false
	o.Subscribe(func(int) { delivered = true })

	if !delivered {
		t.Error("expected delivery before Subscribe returns, even with no prior Set")
	}
}

func TestSetNotifiesAllListeners(t *testing.T) {
	o := NewObservable(0)

	counts := make(map[string]int)
	o.Subscribe(func(int) { counts["a"]++ })
	o.Subscribe(func(int) { counts["b"]++ })

	o.Set(1)
	o.Set(2)

	// 1 initial delivery + 2 changes each.
	if counts["a"] != 3 || counts["b"] != 3 {
		t.Errorf("expected 3 deliveries each, got %v", counts)
	}
}

func TestSameCallbackTwiceIsTwoSubscriptions(t *testing.T) {
	o := NewObservable(0)

	calls := 0
	fn := func(int) { calls++ }
	s1 := o.Subscribe(fn)
	s2 := o.Subscribe(fn)

	if s1.ID() == s2.ID() {
		t.Fatal("expected distinct subscription tokens")
	}
	if o.ListenerCount() != 2 {
		t.Fatalf("expected 2 listeners, got %d", o.ListenerCount())
	}

	calls = 0
	o.Set(1)
	if calls != 2 {
		t.Errorf("expected both subscriptions notified, got %d calls", calls)
	}
}

func TestCancelRemovesExactlyOneListener(t *testing.T) {
	o := NewObservable(0)

	aCalls, bCalls := 0, 0
	subA := o.Subscribe(func(int) { aCalls++ })
	o.Subscribe(func(int) { bCalls++ })

	subA.Cancel()
	aCalls, bCalls = 0, 0
	o.Set(1)

	if aCalls != 0 {
		t.Error("cancelled listener should not be notified")
	}
	if bCalls != 1 {
		t.Errorf("remaining listener should be notified once, got %d", bCalls)
	}
}

func TestDoubleCancelIsNoOp(t *testing.T) {
	o := NewObservable(0)

	subA := o.Subscribe(func(int) {})
	bCalls := 0
	o.Subscribe(func(int) { bCalls++ })

	subA.Cancel()
	subA.Cancel() // must not error or remove a different listener

	bCalls = 0
	o.Set(1)
	if bCalls != 1 {
		t.Errorf("second Cancel removed an unrelated listener, got %d calls", bCalls)
	}
}

func TestUpdate(t *testing.T) {
	o := NewObservable(10)
	o.Update(func(v int) int { return v + 5 })

	if o.Get() != 15 {
		t.Errorf("expected 15, got %d", o.Get())
	}
}

func TestDisposeClearsListenersAndDetaches(t *testing.T) {
	o := NewObservable(0)

	calls := 0
	o.Subscribe(func(int) { calls++ })

	released := 0
	o.OnDetach(func() { released++ })

	o.Dispose()
	o.Dispose() // idempotent

	if released != 1 {
		t.Errorf("expected native detach exactly once, got %d", released)
	}
	if o.ListenerCount() != 0 {
		t.Errorf("expected no listeners after dispose, got %d", o.ListenerCount())
	}

	calls = 0
	o.Set(1)
	if calls != 0 {
		t.Error("disposed observable must not notify")
	}
}
