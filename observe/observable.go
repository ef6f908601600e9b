package observe

import (
	"sync"

	"github.com/google/uuid"
)

// Listener receives state snapshots from an Observable.
type Listener[T any] func(state T)

// Subscription is the handle returned by Subscribe. Listener identity is the
// subscription token, not the callback value: subscribing the same function
// twice yields two independent subscriptions.
type Subscription struct {
	id     string
	cancel func(id string)
	once   sync.Once
}

// ID returns the subscription's unique token.
func (s *Subscription) ID() string {
	return s.id
}

// Cancel removes exactly this subscription's listener. Safe to call multiple
// times; subsequent calls are no-ops.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.cancel(s.id)
	})
}

// Observable holds a current state value and fans out changes to a set of
// subscribed listeners. It is the shared base for every capability service
// that pushes state to consumers (connectivity, theme, banners, navigation).
type Observable[T any] struct {
	mu        sync.Mutex
	state     T
	listeners map[string]Listener[T]
	detach    func()
	disposed  bool
}

// NewObservable creates an Observable seeded with an initial state.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		state:     initial,
		listeners: make(map[string]Listener[T]),
	}
}

// Get returns the current state.
func (o *Observable[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Subscribe registers a listener and synchronously delivers the current state
// to it before returning, so no subscriber can miss the state that existed at
// subscription time.
func (o *Observable[T]) Subscribe(fn Listener[T]) *Subscription {
	o.mu.Lock()
	id := uuid.NewString()
	if !o.disposed {
		o.listeners[id] = fn
	}
	snapshot := o.state
	o.mu.Unlock()

	fn(snapshot)

	return &Subscription{id: id, cancel: o.remove}
}

// Set updates the state and synchronously delivers it to every listener
// registered at the moment the call begins. Delivery order is unspecified;
// delivery is all-or-nothing per change.
func (o *Observable[T]) Set(state T) {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return
	}
	o.state = state
	targets := make([]Listener[T], 0, len(o.listeners))
	for _, fn := range o.listeners {
		targets = append(targets, fn)
	}
	o.mu.Unlock()

	for _, fn := range targets {
		fn(state)
	}
}

// Update applies fn to the current state and delivers the result.
func (o *Observable[T]) Update(fn func(T) T) {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return
	}
	o.state = fn(o.state)
	state := o.state
	targets := make([]Listener[T], 0, len(o.listeners))
	for _, l := range o.listeners {
		targets = append(targets, l)
	}
	o.mu.Unlock()

	for _, l := range targets {
		l(state)
	}
}

// ListenerCount returns the number of live subscriptions.
func (o *Observable[T]) ListenerCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

// OnDetach registers a release function for the underlying native event
// subscription. It is invoked exactly once, on Dispose.
func (o *Observable[T]) OnDetach(release func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.detach = release
}

// Dispose clears all listeners and releases any underlying native event
// subscription. Further Set calls are dropped.
func (o *Observable[T]) Dispose() {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return
	}
	o.disposed = true
	o.listeners = make(map[string]Listener[T])
	release := o.detach
	o.detach = nil
	o.mu.Unlock()

	if release != nil {
		release()
	}
}

func (o *Observable[T]) remove(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.listeners, id)
}
