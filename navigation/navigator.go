package navigation

import (
	"sync"

	"github.com/skillsenselab/appkit/observe"
)

// State describes the current navigation position.
type State struct {
	Path   string
	Params map[string]string
}

// Navigator is the navigation capability: a history stack with an observable
// current state.
type Navigator struct {
	state *observe.Observable[State]

	mu    sync.Mutex
	stack []State
}

// NewNavigator creates a navigator positioned at the initial path.
func NewNavigator(initial string) *Navigator {
	start := State{Path: initial}
	return &Navigator{
		state: observe.NewObservable(start),
		stack: []State{start},
	}
}

// Navigate pushes a new state and notifies subscribers.
func (n *Navigator) Navigate(target string, params map[string]string) {
	next := State{Path: target, Params: params}

	n.mu.Lock()
	n.stack = append(n.stack, next)
	n.mu.Unlock()

	n.state.Set(next)
}

// GoBack pops the current state. At the bottom of the stack it navigates to
// the fallback path instead (no-op when fallback is empty). Returns whether
// a pop happened.
func (n *Navigator) GoBack(fallback string) bool {
	n.mu.Lock()
	if len(n.stack) <= 1 {
		n.mu.Unlock()
		if fallback != "" {
			n.Navigate(fallback, nil)
		}
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	top := n.stack[len(n.stack)-1]
	n.mu.Unlock()

	n.state.Set(top)
	return true
}

// Current returns the current navigation state.
func (n *Navigator) Current() State {
	return n.state.Get()
}

// Depth returns the history stack depth.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}

// Subscribe registers a state listener; the current state is delivered
// before the call returns.
func (n *Navigator) Subscribe(fn observe.Listener[State]) *observe.Subscription {
	return n.state.Subscribe(fn)
}

// Dispose drops all listeners.
func (n *Navigator) Dispose() {
	n.state.Dispose()
}
