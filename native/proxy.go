package native

import (
	"fmt"
	"sync"

	"github.com/skillsenselab/appkit/errors"
	"github.com/skillsenselab/appkit/logger"
)

// Locator attempts to load an externally provided capability module.
// Returning an error marks the module unavailable; it is never re-raised.
type Locator[T any] func() (T, error)

// Resolution is the cached outcome of a resolve attempt.
type Resolution[T any] struct {
	// Ref is the resolved module handle. Zero when unavailable.
	Ref T
	// Reason is nil when the module is available.
	Reason error
}

// Available reports whether the module was resolved.
func (r Resolution[T]) Available() bool {
	return r.Reason == nil
}

// Proxy lazily resolves a handle to an optional native module exactly once,
// caching success or absence. Absence is a normal, expected outcome: callers
// get an Unavailable resolution, never a panic.
type Proxy[T any] struct {
	capability string
	locate     Locator[T]

	mu       sync.RWMutex
	resolved bool
	res      Resolution[T]
}

// NewProxy creates a proxy for the named capability backed by the locator.
func NewProxy[T any](capability string, locate Locator[T]) *Proxy[T] {
	return &Proxy[T]{capability: capability, locate: locate}
}

// Resolve returns the cached resolution, performing at most one locate
// attempt per cache lifetime. Repeated calls after caching do no I/O.
func (p *Proxy[T]) Resolve() Resolution[T] {
	p.mu.RLock()
	if p.resolved {
		res := p.res
		p.mu.RUnlock()
		return res
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock
	if p.resolved {
		return p.res
	}

	p.res = p.attempt()
	p.resolved = true

	if p.res.Reason != nil {
		logger.WithComponent("native").Info("Native module unavailable", map[string]interface{}{
			logger.FieldCapability: p.capability,
			"reason":               p.res.Reason.Error(),
		})
	} else {
		logger.WithComponent("native").Debug("Native module resolved", map[string]interface{}{
			logger.FieldCapability: p.capability,
		})
	}

	return p.res
}

// attempt runs the locator, converting panics from a misbehaving loader
// into an Unavailable resolution.
func (p *Proxy[T]) attempt() (res Resolution[T]) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			res = Resolution[T]{Ref: zero, Reason: fmt.Errorf("module loader panic: %v", r)}
		}
	}()

	if p.locate == nil {
		var zero T
		return Resolution[T]{Ref: zero, Reason: fmt.Errorf("no locator for capability %s", p.capability)}
	}

	ref, err := p.locate()
	if err != nil {
		var zero T
		return Resolution[T]{Ref: zero, Reason: err}
	}
	return Resolution[T]{Ref: ref}
}

// IsAvailable reports whether the module resolves, triggering resolution if
// it has not happened yet.
func (p *Proxy[T]) IsAvailable() bool {
	return p.Resolve().Available()
}

// Require returns the resolved module or a typed CapabilityUnavailable error.
// Use for capability domains declared mandatory.
func (p *Proxy[T]) Require() (T, error) {
	res := p.Resolve()
	if res.Reason != nil {
		var zero T
		return zero, errors.CapabilityUnavailable(p.capability, res.Reason.Error())
	}
	return res.Ref, nil
}

// Invalidate clears the cached resolution, forcing re-resolution on the next
// Resolve call.
func (p *Proxy[T]) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resolved = false
	p.res = Resolution[T]{}
}
