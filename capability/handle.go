package capability

import (
	"fmt"
	"sync"

	"github.com/skillsenselab/appkit/errors"
	"github.com/skillsenselab/appkit/logger"
)

// Disposable is implemented by capability instances that hold background
// resources (native listeners, timers, exporters). Dispose must release them
// and is always called before an instance is replaced or cleared.
type Disposable interface {
	Dispose()
}

// Policy controls what Get does when no live instance exists.
type Policy int

const (
	// AutoCreate builds a default instance on first Get.
	AutoCreate Policy = iota
	// RequireInitialize makes Get fail with NOT_INITIALIZED until an
	// explicit Initialize installs an instance.
	RequireInitialize
)

// Builder constructs the default instance for a capability domain.
type Builder[T Disposable] func() (T, error)

// Handle owns at most one live instance of a capability implementation.
// All mutation happens through Get, Initialize, and Reset; the instance is
// never shared outside these accessors.
type Handle[T Disposable] struct {
	domain string
	policy Policy
	build  Builder[T]
	log    *logger.Logger

	mu   sync.Mutex
	live T
	has  bool
}

// NewHandle creates an empty handle for the named capability domain.
// build may be nil for RequireInitialize domains.
func NewHandle[T Disposable](domain string, policy Policy, build Builder[T]) *Handle[T] {
	return &Handle[T]{
		domain: domain,
		policy: policy,
		build:  build,
		log:    logger.WithComponent("capability"),
	}
}

// Domain returns the capability domain name.
func (h *Handle[T]) Domain() string {
	return h.domain
}

// IsLive reports whether an instance is currently installed.
func (h *Handle[T]) IsLive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.has
}

// Get returns the live instance. For AutoCreate domains a default instance
// is built on first access; for RequireInitialize domains Get fails with
// NOT_INITIALIZED until Initialize has been called.
func (h *Handle[T]) Get() (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.has {
		return h.live, nil
	}

	if h.policy == RequireInitialize {
		var zero T
		return zero, errors.NotInitialized(h.domain)
	}

	instance, err := h.buildDefault()
	if err != nil {
		var zero T
		return zero, err
	}
	h.install(instance)
	return instance, nil
}

// Initialize installs the given instance as the live one. Any prior instance
// is disposed first, so its native listeners are released before the new
// instance's listeners attach.
func (h *Handle[T]) Initialize(instance T) T {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.disposeLive()
	h.install(instance)
	return instance
}

// InitializeDefault builds a default instance via the handle's builder and
// installs it, disposing any prior instance first.
func (h *Handle[T]) InitializeDefault() (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	instance, err := h.buildDefault()
	if err != nil {
		var zero T
		return zero, err
	}
	h.disposeLive()
	h.install(instance)
	return instance, nil
}

// Reset disposes the live instance (if any) and returns the handle to empty.
// Safe to call when already empty.
func (h *Handle[T]) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.has {
		return
	}
	h.disposeLive()
	var zero T
	h.live = zero
	h.has = false
}

func (h *Handle[T]) buildDefault() (T, error) {
	var zero T
	if h.build == nil {
		return zero, errors.Internal(fmt.Sprintf("no builder for capability %s", h.domain))
	}
	instance, err := h.build()
	if err != nil {
		return zero, fmt.Errorf("building default %s capability: %w", h.domain, err)
	}
	return instance, nil
}

// disposeLive releases the current instance. Caller holds h.mu.
func (h *Handle[T]) disposeLive() {
	if !h.has {
		return
	}
	h.log.Debug("Disposing capability instance", map[string]interface{}{
		logger.FieldCapability: h.domain,
	})
	h.live.Dispose()
	h.has = false
}

// install records the new live instance. Caller holds h.mu.
func (h *Handle[T]) install(instance T) {
	h.live = instance
	h.has = true
	h.log.Debug("Capability instance installed", map[string]interface{}{
		logger.FieldCapability: h.domain,
	})
}
