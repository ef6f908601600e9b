package alerts

import (
	"sync"
	"time"

	"github.com/skillsenselab/appkit/logger"
	"github.com/skillsenselab/appkit/observe"
)

// Severity classifies a banner.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Banner is the alert capability's observable state. It is mutated only by
// the service in response to Show/Dismiss; subscribers receive snapshots.
type Banner struct {
	Visible     bool
	Title       string
	Body        string
	Severity    Severity
	AutoDismiss time.Duration
}

// Service is the user-facing alert capability: one banner at a time, with
// optional auto-dismiss.
type Service struct {
	state *observe.Observable[Banner]
	log   *logger.Logger

	mu    sync.Mutex
	timer *time.Timer
	// gen invalidates in-flight auto-dismiss timers: a timer only clears the
	// banner if no newer Show or Dismiss happened after it was armed.
	gen uint64
}

// NewService creates an alert service with no visible banner.
func NewService() *Service {
	return &Service{
		state: observe.NewObservable(Banner{}),
		log:   logger.WithComponent("alerts"),
	}
}

// Show displays a banner, replacing any current one. A positive duration
// arms an auto-dismiss; any pending auto-dismiss from a prior Show is
// cancelled first so a stale timer can never clear a newer banner.
func (s *Service) Show(title, body string, severity Severity, duration time.Duration) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.stopTimerLocked()
	if duration > 0 {
		s.timer = time.AfterFunc(duration, func() { s.expire(gen) })
	}
	s.mu.Unlock()

	s.state.Set(Banner{
		Visible:     true,
		Title:       title,
		Body:        body,
		Severity:    severity,
		AutoDismiss: duration,
	})
}

// Dismiss hides the current banner and cancels any pending auto-dismiss.
func (s *Service) Dismiss() {
	s.mu.Lock()
	s.gen++
	s.stopTimerLocked()
	s.mu.Unlock()

	s.hide()
}

// Current returns the current banner state.
func (s *Service) Current() Banner {
	return s.state.Get()
}

// Subscribe registers a banner listener; the current state is delivered
// before the call returns.
func (s *Service) Subscribe(fn observe.Listener[Banner]) *observe.Subscription {
	return s.state.Subscribe(fn)
}

// Dispose cancels any pending timer and drops all listeners.
func (s *Service) Dispose() {
	s.mu.Lock()
	s.gen++
	s.stopTimerLocked()
	s.mu.Unlock()

	s.state.Dispose()
}

// expire is the auto-dismiss path. It only acts if gen still matches the
// Show that armed it.
func (s *Service) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	s.hide()
}

func (s *Service) hide() {
	s.state.Update(func(b Banner) Banner {
		b.Visible = false
		return b
	})
}

// stopTimerLocked cancels the pending timer. Caller holds s.mu.
func (s *Service) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
