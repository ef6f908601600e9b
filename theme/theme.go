package theme

import (
	"sync"

	"github.com/skillsenselab/appkit/logger"
	"github.com/skillsenselab/appkit/native"
	"github.com/skillsenselab/appkit/observe"
)

// Mode is the requested theme mode.
type Mode string

const (
	ModeSystem Mode = "system"
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
)

// Appearance is the resolved theme.
type Appearance string

const (
	Light Appearance = "light"
	Dark  Appearance = "dark"
)

// SystemSource is the native appearance monitor contract.
type SystemSource interface {
	// Current returns the system appearance.
	Current() Appearance
	// Watch registers a change callback and returns a release function.
	Watch(fn func(Appearance)) (stop func())
}

// Service is the theming capability: applies a mode and exposes the resolved
// appearance as an observable. In system mode it follows the native
// appearance monitor; without one it resolves to light.
type Service struct {
	proxy *native.Proxy[SystemSource]
	log   *logger.Logger
	state *observe.Observable[Appearance]

	mu     sync.Mutex
	mode   Mode
	system Appearance
}

// NewService creates a theme service in system mode. proxy may resolve to an
// absent module; the service then degrades to a fixed light appearance.
func NewService(proxy *native.Proxy[SystemSource]) *Service {
	s := &Service{
		proxy:  proxy,
		log:    logger.WithComponent("theme"),
		mode:   ModeSystem,
		system: Light,
	}

	res := proxy.Resolve()
	if res.Available() {
		s.system = res.Ref.Current()
		stop := res.Ref.Watch(s.onSystemChange)
		s.state = observe.NewObservable(s.resolve())
		s.state.OnDetach(stop)
		return s
	}

	s.log.Info("System appearance unavailable, defaulting to light", map[string]interface{}{
		"reason": res.Reason.Error(),
	})
	s.state = observe.NewObservable(s.resolve())
	return s
}

// Apply switches the theme mode and notifies subscribers of the newly
// resolved appearance.
func (s *Service) Apply(mode Mode) {
	s.mu.Lock()
	s.mode = mode
	resolved := s.resolve()
	s.mu.Unlock()

	s.state.Set(resolved)
}

// Mode returns the currently applied mode.
func (s *Service) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Resolved returns the current resolved appearance.
func (s *Service) Resolved() Appearance {
	return s.state.Get()
}

// Subscribe registers an appearance listener; the current appearance is
// delivered before the call returns.
func (s *Service) Subscribe(fn observe.Listener[Appearance]) *observe.Subscription {
	return s.state.Subscribe(fn)
}

// Dispose releases the native appearance watch and all listeners.
func (s *Service) Dispose() {
	s.state.Dispose()
}

func (s *Service) onSystemChange(appearance Appearance) {
	s.mu.Lock()
	s.system = appearance
	resolved := s.resolve()
	follow := s.mode == ModeSystem
	s.mu.Unlock()

	if follow {
		s.state.Set(resolved)
	}
}

// resolve maps mode to appearance. Caller holds s.mu (or is in NewService
// before the service is shared).
func (s *Service) resolve() Appearance {
	switch s.mode {
	case ModeLight:
		return Light
	case ModeDark:
		return Dark
	default:
		return s.system
	}
}
