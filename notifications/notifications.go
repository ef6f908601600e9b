package notifications

import (
	"github.com/skillsenselab/appkit/logger"
	"github.com/skillsenselab/appkit/native"
)

// DisplayOptions carries optional presentation parameters for a notification.
type DisplayOptions struct {
	// Body is the notification message text.
	Body string
	// Badge, when non-nil, sets the application badge count.
	Badge *int
	// Sound names the sound asset to play; empty means the platform default.
	Sound string
	// Data is attached to the notification and returned on interaction.
	Data map[string]string
}

// DisplayResult is the outcome of a display request.
type DisplayResult struct {
	// ID identifies the displayed notification for later cancellation.
	ID string
}

// PermissionResult is the outcome of a permission request.
type PermissionResult struct {
	// Granted reports whether the user allowed notifications.
	Granted bool
	// Reason explains a denial; empty when granted.
	Reason string
}

// Displayer is the native notification module contract.
type Displayer interface {
	// Display shows a local notification and returns its platform ID.
	Display(title string, opts DisplayOptions) (string, error)
	// RequestPermission prompts the user for notification permission.
	// A denial is reported in the result, not as an error.
	RequestPermission() (granted bool, reason string, err error)
	// Cancel removes a previously displayed notification.
	Cancel(id string) error
}

// Service is the notifications capability. Every operation requires the
// native displayer module; absence surfaces as CAPABILITY_UNAVAILABLE.
type Service struct {
	proxy *native.Proxy[Displayer]
	log   *logger.Logger
}

// NewService creates a notifications service over the native displayer proxy.
func NewService(proxy *native.Proxy[Displayer]) *Service {
	return &Service{
		proxy: proxy,
		log:   logger.WithComponent("notifications"),
	}
}

// Display shows a local notification.
func (s *Service) Display(title string, opts DisplayOptions) (DisplayResult, error) {
	ref, err := s.proxy.Require()
	if err != nil {
		return DisplayResult{}, err
	}

	id, err := ref.Display(title, opts)
	if err != nil {
		s.log.Warn("Notification display failed", map[string]interface{}{
			"error": err.Error(),
		})
		return DisplayResult{}, err
	}

	return DisplayResult{ID: id}, nil
}

// RequestPermission prompts the user for notification permission. A denial
// is a successful call with Granted false.
func (s *Service) RequestPermission() (PermissionResult, error) {
	ref, err := s.proxy.Require()
	if err != nil {
		return PermissionResult{}, err
	}

	granted, reason, err := ref.RequestPermission()
	if err != nil {
		return PermissionResult{}, err
	}

	s.log.Info("Notification permission resolved", map[string]interface{}{
		"granted": granted,
	})
	return PermissionResult{Granted: granted, Reason: reason}, nil
}

// Cancel removes a previously displayed notification by ID.
func (s *Service) Cancel(id string) error {
	ref, err := s.proxy.Require()
	if err != nil {
		return err
	}
	return ref.Cancel(id)
}

// IsAvailable reports whether the native displayer resolves.
func (s *Service) IsAvailable() bool {
	return s.proxy.IsAvailable()
}

// Dispose releases the service. The proxy cache is left intact; a later
// re-initialize reuses the resolved module.
func (s *Service) Dispose() {}
