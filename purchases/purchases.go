package purchases

import (
	"strings"

	"github.com/skillsenselab/appkit/errors"
	"github.com/skillsenselab/appkit/logger"
	"github.com/skillsenselab/appkit/native"
)

// Config configures the purchases capability.
type Config struct {
	// APIKey authenticates against the purchases backend. Empty means the
	// capability is not configured and setup should be skipped.
	APIKey string
}

// Configured reports whether an API key is present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Validate checks a present configuration. Call only when Configured.
func (c Config) Validate() error {
	if len(strings.TrimSpace(c.APIKey)) < 8 {
		return errors.ConfigInvalid("purchases", "API key is too short")
	}
	return nil
}

// Offering is a purchasable package presented to the user.
type Offering struct {
	ID          string
	Title       string
	Description string
	Price       string
}

// PurchaseResult is the outcome of a completed purchase.
type PurchaseResult struct {
	// TransactionID identifies the store transaction.
	TransactionID string
	// Entitlements lists the entitlement IDs now active.
	Entitlements []string
}

// Store is the native store-billing module contract.
type Store interface {
	// Configure initializes the underlying SDK with the API key.
	Configure(apiKey string) error
	// Offerings returns the currently available offerings.
	Offerings() ([]Offering, error)
	// Purchase starts the purchase flow for an offering.
	Purchase(offeringID string) (PurchaseResult, error)
	// Restore re-activates entitlements from previous purchases.
	Restore() ([]string, error)
}

// Service is the in-app purchases capability. It is constructed only when an
// API key is configured; the native store module must resolve and accept the
// key before the service is usable.
type Service struct {
	proxy *native.Proxy[Store]
	log   *logger.Logger
	cfg   Config
}

// NewService creates a purchases service. It validates the configuration and
// configures the native store module up front, so a misconfigured key fails
// setup instead of the first purchase.
func NewService(proxy *native.Proxy[Store], cfg Config) (*Service, error) {
	if !cfg.Configured() {
		return nil, errors.ConfigInvalid("purchases", "no API key configured")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ref, err := proxy.Require()
	if err != nil {
		return nil, err
	}
	if err := ref.Configure(cfg.APIKey); err != nil {
		return nil, errors.ConfigInvalid("purchases", "store rejected the API key").WithCause(err)
	}

	s := &Service{
		proxy: proxy,
		log:   logger.WithComponent("purchases"),
		cfg:   cfg,
	}
	s.log.Info("Purchases configured", nil)
	return s, nil
}

// Offerings returns the currently available offerings.
func (s *Service) Offerings() ([]Offering, error) {
	ref, err := s.proxy.Require()
	if err != nil {
		return nil, err
	}
	return ref.Offerings()
}

// Purchase starts the purchase flow for the offering.
func (s *Service) Purchase(offeringID string) (PurchaseResult, error) {
	ref, err := s.proxy.Require()
	if err != nil {
		return PurchaseResult{}, err
	}

	res, err := ref.Purchase(offeringID)
	if err != nil {
		s.log.Warn("Purchase failed", map[string]interface{}{
			"offering": offeringID,
			"error":    err.Error(),
		})
		return PurchaseResult{}, err
	}

	s.log.Info("Purchase completed", map[string]interface{}{
		"offering": offeringID,
	})
	return res, nil
}

// Restore re-activates entitlements from previous purchases.
func (s *Service) Restore() ([]string, error) {
	ref, err := s.proxy.Require()
	if err != nil {
		return nil, err
	}
	return ref.Restore()
}

// Dispose releases the service. The native SDK keeps its configuration; a
// later re-initialize reconfigures it.
func (s *Service) Dispose() {}
