package purchases

import (
	"fmt"
	"testing"

	"github.com/skillsenselab/appkit/errors"
	"github.com/skillsenselab/appkit/native"
)

// fakeStore is a scriptable native store module.
type fakeStore struct {
	configuredKey string
	configureErr  error
	offerings     []Offering
}

func (f *fakeStore) Configure(apiKey string) error {
	if f.configureErr != nil {
		return f.configureErr
	}
	f.configuredKey = apiKey
	return nil
}

func (f *fakeStore) Offerings() ([]Offering, error) { return f.offerings, nil }

func (f *fakeStore) Purchase(offeringID string) (PurchaseResult, error) {
	return PurchaseResult{TransactionID: "tx-1", Entitlements: []string{"pro"}}, nil
}

func (f *fakeStore) Restore() ([]string, error) { return []string{"pro"}, nil }

func availableProxy(st Store) *native.Proxy[Store] {
	return native.NewProxy("purchases", func() (Store, error) { return st, nil })
}

func absentProxy() *native.Proxy[Store] {
	return native.NewProxy("purchases", func() (Store, error) {
		return nil, fmt.Errorf("module not linked")
	})
}

func TestNewServiceConfiguresStore(t *testing.T) {
	st := &fakeStore{offerings: []Offering{{ID: "monthly"}}}
	s, err := NewService(availableProxy(st), Config{APIKey: "appk_live_1234"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.configuredKey != "appk_live_1234" {
		t.Errorf("expected key forwarded to store, got %q", st.configuredKey)
	}

	offers, err := s.Offerings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != "monthly" {
		t.Errorf("unexpected offerings: %v", offers)
	}
}

func TestNewServiceWithoutKey(t *testing.T) {
	_, err := NewService(availableProxy(&fakeStore{}), Config{})
	if !errors.IsCode(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("expected CONFIG_INVALID, got %v", err)
	}
}

func TestNewServiceWithShortKey(t *testing.T) {
	_, err := NewService(availableProxy(&fakeStore{}), Config{APIKey: "abc"})
	if !errors.IsCode(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("expected CONFIG_INVALID, got %v", err)
	}
}

func TestNewServiceWithoutModule(t *testing.T) {
	_, err := NewService(absentProxy(), Config{APIKey: "appk_live_1234"})
	if !errors.IsCode(err, errors.ErrCodeCapabilityUnavailable) {
		t.Errorf("expected CAPABILITY_UNAVAILABLE, got %v", err)
	}
}

func TestNewServiceWithRejectedKey(t *testing.T) {
	st := &fakeStore{configureErr: fmt.Errorf("invalid key")}
	_, err := NewService(availableProxy(st), Config{APIKey: "appk_live_1234"})
	if !errors.IsCode(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("expected CONFIG_INVALID, got %v", err)
	}
}

func TestPurchase(t *testing.T) {
	s, err := NewService(availableProxy(&fakeStore{}), Config{APIKey: "appk_live_1234"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := s.Purchase("monthly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TransactionID == "" || len(res.Entitlements) == 0 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestConfigured(t *testing.T) {
	if (Config{}).Configured() {
		t.Error("empty config must not report configured")
	}
	if (Config{APIKey: "   "}).Configured() {
		t.Error("whitespace key must not report configured")
	}
	if !(Config{APIKey: "appk_live_1234"}).Configured() {
		t.Error("expected configured")
	}
}
