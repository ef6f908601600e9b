package bootstrap

import (
	"github.com/skillsenselab/appkit/alerts"
	"github.com/skillsenselab/appkit/analytics"
	"github.com/skillsenselab/appkit/capability"
	"github.com/skillsenselab/appkit/config"
	"github.com/skillsenselab/appkit/native"
	"github.com/skillsenselab/appkit/navigation"
	"github.com/skillsenselab/appkit/network"
	"github.com/skillsenselab/appkit/notifications"
	"github.com/skillsenselab/appkit/purchases"
	"github.com/skillsenselab/appkit/storage"
	"github.com/skillsenselab/appkit/telemetry"
	"github.com/skillsenselab/appkit/theme"
)

// Natives bundles the proxies to the optional platform modules. Nil fields
// are replaced with permanently-absent proxies, so a host that links no
// native modules at all still gets a working (degraded) kit.
type Natives struct {
	Connectivity *native.Proxy[network.ConnectivitySource]
	Appearance   *native.Proxy[theme.SystemSource]
	Notifier     *native.Proxy[notifications.Displayer]
	Store        *native.Proxy[purchases.Store]
}

func (n *Natives) normalize() {
	if n.Connectivity == nil {
		n.Connectivity = native.NewProxy[network.ConnectivitySource]("connectivity", nil)
	}
	if n.Appearance == nil {
		n.Appearance = native.NewProxy[theme.SystemSource]("appearance", nil)
	}
	if n.Notifier == nil {
		n.Notifier = native.NewProxy[notifications.Displayer]("notifications", nil)
	}
	if n.Store == nil {
		n.Store = native.NewProxy[purchases.Store]("purchases", nil)
	}
}

// Registry aggregates one capability handle per domain. It is passed
// explicitly to whatever needs capabilities; there is no package-global
// instance.
//
// Policies per domain: storage, network, alerts, theme, and navigation
// auto-create a default instance on first Get; telemetry, analytics,
// notifications, and purchases require explicit initialization (the startup
// plan performs it for telemetry, analytics, and purchases).
type Registry struct {
	Storage       *capability.Handle[storage.Storage]
	Network       *capability.Handle[network.Service]
	Alerts        *capability.Handle[*alerts.Service]
	Theme         *capability.Handle[*theme.Service]
	Navigation    *capability.Handle[*navigation.Navigator]
	Notifications *capability.Handle[*notifications.Service]
	Telemetry     *capability.Handle[*telemetry.Service]
	Analytics     *capability.Handle[*analytics.Tracker]
	Purchases     *capability.Handle[*purchases.Service]

	cfg     config.AppConfig
	natives Natives
}

// NewRegistry creates a registry with empty handles for every domain.
func NewRegistry(cfg config.AppConfig, natives Natives) *Registry {
	natives.normalize()

	r := &Registry{cfg: cfg, natives: natives}

	r.Storage = capability.NewHandle("storage", capability.AutoCreate, r.buildStorage)
	r.Network = capability.NewHandle("network", capability.AutoCreate, r.buildNetwork)
	r.Alerts = capability.NewHandle("alerts", capability.AutoCreate,
		func() (*alerts.Service, error) { return alerts.NewService(), nil })
	r.Theme = capability.NewHandle("theme", capability.AutoCreate,
		func() (*theme.Service, error) { return theme.NewService(natives.Appearance), nil })
	r.Navigation = capability.NewHandle("navigation", capability.AutoCreate,
		func() (*navigation.Navigator, error) { return navigation.NewNavigator("/"), nil })
	r.Notifications = capability.NewHandle("notifications", capability.RequireInitialize,
		func() (*notifications.Service, error) { return notifications.NewService(natives.Notifier), nil })
	r.Telemetry = capability.NewHandle[*telemetry.Service]("telemetry", capability.RequireInitialize, nil)
	r.Analytics = capability.NewHandle[*analytics.Tracker]("analytics", capability.RequireInitialize, nil)
	r.Purchases = capability.NewHandle[*purchases.Service]("purchases", capability.RequireInitialize, nil)

	return r
}

// Config returns the configuration the registry was built from.
func (r *Registry) Config() config.AppConfig {
	return r.cfg
}

// Reset disposes and clears every handle, leaf domains before the telemetry
// base they report into. The registry remains usable afterwards: auto-create
// domains rebuild on next Get, the rest await re-initialization.
func (r *Registry) Reset() {
	r.Purchases.Reset()
	r.Notifications.Reset()
	r.Analytics.Reset()
	r.Telemetry.Reset()
	r.Network.Reset()
	r.Alerts.Reset()
	r.Theme.Reset()
	r.Navigation.Reset()
	r.Storage.Reset()
}

// buildStorage creates the default storage provider: a file-backed store
// under the configured namespace, value-encrypted when a key is configured.
func (r *Registry) buildStorage() (storage.Storage, error) {
	st, err := storage.NewFile(r.cfg.Storage.Namespace)
	if err != nil {
		return nil, err
	}
	if key := r.cfg.Storage.EncryptionKey; key != "" {
		enc, err := storage.NewEncrypted(st, key)
		if err != nil {
			st.Dispose()
			return nil, err
		}
		return enc, nil
	}
	return st, nil
}

// buildNetwork creates the baseline network client over the native
// connectivity monitor, or an always-online source when none resolves.
func (r *Registry) buildNetwork() (network.Service, error) {
	cfg := network.Config{
		BaseURL: r.cfg.Backend.APIURL,
		Timeout: r.cfg.Backend.RequestTimeout,
	}

	var source network.ConnectivitySource
	if res := r.natives.Connectivity.Resolve(); res.Available() {
		source = res.Ref
	}
	client, err := network.NewClient(cfg, source)
	if err != nil {
		return nil, err
	}
	return client, nil
}
