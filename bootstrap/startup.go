package bootstrap

import (
	"context"

	"github.com/skillsenselab/appkit/analytics"
	"github.com/skillsenselab/appkit/logger"
	"github.com/skillsenselab/appkit/network"
	"github.com/skillsenselab/appkit/purchases"
	"github.com/skillsenselab/appkit/telemetry"
)

// Hook is a caller-supplied startup callback.
type Hook func(ctx context.Context) error

// StartupOptions customizes the fixed startup plan.
type StartupOptions struct {
	// Tokens supplies access tokens for the auth-aware network step. Nil
	// leaves the baseline (unauthenticated) network client in place.
	Tokens network.TokenSource

	// Localize runs as the final optional step, after every capability is
	// up. Nil skips the step.
	Localize Hook
}

// Startup runs the fixed plan against the registry and returns the analytics
// tracker once the application is Completed or Degraded. A required step
// failure aborts with a STEP_FAILED error; the report is returned either way.
func Startup(ctx context.Context, reg *Registry, opts StartupOptions) (*analytics.Tracker, *Report, error) {
	orch := NewOrchestrator(newPlan(reg, opts))

	report, err := orch.Run(ctx)
	if err != nil {
		return nil, report, err
	}

	tracker, err := reg.Analytics.Get()
	if err != nil {
		return nil, report, err
	}
	return tracker, report, nil
}

// newPlan builds the fixed startup plan. Order matters: analytics needs the
// telemetry meter, the auth network wraps a fresh baseline client, and the
// localization hook runs last so it can use any capability.
func newPlan(reg *Registry, opts StartupOptions) []Step {
	log := logger.WithComponent("bootstrap")
	cfg := reg.Config()

	return []Step{
		{
			Name:     "storage",
			Required: true,
			Run: func(context.Context) error {
				_, err := reg.Storage.Get()
				return err
			},
		},
		{
			Name:     "telemetry",
			Required: true,
			Run: func(ctx context.Context) error {
				tel, err := telemetry.New(ctx, telemetry.Config{
					AppName:     cfg.App.Name,
					AppVersion:  cfg.App.Version,
					Environment: cfg.App.Environment,
					Endpoint:    cfg.Backend.TelemetryEndpoint,
					Insecure:    cfg.Backend.Insecure,
				})
				if err != nil {
					return err
				}
				reg.Telemetry.Initialize(tel)
				return nil
			},
		},
		{
			Name:     "analytics",
			Required: true,
			Run: func(context.Context) error {
				tel, err := reg.Telemetry.Get()
				if err != nil {
					return err
				}
				tracker, err := analytics.NewTracker(tel.Meter("appkit/analytics"), cfg.Features.Analytics)
				if err != nil {
					return err
				}
				reg.Analytics.Initialize(tracker)
				return nil
			},
		},
		{
			Name:     "network",
			Required: false,
			Run: func(context.Context) error {
				if opts.Tokens == nil {
					log.Debug("No token source, keeping baseline network")
					return nil
				}
				base, err := reg.buildNetwork()
				if err != nil {
					return err
				}
				auth, err := network.NewAuthClient(base, opts.Tokens)
				if err != nil {
					base.Dispose()
					return err
				}
				reg.Network.Initialize(auth)
				return nil
			},
		},
		{
			Name:     "alerts",
			Required: true,
			Run: func(context.Context) error {
				_, err := reg.Alerts.Get()
				return err
			},
		},
		{
			Name:     "purchases",
			Required: false,
			Run: func(context.Context) error {
				if !cfg.HasPurchases() {
					log.Debug("Purchases not configured, skipping")
					return nil
				}
				svc, err := purchases.NewService(reg.natives.Store, purchases.Config{APIKey: cfg.Keys.Purchases})
				if err != nil {
					return err
				}
				reg.Purchases.Initialize(svc)
				return nil
			},
		},
		{
			Name:     "localization",
			Required: false,
			Run: func(ctx context.Context) error {
				if opts.Localize == nil {
					return nil
				}
				return opts.Localize(ctx)
			},
		},
	}
}
