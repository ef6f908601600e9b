package analytics

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/skillsenselab/appkit/logger"
)

// Tracker is the analytics capability: a thin wrapper that most downstream
// consumers use to report events, screen views, and the active user. Events
// flow into instruments on the telemetry meter.
type Tracker struct {
	events  metric.Int64Counter
	screens metric.Int64Counter
	log     *logger.Logger

	mu      sync.Mutex
	enabled bool
	userID  string
}

// NewTracker builds a tracker over the given meter. When enabled is false
// all reporting calls are cheap no-ops, but the tracker still exists so
// callers never branch on the feature toggle.
func NewTracker(meter metric.Meter, enabled bool) (*Tracker, error) {
	events, err := meter.Int64Counter("app.events",
		metric.WithDescription("Count of reported application events"))
	if err != nil {
		return nil, fmt.Errorf("creating events counter: %w", err)
	}
	screens, err := meter.Int64Counter("app.screen_views",
		metric.WithDescription("Count of screen views"))
	if err != nil {
		return nil, fmt.Errorf("creating screens counter: %w", err)
	}

	return &Tracker{
		events:  events,
		screens: screens,
		log:     logger.WithComponent("analytics"),
		enabled: enabled,
	}, nil
}

// Track reports a named event with optional string properties.
func (t *Tracker) Track(ctx context.Context, event string, props map[string]string) {
	t.mu.Lock()
	enabled, userID := t.enabled, t.userID
	t.mu.Unlock()
	if !enabled {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(props)+2)
	attrs = append(attrs, attribute.String("event", event))
	if userID != "" {
		attrs = append(attrs, attribute.String("user_id", userID))
	}
	for k, v := range props {
		attrs = append(attrs, attribute.String(k, v))
	}

	t.events.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Screen reports a screen view.
func (t *Tracker) Screen(ctx context.Context, name string) {
	t.mu.Lock()
	enabled := t.enabled
	t.mu.Unlock()
	if !enabled {
		return
	}
	t.screens.Add(ctx, 1, metric.WithAttributes(attribute.String("screen", name)))
}

// Identify associates subsequent events with a user.
func (t *Tracker) Identify(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.userID = userID
}

// Enabled reports whether the tracker is reporting.
func (t *Tracker) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// Dispose stops reporting. The underlying meter provider is owned and shut
// down by the telemetry service, not the tracker.
func (t *Tracker) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = false
	t.userID = ""
}
