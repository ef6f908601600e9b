// Package analytics provides the event-tracking capability returned by the
// startup orchestrator. It reports events and screen views as OpenTelemetry
// instruments on the telemetry service's meter.
package analytics
