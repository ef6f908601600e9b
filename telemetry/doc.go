// Package telemetry provides the remote-telemetry platform base service:
// OTLP metric and trace providers initialized once at startup and disposed
// through the capability registry. The analytics capability builds its
// instruments on the meter this service exposes.
package telemetry
