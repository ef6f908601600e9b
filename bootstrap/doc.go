// Package bootstrap brings an application up in a deterministic, partially
// fault-tolerant order. It owns the typed capability registry (one handle per
// domain) and the startup orchestrator: required steps abort the run on
// failure, optional steps degrade it.
package bootstrap
