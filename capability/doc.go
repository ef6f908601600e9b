// Package capability implements the service registry at the heart of appkit.
//
// A Handle owns at most one live instance of a capability implementation
// (storage, network, alerts, ...) and enforces the lifecycle contract:
// dispose-before-replace on Initialize, dispose-and-empty on Reset, and a
// per-domain access policy: auto-create a default on first Get, or require
// explicit initialization.
//
// Handles are aggregated into an application-level set by the bootstrap
// package and passed explicitly from the application root; there is no
// hidden process-wide registry.
package capability
