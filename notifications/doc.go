// Package notifications provides the local-notification capability over an
// optional native displayer module. Absence of the module is reported as a
// typed CAPABILITY_UNAVAILABLE error rather than a crash.
package notifications
