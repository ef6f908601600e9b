// Package alerts provides the user-facing alert banner capability: a single
// observable banner with show/dismiss operations and a cancellable
// auto-dismiss timer.
package alerts
