// Package navigation provides the navigation capability: a history stack with
// an observable current state, push/back semantics, and a fallback route for
// deep-linked entry points.
package navigation
