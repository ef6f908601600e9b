// Package native wraps optional, possibly-absent native modules behind a
// resolve-once proxy.
//
// A Proxy caches the first resolution outcome (the module handle on success,
// the reason on failure) and treats absence as an ordinary state rather than
// an error to propagate. Capability services consult their proxy to decide
// whether they can operate or must degrade.
package native
