// Package network provides the network capability: a configured HTTP client
// with typed error classification (timeouts are distinguishable from generic
// failures), optional retry, a connectivity observable fed by a native
// reachability monitor, and a bearer-auth decorator that falls back cleanly
// when authentication cannot be set up.
package network
