// Package observe provides the listener fan-out base used by every appkit
// capability that pushes state changes to consumers.
//
// An Observable holds the current state and a set of subscriptions keyed by
// token. Subscribe delivers the current state synchronously before returning;
// Set delivers to every listener registered when the change begins. Dispose
// drops all listeners and releases the native event source, which is what
// lets a service handle guarantee that a replaced instance stops notifying.
package observe
