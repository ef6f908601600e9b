// Package purchases provides the in-app purchases capability over an optional
// native store-billing module. The capability is opt-in: without an API key it
// is never set up, and a malformed key fails setup with a CONFIG_INVALID error
// distinct from module absence.
package purchases
