// Package storage provides the key-value capability: a contract plus a
// file-backed default provider, an in-memory fallback, and an encrypting
// wrapper for sensitive values.
package storage
