package storage

// Storage is the key-value capability contract. Providers persist string
// values under string keys; missing keys are a normal outcome, not an error.
type Storage interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool)
	// Set stores value under key.
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is a no-op.
	Remove(key string) error
	// Clear deletes all keys.
	Clear() error
	// Keys returns all stored keys.
	Keys() []string
	// Dispose releases any underlying resources.
	Dispose()
}
