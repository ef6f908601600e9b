package network

// ConnectivitySource is the native connectivity monitor contract. The
// platform adapter reports reachability changes; absence of the adapter
// means connectivity is assumed.
type ConnectivitySource interface {
	// Online returns the current reachability.
	Online() bool
	// Watch registers a change callback and returns a release function.
	Watch(fn func(online bool)) (stop func())
}

// staticSource is the fallback source when no native monitor is present.
type staticSource struct{ online bool }

func (s staticSource) Online() bool                    { return s.online }
func (s staticSource) Watch(func(bool)) (stop func()) { return func() {} }

// AlwaysOnline returns a ConnectivitySource that reports online and never
// changes. Used when the native monitor is unavailable.
func AlwaysOnline() ConnectivitySource {
	return staticSource{online: true}
}
