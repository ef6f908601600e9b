// Package version reports the kit build version, set at build time via
// -ldflags or recovered from the embedded VCS metadata.
package version

import (
	"runtime/debug"
)

// Version is set at build time:
//
//	-ldflags "-X github.com/skillsenselab/appkit/version.Version=1.4.0"
var Version = "dev"

// Short returns the version, suffixed with the VCS revision when the binary
// carries one.
func Short() string {
	rev := revision()
	if rev == "" {
		return Version
	}
	return Version + "-" + rev
}

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 7 {
				return s.Value[:7]
			}
			return s.Value
		}
	}
	return ""
}
