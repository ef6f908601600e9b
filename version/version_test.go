package version

import (
	"strings"
	"testing"
)

func TestShortDefaultsToDev(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()
	Version = "dev"

	if !strings.HasPrefix(Short(), "dev") {
		t.Errorf("expected short version to start with 'dev', got %q", Short())
	}
}

func TestShortWithLdflagsVersion(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()
	Version = "1.4.0"

	if !strings.HasPrefix(Short(), "1.4.0") {
		t.Errorf("expected short version to start with '1.4.0', got %q", Short())
	}
}
