package version

import (
	"runtime/debug"
	"strings"
)

// Version information set by build flags
// Version is the current version of paradigm.
// Set using -ldflags "-X github.com/paradigmmc/paradigm/pkg/version.version=v1.2.3"
var version string = "unknown"

// String returns the version, falling back to the module version of the build.
func String() string {
	if version != "unknown" && version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// UserAgent identifies paradigm to external services, e.g. Paradigm/v1.2.3.
func UserAgent() string {
	s := strings.Builder{}
	s.WriteString("Paradigm/")
	if v := String(); v != "" {
		s.WriteString(v)
	} else {
		s.WriteString("Dirty")
	}
	return s.String()
}
