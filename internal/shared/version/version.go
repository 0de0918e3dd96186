// Package version reports the build version of the service.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current is set at build time:
//
//	go build -ldflags "-X github.com/civictrack/civictrack/internal/shared/version.Current=v1.4.0"
var Current = "dev"

// Normalize ensures the version string has a "v" prefix.
// "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// IsRelease reports whether v is a valid semantic version without a
// prerelease suffix.
func IsRelease(v string) bool {
	n := Normalize(v)
	return semver.IsValid(n) && semver.Prerelease(n) == ""
}

// Info is the version block returned by the health endpoint.
type Info struct {
	Version string `json:"version"`
	Release bool   `json:"release"`
}

func Get() Info {
	if IsRelease(Current) {
		return Info{Version: semver.Canonical(Normalize(Current)), Release: true}
	}
	return Info{Version: Current}
}
