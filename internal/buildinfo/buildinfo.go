// Package buildinfo exposes version metadata injected at link time via
// -ldflags, in the same spirit as the teacher's dockerversion package.
package buildinfo

import (
	"fmt"
	"runtime"
)

// These are overridden at build time with:
//
//	go build -ldflags "-X github.com/Priya00300/iza-container/internal/buildinfo.Version=1.2.3 ..."
var (
	Version   = "0.0.0-dev"
	GitCommit = "unknown"
)

// UserAgent returns the User-Agent string iza sends on outbound HTTP
// requests, composed from the component name, version, and platform.
func UserAgent() string {
	return fmt.Sprintf("iza/%s (%s; %s/%s)", Version, GitCommit, runtime.GOOS, runtime.GOARCH)
}

// String returns a one-line human readable version banner.
func String() string {
	return fmt.Sprintf("iza version %s, build %s", Version, GitCommit)
}
