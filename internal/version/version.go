// Package version provides build information for rmgrid.
package version

import "runtime"

// Version is overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash, set at build time using ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// UserAgent is sent with every API request.
func UserAgent() string {
	return "rmgrid/" + String() + " (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
