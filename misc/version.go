// Package misc keeps build identification in a single place.
package misc

import (
	"runtime/debug"
)

// overwritten at build time via ldflags when building a release
var (
	appName = "gqli"
	version = "development"
	gitHash = ""
)

// GetAppName returns short program name used for logs, temp files and alike.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns vcs revision program was built from. When not set by the
// build it is taken from the module build info if available.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
