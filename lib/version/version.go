// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// shortCommitLength matches git's default abbreviation.
const shortCommitLength = 7

// Info returns a formatted version string suitable for version output.
func Info() string {
	commit, buildTime := Commit(), BuildTime
	if buildTime == "unknown" {
		if stamped := buildSetting("vcs.time"); stamped != "" {
			buildTime = stamped
		}
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, buildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA, from -ldflags or the embedded VCS
// stamp.
func Commit() string {
	if GitCommit != "unknown" {
		return GitCommit
	}
	revision := buildSetting("vcs.revision")
	if revision == "" {
		return GitCommit
	}
	if len(revision) > shortCommitLength {
		revision = revision[:shortCommitLength]
	}
	if buildSetting("vcs.modified") == "true" {
		revision += "-dirty"
	}
	return revision
}

func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}
