// SPDX-License-Identifier: MIT

// Package build exposes metadata injected at link time, for example:
//
//	go build -ldflags "-X tuner/internal/build.buildVersion=0.3.0 \
//	                   -X tuner/internal/build.buildCommit=$(git rev-parse --short HEAD)"
//
// Development builds that skip the flags get usable defaults.
package build

// Info holds the build metadata surfaced through the CLI version output.
type Info struct {
	Name    string // Application name
	Version string // Semantic version
	Commit  string // Git commit hash
	Time    string // Build timestamp, RFC3339
}

var (
	buildName    = "tuner"
	buildVersion = "dev"
	buildCommit  = "none"
	buildTime    = "unknown"
)

// Get returns the build metadata for this binary.
func Get() Info {
	return Info{
		Name:    buildName,
		Version: buildVersion,
		Commit:  buildCommit,
		Time:    buildTime,
	}
}
