// Package version provides information about the build version of the service.
package version

import "runtime/debug"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. version, commit and date are set at
// build time; commit falls back to the vcs stamp when ldflags are absent.
func Info() BuildInfo {
	// -ldflags "-X 'spedicija/internal/core/version.version=v0.1.0'
	// -X 'spedicija/internal/core/version.commit=abcd' -X 'spedicija/internal/core/version.date=2026-01-02'"
	c := commit
	if c == "none" {
		c = vcsRevision()
	}
	return BuildInfo{
		Service: "spedicija-api",
		Version: version,
		Commit:  c,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "none"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "none"
}
