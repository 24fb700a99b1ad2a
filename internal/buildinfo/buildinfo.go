// Package buildinfo holds version information injected at build time via ldflags.
package buildinfo

var (
	Version    = "dev"
	CommitHash = "N/A"
	BuildDate  = "unknown"
)

const (
	// AppName is the user-facing application name.
	AppName = "CPUCat"

	// ProjectPage is shown in the About dialog.
	ProjectPage = "https://github.com/cpucat/cpucat"
)
