// Package buildinfo stores build-time metadata shared across packages.
package buildinfo

// Set via -ldflags "-X github.com/amc-launcher/amcui/internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
