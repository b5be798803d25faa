// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// Creatv is the canonical application identifier used for filesystem paths and CLI branding.
	Creatv = "creatv"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every request to the CreaTV APIs.
	UserAgent = Creatv + "-cli/" + Version
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

const (
	// ReleasesPageURL lists published releases.
	ReleasesPageURL = "https://github.com/creatv/creatv-cli/releases"
	// ReleasesAPIURL returns the latest release.
	ReleasesAPIURL = "https://api.github.com/repos/creatv/creatv-cli/releases/latest"
)
