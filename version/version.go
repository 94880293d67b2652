// Package version holds build information injected with -ldflags
package version

// These variables are set via ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version followed by commit and build date
// when they are known
func GetFullVersion() string {
	if GitCommit == "unknown" {
		return Version
	}
	if BuildDate == "unknown" {
		return Version + " (" + GitCommit + ")"
	}
	return Version + " (" + GitCommit + ", " + BuildDate + ")"
}
