// Package version holds evq build information.
package version

import "fmt"

// Set via -ldflags "-X github.com/tessro/evq/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build information for display.
func String() string {
	return fmt.Sprintf("evq %s (commit: %s, built: %s)", Version, Commit, Date)
}
