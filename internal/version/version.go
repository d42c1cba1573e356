// Package version exposes build metadata set through ldflags.
package version

import "fmt"

// ServiceName identifies this program in health responses and notifications.
const ServiceName = "sitebuilder"

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/sitebuilder/internal/version.Version=v1.0.0".
var Version = "unknown"

// Build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by the CLI.
func String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", ServiceName, Version, GitCommit, BuildTime)
}
