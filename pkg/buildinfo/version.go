// Package buildinfo carries version metadata stamped at release time via
// -ldflags "-X github.com/matzehuels/pipgraph/pkg/buildinfo.Version=v1.0.0"
// (likewise Commit and Date).
package buildinfo

import "fmt"

// Defaults identify a from-source build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build metadata for display.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the version template handed to cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
