// Package version holds build information, set with
// -ldflags "-X delaunay-layers/internal/version.GitCommit=...".
package version

import "fmt"

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the build for logs and about boxes, e.g.
// "0.1.0 (3f2a9c1, 2026-01-02T15:04:05Z)".
func String() string {
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, BuildTime)
}
