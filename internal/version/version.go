package version

import (
	"fmt"
	"strings"
)

// Version information for the nova tools.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// String renders "nova <version> (<commit>, <date>)", omitting empty parts.
func String() string {
	var meta []string
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		meta = append(meta, commit)
	}
	if BuildDate != "" {
		meta = append(meta, BuildDate)
	}
	if len(meta) == 0 {
		return "nova " + Version
	}
	return fmt.Sprintf("nova %s (%s)", Version, strings.Join(meta, ", "))
}
