// Package version provides build and version information.
package version

import "fmt"

// Version is the current application version.
const Version = "0.3.0"

// Commit is set at build time with -ldflags "-X .../version.Commit=...".
var Commit = ""

// String returns the version with the commit, when known.
func String() string {
	if Commit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, Commit)
}

// Milestones:
// 0.3.0 - Catalogue hot reload, ambient soundtrack, headless simulate
// 0.2.0 - Cinematic tour, detail panel, comet and asteroid belt
// 0.1.0 - Initial release: orrery view, procedural textures, picking
