// Package buildinfo carries version details stamped in with -ldflags "-X".
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the release version, or the commit for untagged builds.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	default:
		return "dev"
	}
}

// String is the one-line banner printed by -version.
func String() string {
	return fmt.Sprintf("geniecalc %s (commit %s, built %s)", Version, Commit, Date)
}
