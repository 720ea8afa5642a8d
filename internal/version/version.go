// Package version holds the build-time version variables for the namegov binary.
// The zero values ("dev", "none", "unknown") are used for local builds.
package version

import "fmt"

// These variables are overridden by -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the formatted version string printed by namegov version.
func Info() string {
	return fmt.Sprintf(
		"namegov version %s\ncommit: %s\nbuilt: %s\n",
		Version,
		Commit,
		Date,
	)
}
