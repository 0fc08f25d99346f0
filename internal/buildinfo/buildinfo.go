// Package buildinfo carries version metadata injected at link time with -ldflags -X.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("geojson-clipping %s (commit=%s, date=%s)", Version, Commit, Date)
}

// IsDev reports whether the binary was built without release metadata.
// Such builds are run directly by developers and report errors in full.
func IsDev() bool {
	return Version == "" || Version == "dev"
}
