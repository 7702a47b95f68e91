// Package buildinfo reports which build of explaintext is running.
//
// Release builds stamp the variables through the linker:
//
//	go build -ldflags "-X github.com/matzehuels/explaintext/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/explaintext/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/explaintext/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with "go install" carry no ldflags; for those the module
// version and VCS stamp recorded by the toolchain fill the gaps.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

const (
	unsetVersion = "dev"
	unsetCommit  = "none"
	unsetDate    = "unknown"
)

var (
	Version = unsetVersion
	Commit  = unsetCommit
	Date    = unsetDate
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fill(info)
	}
}

// fill replaces unstamped variables with what the toolchain recorded.
func fill(info *debug.BuildInfo) {
	if v := info.Main.Version; Version == unsetVersion && v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == unsetCommit:
			Commit = s.Value
		case s.Key == "vcs.time" && Date == unsetDate:
			Date = s.Value
		}
	}
}

// ShortCommit returns the first 12 characters of Commit.
func ShortCommit() string {
	if len(Commit) > 12 {
		return Commit[:12]
	}
	return Commit
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", Version, ShortCommit(), Date)
}

// Product returns "explaintext/<version>", sent in the Server header.
func Product() string {
	return "explaintext/" + Version
}
