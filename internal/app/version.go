package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version. It is checked
// before flag parsing so that --version works even with an incomplete
// configuration.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--version", "-version":
			return true
		case "--":
			return false
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "collatzcheck %s\n", Version)
	fmt.Fprintf(out, "  commit: %s\n  built:  %s\n  go:     %s %s/%s\n",
		Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
