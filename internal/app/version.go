package app

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Build information, set with -ldflags "-X github.com/agbru/bcollect/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version banner. It is
// checked before flag parsing so that -version works alongside invalid flags.
// Like the flag package, it stops at "--" or at the first argument that is
// not a flag, since everything after that is an input path.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch {
		case arg == "-version" || arg == "--version" || arg == "-V":
			return true
		case arg == "--" || !strings.HasPrefix(arg, "-") || arg == "-":
			return false
		}
	}
	return false
}

// PrintVersion writes the version banner to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "bcollect %s (commit %s, built %s, %s %s/%s)\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
