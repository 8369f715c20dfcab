// Package version carries the build identity of the strux binary. The
// variables are plain strings so a release build can stamp them with
// -ldflags "-X strux/internal/version.Version=...".
package version

import "github.com/fatih/color"

var (
	majorStyle = color.New(color.FgYellow, color.Bold)
	minorStyle = color.New(color.FgGreen, color.Bold)
	patchStyle = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version shown by --version.
	Version = majorStyle.Sprint("0") + "." + minorStyle.Sprint("1") + "." + patchStyle.Sprint("0") + "-dev"

	// GitCommit and BuildDate are stamped by the release build; empty in
	// development builds.
	GitCommit = ""
	BuildDate = ""
)
