// Package version holds build metadata for the lumen CLI.
package version

import (
	"fmt"

	"github.com/fatih/color"
)

const (
	major = 0
	minor = 1
	patch = 0
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI, each component colored
	// independently the way `lumen version` prints it.
	Version = fmt.Sprintf("%s.%s.%s-dev",
		majorColor.Sprint(major),
		minorColor.Sprint(minor),
		patchColor.Sprint(patch),
	)

	// GitCommit is an optional git commit hash, set via -ldflags.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601, set via -ldflags.
	BuildDate = ""
)
