// Package version holds the build metadata of the scr binary.
package version

import (
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// Set with -ldflags "-X scr/internal/version.Version=...".
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = "" // ISO-8601
)

// Info is the machine-readable form printed by `scr version --format json`.
type Info struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

// Current collects the linked-in values. Without -ldflags the commit and time
// fall back to the VCS stamp the go tool embeds.
func Current() Info {
	info := Info{
		Tool:      "scr",
		Version:   strings.TrimSpace(Version),
		GitCommit: strings.TrimSpace(GitCommit),
		BuildDate: strings.TrimSpace(BuildDate),
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildDate == "":
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

var semverColors = [3]*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored highlights major, minor and patch of v. Anything that is not
// MAJOR.MINOR.PATCH[-suffix] comes back unchanged.
func Colored(v string) string {
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	if len(parts) != len(semverColors) {
		return v
	}
	for i, p := range parts {
		parts[i] = semverColors[i].Sprint(p)
	}
	out := strings.Join(parts, ".")
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// String is the one-line `scr version --full` output.
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString(i.Tool + " " + Colored(i.Version))
	if i.GitCommit != "" {
		sb.WriteString(" (" + i.GitCommit + ")")
	}
	if i.BuildDate != "" {
		sb.WriteString(" built " + i.BuildDate)
	}
	return sb.String()
}
