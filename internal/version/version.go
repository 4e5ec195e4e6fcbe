// Package version holds the build version for ytgit.
package version

import "runtime/debug"

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = ""
)

// FullVersion returns "<version> (commit <sha>)", or just the version when
// no commit is known. Without an ldflags commit the VCS revision recorded
// by the Go toolchain is used, shortened to 12 characters.
func FullVersion() string {
	return format(Version, commit(Commit, debug.ReadBuildInfo))
}

func format(v, sha string) string {
	if sha == "" {
		return v
	}
	return v + " (commit " + sha + ")"
}

func commit(ldflags string, readInfo func() (*debug.BuildInfo, bool)) string {
	if ldflags != "" {
		return ldflags
	}
	info, ok := readInfo()
	if !ok || info == nil {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}
