// Package buildinfo reports which aurq build is running.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

// version can be stamped at link time:
//
//	go build -ldflags "-X github.com/tsukumogami/aurq/internal/buildinfo.version=v1.2.0"
var version string

// Version returns the version string for the current build: the linker
// stamp if present, else the module tag from go install, else
// "dev[-<hash>][-dirty]" from VCS settings, else "unknown".
func Version() string {
	if version != "" {
		return version
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return devVersion(info.Settings)
}

// UserAgent is sent with every RPC request.
func UserAgent() string {
	return "aurq/" + Version()
}

func devVersion(settings []debug.BuildSetting) string {
	parts := []string{"dev"}
	dirty := false

	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev := s.Value
			if len(rev) > 12 {
				rev = rev[:12]
			}
			if rev != "" {
				parts = append(parts, rev)
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	// A dirty flag without a revision says nothing useful.
	if dirty && len(parts) > 1 {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}
