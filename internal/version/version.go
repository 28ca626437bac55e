package version

import (
	"fmt"
	"runtime"
	"time"
)

// These variables are set at build time via -ldflags
var (
	Version   = "dev"     // -X github.com/osa911/contactrelay/internal/version.Version=v1.0.0
	BuildTime = "unknown" // -X github.com/osa911/contactrelay/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)
	GitCommit = "unknown" // -X github.com/osa911/contactrelay/internal/version.GitCommit=$(git rev-parse HEAD)
)

// BuildInfo contains comprehensive build information
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo returns complete build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Info returns a formatted version info string for CLI output
func Info() string {
	return GetBuildInfo().String()
}

func (b BuildInfo) String() string {
	if b.BuildTime == "unknown" {
		return fmt.Sprintf("%s (development build, %s %s)", b.Version, b.GoVersion, b.Platform)
	}

	built := b.BuildTime
	if t, err := time.Parse(time.RFC3339, b.BuildTime); err == nil {
		built = t.UTC().Format("2006-01-02 15:04:05 UTC")
	}

	commit := b.GitCommit
	if len(commit) > 8 {
		commit = commit[:8]
	}

	return fmt.Sprintf("%s (built %s, commit %s, %s %s)", b.Version, built, commit, b.GoVersion, b.Platform)
}
