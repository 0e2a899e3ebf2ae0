// Package buildinfo holds version metadata stamped at build time via
// ldflags:
// go build -ldflags "-X onboardbuilder/internal/buildinfo.Version=v1.0.0".
package buildinfo

var Version = "unknown"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)
