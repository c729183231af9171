// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/mvnget/mvnget/pkg/buildinfo.Version=v1.0.0"
package buildinfo

import "fmt"

// Version is the semantic version (e.g., "v1.2.3").
// Set via ldflags: -X github.com/mvnget/mvnget/pkg/buildinfo.Version=...
var Version = "dev"

// UserAgent returns the identifying User-Agent string sent on every
// repository request.
func UserAgent() string {
	return fmt.Sprintf("mvnget/%s", Version)
}
