// Package coordinate models Maven artifact coordinates: the
// group:artifact[:extension[:classifier]][:version] tuple identifying a
// single published artifact in a Maven-layout repository.
package coordinate

import (
	"fmt"
	"strings"
)

// DefaultExtension is used when a coordinate does not specify one.
const DefaultExtension = "jar"

// snapshotSuffix marks mutable, frequently-republished versions whose
// concrete downloadable file carries a separate timestamped value.
const snapshotSuffix = "SNAPSHOT"

// Coordinate identifies an artifact in a Maven repository. It is a value
// type: resolution produces new values via WithVersion rather than mutating
// an existing one.
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
	Extension  string
}

// InvalidError reports a malformed coordinate string or a coordinate
// constructed without a group or artifact.
type InvalidError struct {
	Input  string
	Reason string
}

func (e *InvalidError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("invalid coordinate: %s", e.Reason)
	}
	return fmt.Sprintf("invalid coordinate %q: %s", e.Input, e.Reason)
}

// New builds a coordinate from discrete fields. Group and artifact are
// required; extension defaults to "jar" when empty.
func New(group, artifact, version, classifier, extension string) (Coordinate, error) {
	if group == "" || artifact == "" {
		return Coordinate{}, &InvalidError{Reason: "group and artifact must be provided"}
	}
	if extension == "" {
		extension = DefaultExtension
	}
	return Coordinate{
		Group:      group,
		Artifact:   artifact,
		Version:    version,
		Classifier: classifier,
		Extension:  extension,
	}, nil
}

// Parse builds a coordinate from a colon-delimited string. Field assignment
// depends on the segment count:
//
//	g:a                        group, artifact
//	g:a:version                plus version
//	g:a:extension:version      plus extension
//	g:a:ext:classifier:version plus classifier
func Parse(input string) (Coordinate, error) {
	parts := strings.Split(input, ":")
	if len(parts) < 2 {
		return Coordinate{}, &InvalidError{Input: input, Reason: "expected at least group:artifact"}
	}

	var version, classifier, extension string
	if len(parts) >= 3 {
		version = parts[len(parts)-1]
	}
	if len(parts) >= 4 {
		extension = parts[2]
	}
	if len(parts) >= 5 {
		classifier = parts[3]
	}

	return New(parts[0], parts[1], version, classifier, extension)
}

// WithVersion returns a copy of c with the version replaced. Used by
// resolution so the requested and resolved identities stay distinct values.
func (c Coordinate) WithVersion(version string) Coordinate {
	c.Version = version
	return c
}

// IsSnapshot reports whether the version ends with the SNAPSHOT suffix.
func (c Coordinate) IsSnapshot() bool {
	return c.Version != "" && strings.HasSuffix(c.Version, snapshotSuffix)
}

// GroupPath returns the group with dots replaced by path separators, as
// laid out in a Maven repository.
func (c Coordinate) GroupPath() string {
	return strings.ReplaceAll(c.Group, ".", "/")
}

// RepoPath returns the repository path for the artifact, without a version
// segment: {group-as-path}/{artifact}.
func (c Coordinate) RepoPath() string {
	return c.GroupPath() + "/" + c.Artifact
}

// FileName returns the destination filename derived from the coordinate:
// {artifact}[-{classifier}].{extension}.
func (c Coordinate) FileName() string {
	name := c.Artifact
	if c.Classifier != "" {
		name += "-" + c.Classifier
	}
	return name + "." + c.Extension
}

// String renders the canonical coordinate form. The extension is emitted
// only when it differs from "jar" or a classifier is present, so parsing a
// non-canonical input does not necessarily round-trip byte-for-byte.
func (c Coordinate) String() string {
	parts := []string{c.Group, c.Artifact}
	if c.Extension != DefaultExtension || c.Classifier != "" {
		parts = append(parts, c.Extension)
	}
	if c.Classifier != "" {
		parts = append(parts, c.Classifier)
	}
	if c.Version != "" {
		parts = append(parts, c.Version)
	}
	return strings.Join(parts, ":")
}
