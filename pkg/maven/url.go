package maven

import (
	"fmt"

	"github.com/mvnget/mvnget/pkg/coordinate"
)

// ArtifactURL builds the download URL for a fully resolved coordinate:
//
//	{base}/{group-as-path}/{artifact}/{version}/{artifact}-{resolved}[-{classifier}].{extension}
//
// The path segment keeps the original (possibly -SNAPSHOT) version while the
// filename uses the resolved timestamped version. For release coordinates
// resolved is ignored and the coordinate's own version names the file.
func ArtifactURL(base string, c coordinate.Coordinate, resolved string) (string, error) {
	if c.Version == "" {
		return "", fmt.Errorf("coordinate %s has no version to build a URL from", c)
	}
	if c.IsSnapshot() && resolved == "" {
		return "", fmt.Errorf("expected unique timestamped version for snapshot artifact %s", c)
	}
	if !c.IsSnapshot() {
		resolved = c.Version
	}

	name := c.Artifact + "-" + resolved
	if c.Classifier != "" {
		name += "-" + c.Classifier
	}
	return fmt.Sprintf("%s/%s/%s/%s.%s", base, c.RepoPath(), c.Version, name, c.Extension), nil
}
