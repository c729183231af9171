package maven

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/mvnget/mvnget/pkg/coordinate"
)

// MetadataFileName is the per-artifact index document published by
// Maven-layout repositories.
const MetadataFileName = "maven-metadata.xml"

// metadata mirrors the parts of maven-metadata.xml this tool consumes.
type metadata struct {
	XMLName    xml.Name   `xml:"metadata"`
	Versioning versioning `xml:"versioning"`
}

type versioning struct {
	Versions         []string          `xml:"versions>version"`
	SnapshotVersions []snapshotVersion `xml:"snapshotVersions>snapshotVersion"`
}

type snapshotVersion struct {
	Classifier string `xml:"classifier"`
	Extension  string `xml:"extension"`
	Value      string `xml:"value"`
}

// Resolver answers version questions against repository metadata.
type Resolver struct {
	Client *Client
}

// LatestVersion resolves a coordinate without a version to the newest one
// published. The repository's own document ordering is trusted: the last
// <version> element wins, with no semantic-version comparison.
func (r *Resolver) LatestVersion(ctx context.Context, c coordinate.Coordinate) (string, error) {
	url := fmt.Sprintf("%s/%s/%s", r.Client.BaseURL, c.RepoPath(), MetadataFileName)
	md, err := r.fetchMetadata(ctx, url, c)
	if err != nil {
		return "", err
	}

	versions := md.Versioning.Versions
	if len(versions) == 0 {
		return "", &NotFoundError{Coordinate: c.String()}
	}
	return versions[len(versions)-1], nil
}

// SnapshotVersion resolves a snapshot coordinate to its current unique
// timestamped version string. Entries are filtered by the coordinate's
// extension and, when present, its classifier; the first survivor's value
// is returned.
func (r *Resolver) SnapshotVersion(ctx context.Context, c coordinate.Coordinate) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/%s", r.Client.BaseURL, c.RepoPath(), c.Version, MetadataFileName)
	md, err := r.fetchMetadata(ctx, url, c)
	if err != nil {
		return "", err
	}

	for _, sv := range md.Versioning.SnapshotVersions {
		if sv.Extension != c.Extension {
			continue
		}
		if c.Classifier != "" && sv.Classifier != c.Classifier {
			continue
		}
		return sv.Value, nil
	}
	return "", &NotFoundError{Coordinate: c.String()}
}

// fetchMetadata downloads and parses a metadata document. A 404 from the
// repository means the artifact has no published metadata and is reported
// as a NotFoundError; other failures surface as transport errors.
func (r *Resolver) fetchMetadata(ctx context.Context, url string, c coordinate.Coordinate) (*metadata, error) {
	buf, err := r.Client.Get(ctx, url, "failed to download "+MetadataFileName)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) && te.notFound() {
			return nil, &NotFoundError{Coordinate: c.String()}
		}
		return nil, err
	}

	md := &metadata{}
	if err := xml.Unmarshal(buf.Bytes(), md); err != nil {
		return nil, fmt.Errorf("parsing %s from %s: %w", MetadataFileName, url, err)
	}
	return md, nil
}
