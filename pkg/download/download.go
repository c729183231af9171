// Package download orchestrates the retrieval of a single artifact: version
// resolution, URL construction, checksum comparison against the remote
// sidecar, and the conditional transfer to the destination file.
package download

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvnget/mvnget/pkg/coordinate"
	"github.com/mvnget/mvnget/pkg/maven"
)

const (
	// checksumSuffix names the sidecar resource holding the artifact's hex
	// digest, published next to the artifact itself.
	checksumSuffix = ".md5"

	tmpSuffix = ".tmp"
)

// DestinationError reports an unusable destination path.
type DestinationError struct {
	Path string
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("destination directory %s does not exist", e.Path)
}

// Outcome is the result returned to the caller for status reporting.
type Outcome struct {
	Changed    bool   `json:"changed"`
	URL        string `json:"url"`
	Path       string `json:"path"`
	Name       string `json:"name"`
	Group      string `json:"group"`
	Artifact   string `json:"artifact"`
	Version    string `json:"version"`
	Classifier string `json:"classifier,omitempty"`
	Extension  string `json:"extension"`
}

// Engine downloads one artifact per call. Each call is fully synchronous
// and independent; calls targeting different destinations may run
// concurrently, but two calls writing the same destination race.
type Engine struct {
	Client *maven.Client

	// DryRun consumes the remote response body without writing, preserving
	// the fetch cost while leaving the filesystem untouched.
	DryRun bool

	// ProgressOut, when non-nil, receives a progress bar during content
	// transfer (typically os.Stderr from the CLI).
	ProgressOut io.Writer
}

// Download resolves the coordinate as needed, compares checksums, and
// transfers the artifact to dest. When dest is a directory the filename is
// derived from the coordinate. The returned outcome reports whether bytes
// were (or, in dry-run, would have been) transferred.
func (e *Engine) Download(ctx context.Context, c coordinate.Coordinate, dest string) (*Outcome, error) {
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, c.FileName())
	} else if parent, err := os.Stat(filepath.Dir(dest)); err != nil || !parent.IsDir() {
		return nil, &DestinationError{Path: dest}
	}

	resolver := &maven.Resolver{Client: e.Client}

	if c.Version == "" {
		version, err := resolver.LatestVersion(ctx, c)
		if err != nil {
			return nil, err
		}
		c = c.WithVersion(version)
	}

	var timestamped string
	if c.IsSnapshot() {
		var err error
		timestamped, err = resolver.SnapshotVersion(ctx, c)
		if err != nil {
			return nil, err
		}
	}

	url, err := maven.ArtifactURL(e.Client.BaseURL, c, timestamped)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		URL:        url,
		Path:       dest,
		Name:       c.String(),
		Group:      c.Group,
		Artifact:   c.Artifact,
		Version:    c.Version,
		Classifier: c.Classifier,
		Extension:  c.Extension,
	}

	same, err := e.matchesRemoteChecksum(ctx, dest, url+checksumSuffix)
	if err != nil {
		return nil, err
	}
	if same {
		return outcome, nil
	}

	if err := e.transfer(ctx, c, url, dest); err != nil {
		return nil, err
	}
	outcome.Changed = true
	return outcome, nil
}

// matchesRemoteChecksum reports whether the local file already carries the
// artifact bytes, comparing its md5 digest against the remote sidecar. When
// the local file does not exist the sidecar is not fetched at all.
func (e *Engine) matchesRemoteChecksum(ctx context.Context, path, checksumURL string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}

	local, err := fileMD5(path)
	if err != nil {
		return false, fmt.Errorf("hashing %s: %w", path, err)
	}

	remote, err := e.Client.Get(ctx, checksumURL, "failed to download MD5")
	if err != nil {
		return false, err
	}

	return local == remote.String(), nil
}

// transfer streams the artifact to dest via a temporary file so a failed
// download never leaves a partial destination behind. Dry-run consumes the
// body without touching the filesystem.
func (e *Engine) transfer(ctx context.Context, c coordinate.Coordinate, url, dest string) error {
	body, size, err := e.Client.Stream(ctx, url, fmt.Sprintf("failed to download artifact %s", c))
	if err != nil {
		return err
	}
	defer body.Close()

	if e.DryRun {
		if _, err := io.Copy(io.Discard, body); err != nil {
			return fmt.Errorf("reading artifact %s: %w", c, err)
		}
		return nil
	}

	tmp := dest + tmpSuffix
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	var w io.Writer = f
	if e.ProgressOut != nil {
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(e.ProgressOut),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetDescription(c.FileName()),
			progressbar.OptionThrottle(80*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		w = io.MultiWriter(f, bar)
	}

	if _, err := io.Copy(w, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("moving artifact into place: %w", err)
	}
	return nil
}

// fileMD5 returns the lowercase hex md5 digest of the file at path.
func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
