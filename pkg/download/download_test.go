package download

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvnget/mvnget/pkg/config"
	"github.com/mvnget/mvnget/pkg/coordinate"
	"github.com/mvnget/mvnget/pkg/maven"
)

// repoServer simulates a Maven-layout repository serving a fixed set of
// paths and recording every request it receives.
type repoServer struct {
	mu       sync.Mutex
	requests []string
	files    map[string]string

	*httptest.Server
}

func newRepoServer(t *testing.T, files map[string]string) *repoServer {
	t.Helper()

	rs := &repoServer{files: files}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.requests = append(rs.requests, r.URL.Path)
		rs.mu.Unlock()

		body, ok := rs.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *repoServer) requestCount() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.requests)
}

func (rs *repoServer) engine() *Engine {
	return &Engine{Client: maven.NewClient(config.Repository{URL: rs.URL})}
}

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestDownloadToDirectory(t *testing.T) {
	const content = "maven distribution bytes"
	rs := newRepoServer(t, map[string]string{
		"/org/apache/maven/maven/3.2.1/maven-3.2.1.jar": content,
	})

	dir := t.TempDir()
	c, err := coordinate.Parse("org.apache.maven:maven:3.2.1")
	require.NoError(t, err)

	outcome, err := rs.engine().Download(context.Background(), c, dir)
	require.NoError(t, err)

	assert.True(t, outcome.Changed)
	assert.Equal(t, rs.URL+"/org/apache/maven/maven/3.2.1/maven-3.2.1.jar", outcome.URL)
	assert.Equal(t, filepath.Join(dir, "maven.jar"), outcome.Path)
	assert.Equal(t, "org.apache.maven:maven:3.2.1", outcome.Name)
	assert.Equal(t, "3.2.1", outcome.Version)

	data, err := os.ReadFile(outcome.Path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestDownloadResolvesLatestVersion(t *testing.T) {
	rs := newRepoServer(t, map[string]string{
		"/g/a/maven-metadata.xml": `<metadata><versioning><versions>
			<version>1.0</version><version>1.1</version><version>2.0</version>
		</versions></versioning></metadata>`,
		"/g/a/2.0/a-2.0.jar": "latest bytes",
	})

	c, err := coordinate.Parse("g:a")
	require.NoError(t, err)

	outcome, err := rs.engine().Download(context.Background(), c, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "2.0", outcome.Version)
	assert.Equal(t, rs.URL+"/g/a/2.0/a-2.0.jar", outcome.URL)
	assert.True(t, outcome.Changed)

	// The requested coordinate is untouched; resolution produced a new value.
	assert.Empty(t, c.Version)
}

func TestDownloadSnapshot(t *testing.T) {
	rs := newRepoServer(t, map[string]string{
		"/g/a/1.0-SNAPSHOT/maven-metadata.xml": `<metadata><versioning><snapshotVersions>
			<snapshotVersion><extension>pom</extension><value>1.0-20230101.120000-1</value></snapshotVersion>
			<snapshotVersion><extension>jar</extension><value>1.0-20230101.120000-1</value></snapshotVersion>
		</snapshotVersions></versioning></metadata>`,
		"/g/a/1.0-SNAPSHOT/a-1.0-20230101.120000-1.jar": "snapshot bytes",
	})

	c, err := coordinate.Parse("g:a:1.0-SNAPSHOT")
	require.NoError(t, err)

	outcome, err := rs.engine().Download(context.Background(), c, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, rs.URL+"/g/a/1.0-SNAPSHOT/a-1.0-20230101.120000-1.jar", outcome.URL)
	// The coordinate version stays 1.0-SNAPSHOT; only the filename carries
	// the timestamp.
	assert.Equal(t, "1.0-SNAPSHOT", outcome.Version)
}

func TestDownloadUnchangedWhenChecksumMatches(t *testing.T) {
	const content = "stable artifact"
	rs := newRepoServer(t, map[string]string{
		"/g/a/1.0/a-1.0.jar":     content,
		"/g/a/1.0/a-1.0.jar.md5": md5hex(content),
	})

	dest := filepath.Join(t.TempDir(), "a.jar")
	require.NoError(t, os.WriteFile(dest, []byte(content), 0o644))
	before, err := os.Stat(dest)
	require.NoError(t, err)

	c, err := coordinate.Parse("g:a:1.0")
	require.NoError(t, err)

	outcome, err := rs.engine().Download(context.Background(), c, dest)
	require.NoError(t, err)

	assert.False(t, outcome.Changed)
	assert.Equal(t, []string{"/g/a/1.0/a-1.0.jar.md5"}, rs.requests,
		"only the checksum sidecar should be fetched")

	after, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "file must not be rewritten")
}

func TestDownloadReplacesStaleFile(t *testing.T) {
	const content = "new artifact bytes"
	rs := newRepoServer(t, map[string]string{
		"/g/a/1.0/a-1.0.jar":     content,
		"/g/a/1.0/a-1.0.jar.md5": md5hex(content),
	})

	dest := filepath.Join(t.TempDir(), "a.jar")
	require.NoError(t, os.WriteFile(dest, []byte("old artifact bytes"), 0o644))

	c, err := coordinate.Parse("g:a:1.0")
	require.NoError(t, err)

	outcome, err := rs.engine().Download(context.Background(), c, dest)
	require.NoError(t, err)

	assert.True(t, outcome.Changed)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestDownloadDryRun(t *testing.T) {
	rs := newRepoServer(t, map[string]string{
		"/g/a/1.0/a-1.0.jar": "artifact bytes",
	})

	dest := filepath.Join(t.TempDir(), "a.jar")
	c, err := coordinate.Parse("g:a:1.0")
	require.NoError(t, err)

	eng := rs.engine()
	eng.DryRun = true

	outcome, err := eng.Download(context.Background(), c, dest)
	require.NoError(t, err)

	assert.True(t, outcome.Changed)
	assert.Equal(t, []string{"/g/a/1.0/a-1.0.jar"}, rs.requests,
		"dry run still fetches the artifact")

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "dry run must not write the destination")
}

func TestDownloadMissingParentDirectory(t *testing.T) {
	rs := newRepoServer(t, nil)

	dest := filepath.Join(t.TempDir(), "no", "such", "dir", "a.jar")
	c, err := coordinate.Parse("g:a:1.0")
	require.NoError(t, err)

	_, err = rs.engine().Download(context.Background(), c, dest)

	var de *DestinationError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, dest, de.Path)
	assert.Zero(t, rs.requestCount(), "destination check must run before any network access")
}

func TestDownloadIdempotent(t *testing.T) {
	const content = "idempotent bytes"
	rs := newRepoServer(t, map[string]string{
		"/g/a/1.0/a-1.0.jar":     content,
		"/g/a/1.0/a-1.0.jar.md5": md5hex(content),
	})

	dest := filepath.Join(t.TempDir(), "a.jar")
	c, err := coordinate.Parse("g:a:1.0")
	require.NoError(t, err)
	eng := rs.engine()

	first, err := eng.Download(context.Background(), c, dest)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	second, err := eng.Download(context.Background(), c, dest)
	require.NoError(t, err)
	assert.False(t, second.Changed)
}

func TestDownloadNotFound(t *testing.T) {
	rs := newRepoServer(t, nil)

	dest := filepath.Join(t.TempDir(), "a.jar")
	c, err := coordinate.Parse("g:a:1.0")
	require.NoError(t, err)

	_, err = rs.engine().Download(context.Background(), c, dest)

	var te *maven.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusNotFound, te.StatusCode)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "failed download must leave nothing behind")
}
