// Package maven talks to a Maven-layout repository over HTTP: authenticated
// GETs, maven-metadata.xml resolution, and artifact URL construction.
package maven

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/mvnget/mvnget/pkg/buildinfo"
	"github.com/mvnget/mvnget/pkg/config"
)

// Client issues GET requests against a single repository. Every request
// carries the fixed User-Agent and, when both credentials are configured,
// an HTTP Basic Authorization header. Requests are never retried.
type Client struct {
	BaseURL    string
	Username   string
	Password   string
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient builds a client for the given repository. A trailing slash on
// the base URL is stripped.
func NewClient(repo config.Repository) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(repo.URL, "/"),
		Username:   repo.Username,
		Password:   repo.Password,
		UserAgent:  buildinfo.UserAgent(),
		HTTPClient: http.DefaultClient,
	}
}

// Get fetches url fully into memory. Suitable for metadata documents and
// checksum sidecars; use Stream for artifact content.
func (c *Client) Get(ctx context.Context, url, failmsg string) (*bytes.Buffer, error) {
	body, _, err := c.Stream(ctx, url, failmsg)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, body); err != nil {
		return nil, &TransportError{URL: url, Message: failmsg, Err: err}
	}
	return buf, nil
}

// Stream issues the GET and hands the response body to the caller along
// with the content length (-1 when unknown). The caller must close the
// body. Any transport failure or non-200 status is wrapped in a
// TransportError carrying failmsg.
func (c *Client) Stream(ctx context.Context, url, failmsg string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, &TransportError{URL: url, Message: failmsg, Err: err}
	}

	req.Header.Set("User-Agent", c.UserAgent)
	if c.Username != "" && c.Password != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, &TransportError{URL: url, Message: failmsg, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, &TransportError{URL: url, Message: failmsg, StatusCode: resp.StatusCode}
	}

	return resp.Body, resp.ContentLength, nil
}
