package maven

import (
	"fmt"
	"net/http"
)

// NotFoundError reports that no artifact (or metadata entry) matched the
// requested coordinate.
type NotFoundError struct {
	Coordinate string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("artifact %s not found", e.Coordinate)
}

// TransportError wraps a failed repository request with the URL and a
// caller-supplied context message. StatusCode is set when the server
// answered with a non-200 status; Err carries the underlying cause for
// network-level failures.
type TransportError struct {
	URL        string
	Message    string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Message, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %s: unexpected status %d", e.Message, e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// notFound reports whether the server answered 404, which callers map to a
// NotFoundError for missing metadata documents.
func (e *TransportError) notFound() bool {
	return e.StatusCode == http.StatusNotFound
}
