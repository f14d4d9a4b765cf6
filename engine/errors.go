package engine

import "fmt"

// TransportError reports a network-level failure (DNS, connection refused,
// timeout, truncated body) while fetching a document.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to reach %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DownloadError reports a response with a non-success HTTP status code.
type DownloadError struct {
	URL        string
	StatusCode int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download PDF: HTTP %d from %s", e.StatusCode, e.URL)
}

// WriteError reports a failure writing the combined image to disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write image %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
