package engine

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

// fetchDocument performs a single HTTP GET and stores the response body as
// a scratch file, returning its path. The caller owns the returned file.
// There are no retries and no redirect customization beyond the client
// defaults; a non-200 status fails with DownloadError and network failures
// with TransportError. No file is left behind when an error is returned.
func (e *Engine) fetchDocument(url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := os.MkdirAll(e.ServerConfig.ScratchPath, 0755); err != nil {
		return "", fmt.Errorf("unable to create scratch directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(e.ServerConfig.ScratchPath, "pdfstitch-*.pdf")
	if err != nil {
		return "", fmt.Errorf("unable to create temporary download file: %w", err)
	}
	tmpPath := tmpFile.Name()

	written, err := io.Copy(tmpFile, resp.Body)
	if err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", &TransportError{URL: url, Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("unable to finish writing download: %w", err)
	}

	Logger.Debug("Downloaded document", "url", url, "path", tmpPath, "bytes", written)
	return tmpPath, nil
}
