package engine

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/drummonds/pdfstitch/config"
	"github.com/drummonds/pdfstitch/engine/pdfrenderer"
)

// Logger is global since we will need it everywhere
var Logger *slog.Logger = slog.Default()

// SourceKind classifies the pipeline input string.
type SourceKind int

const (
	// SourceLocalFile is a path on the local filesystem.
	SourceLocalFile SourceKind = iota
	// SourceURL is a remote document fetched over HTTP.
	SourceURL
)

// ClassifySource decides whether the input names a remote document or a
// local file. Only explicit http:// and https:// prefixes count as URLs;
// everything else is treated as a path.
func ClassifySource(input string) SourceKind {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return SourceURL
	}
	return SourceLocalFile
}

// resolvedSource is a local path ready for rendering. owned marks paths
// created by the fetcher; only those are removed during cleanup, never a
// user-supplied path.
type resolvedSource struct {
	path  string
	owned bool
}

// Engine runs the fetch, render and stitch pipeline.
type Engine struct {
	Renderer     pdfrenderer.Renderer
	HTTPClient   *http.Client
	ServerConfig config.ServerConfig
}

// NewEngine wires an Engine from configuration. The HTTP client carries the
// configured download timeout; zero keeps the client default of no timeout.
func NewEngine(renderer pdfrenderer.Renderer, serverConfig config.ServerConfig) *Engine {
	return &Engine{
		Renderer:     renderer,
		HTTPClient:   &http.Client{Timeout: serverConfig.DownloadTimeout()},
		ServerConfig: serverConfig,
	}
}

// RunResult summarizes one completed pipeline run.
type RunResult struct {
	JobID      string
	Source     string
	LocalPath  string
	OutputPath string
	PageCount  int
	Width      int
	Height     int
	Downloaded bool
}

// Run executes the pipeline for one source: fetch when the source is a URL,
// render every page at the given scale factor, stack the pages vertically
// and write the combined image to outputPath. A downloaded document is
// removed once the run finishes, whether it succeeded or not.
func (e *Engine) Run(source, outputPath string, scale float64) (*RunResult, error) {
	jobID := ulid.Make().String()

	resolved, err := e.resolveSource(source, jobID)
	if err != nil {
		return nil, err
	}
	if resolved.owned {
		defer func() {
			if removeErr := os.Remove(resolved.path); removeErr != nil {
				Logger.Warn("Failed to remove downloaded document", "job", jobID, "path", resolved.path, "error", removeErr)
			}
		}()
	}

	Logger.Info("Rendering document", "job", jobID, "path", resolved.path, "scale", scale)
	pages, err := e.Renderer.RenderPDF(resolved.path, scale)
	if err != nil {
		return nil, err
	}

	combined, err := StackPages(pages)
	if err != nil {
		return nil, err
	}

	if err := SaveImage(combined, outputPath); err != nil {
		return nil, err
	}

	bounds := combined.Bounds()
	Logger.Info("Combined image written", "job", jobID, "output", outputPath,
		"pages", len(pages), "width", bounds.Dx(), "height", bounds.Dy())

	return &RunResult{
		JobID:      jobID,
		Source:     source,
		LocalPath:  resolved.path,
		OutputPath: outputPath,
		PageCount:  len(pages),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Downloaded: resolved.owned,
	}, nil
}

// ExtractText returns the embedded text layer of the document, fetching it
// first when the source is a URL. Cleanup follows the same ownership rule
// as Run.
func (e *Engine) ExtractText(source string) (string, error) {
	jobID := ulid.Make().String()

	resolved, err := e.resolveSource(source, jobID)
	if err != nil {
		return "", err
	}
	if resolved.owned {
		defer func() {
			if removeErr := os.Remove(resolved.path); removeErr != nil {
				Logger.Warn("Failed to remove downloaded document", "job", jobID, "path", resolved.path, "error", removeErr)
			}
		}()
	}

	return extractTextFromFile(resolved.path)
}

// resolveSource turns the input into a local path, downloading it first
// when it names a remote document.
func (e *Engine) resolveSource(source, jobID string) (resolvedSource, error) {
	if ClassifySource(source) == SourceURL {
		Logger.Info("Downloading document", "job", jobID, "url", source)
		localPath, err := e.fetchDocument(source)
		if err != nil {
			return resolvedSource{}, err
		}
		return resolvedSource{path: localPath, owned: true}, nil
	}
	return resolvedSource{path: source, owned: false}, nil
}
