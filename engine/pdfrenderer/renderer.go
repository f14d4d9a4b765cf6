package pdfrenderer

import (
	"errors"
	"fmt"
	"image"
)

// DefaultScale is the render scale applied when the caller passes a
// non-positive value. Scale multiplies the 72 DPI base resolution of the
// document on both axes.
const DefaultScale = 2.0

const baseDPI = 72.0

// Renderer backends selectable via configuration.
const (
	BackendFitz   = "fitz"
	BackendPDFium = "pdfium"
)

// Renderer defines the interface for PDF to image conversion
type Renderer interface {
	// RenderPDF converts all pages of a PDF file to images at the given
	// scale factor. Returns a slice of images, one per page, in document
	// page order.
	RenderPDF(filename string, scale float64) ([]image.Image, error)

	// Close cleans up any resources used by the renderer
	Close() error
}

// DocumentOpenError reports a path that could not be opened or parsed as a
// PDF document.
type DocumentOpenError struct {
	Path string
	Err  error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("unable to open PDF document %s: %v", e.Path, e.Err)
}

func (e *DocumentOpenError) Unwrap() error { return e.Err }

// ErrEmptyDocument is returned when a document contains zero pages.
var ErrEmptyDocument = errors.New("PDF has no pages")

// NewRenderer creates the renderer for the named backend. The default is
// the Fitz (MuPDF) backend; "pdfium" selects the WebAssembly PDFium
// backend, which needs no CGo.
func NewRenderer(backend string) (Renderer, error) {
	switch backend {
	case BackendPDFium:
		return NewPDFiumRenderer()
	case BackendFitz, "":
		return NewFitzRenderer()
	default:
		return nil, fmt.Errorf("unknown renderer backend %q", backend)
	}
}

func dpiForScale(scale float64) float64 {
	if scale <= 0 {
		scale = DefaultScale
	}
	return baseDPI * scale
}
