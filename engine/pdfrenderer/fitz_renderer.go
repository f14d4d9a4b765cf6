package pdfrenderer

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzRenderer implements PDF rendering using go-fitz (requires CGo and MuPDF)
type FitzRenderer struct {
}

// NewFitzRenderer creates a new Fitz-based PDF renderer
func NewFitzRenderer() (*FitzRenderer, error) {
	return &FitzRenderer{}, nil
}

// RenderPDF converts all pages of a PDF file to images using go-fitz
func (r *FitzRenderer) RenderPDF(filename string, scale float64) ([]image.Image, error) {
	// Open PDF document using go-fitz
	doc, err := fitz.New(filename)
	if err != nil {
		return nil, &DocumentOpenError{Path: filename, Err: err}
	}
	defer doc.Close()

	numPages := doc.NumPage()
	if numPages == 0 {
		return nil, ErrEmptyDocument
	}

	dpi := dpiForScale(scale)

	var images []image.Image

	// Convert each page to image in document order
	for pageNum := 0; pageNum < numPages; pageNum++ {
		img, err := doc.ImageDPI(pageNum, dpi)
		if err != nil {
			return nil, fmt.Errorf("unable to render page %d: %w", pageNum, err)
		}
		images = append(images, img)
	}

	return images, nil
}

// Close cleans up resources (no-op for Fitz renderer as doc is closed per-render)
func (r *FitzRenderer) Close() error {
	return nil
}
