package engine

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/drummonds/pdfstitch/engine/pdfrenderer"
)

// StackPages combines page images into a single canvas, stacked vertically
// in page order. The canvas is as wide as the widest page and as tall as
// all pages together; pixel data is copied unmodified, and rows not covered
// by a narrower page keep the white canvas fill.
func StackPages(pages []image.Image) (*image.NRGBA, error) {
	if len(pages) == 0 {
		return nil, pdfrenderer.ErrEmptyDocument
	}

	totalHeight := 0
	maxWidth := 0
	for _, img := range pages {
		bounds := img.Bounds()
		totalHeight += bounds.Dy()
		if bounds.Dx() > maxWidth {
			maxWidth = bounds.Dx()
		}
	}

	combined := imaging.New(maxWidth, totalHeight, color.White)

	currentY := 0
	for _, img := range pages {
		bounds := img.Bounds()
		target := image.Rect(0, currentY, bounds.Dx(), currentY+bounds.Dy())
		draw.Draw(combined, target, img, bounds.Min, draw.Src)
		currentY += bounds.Dy()
	}

	return combined, nil
}

// SaveImage writes the canvas to outputPath, choosing the encoder from the
// file extension (JPEG at the library default quality for the default
// output name). The image is encoded to a temporary file in the destination
// directory and renamed into place, so a failed save never replaces an
// existing output file with partial data.
func SaveImage(img image.Image, outputPath string) error {
	format, err := imaging.FormatFromFilename(outputPath)
	if err != nil {
		return &WriteError{Path: outputPath, Err: err}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(outputPath), ".pdfstitch-*")
	if err != nil {
		return &WriteError{Path: outputPath, Err: err}
	}
	tmpPath := tmpFile.Name()

	if err := imaging.Encode(tmpFile, img, format); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return &WriteError{Path: outputPath, Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: outputPath, Err: err}
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: outputPath, Err: err}
	}

	return nil
}
