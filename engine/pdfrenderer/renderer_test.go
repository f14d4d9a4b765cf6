package pdfrenderer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// createSimpleTestPDF creates a minimal valid PDF file with specified text for testing
func createSimpleTestPDF(path string, text string) error {
	// This is a minimal valid PDF structure with embedded text
	pdfContent := `%PDF-1.4
1 0 obj
<<
/Type /Catalog
/Pages 2 0 R
>>
endobj
2 0 obj
<<
/Type /Pages
/Kids [3 0 R]
/Count 1
>>
endobj
3 0 obj
<<
/Type /Page
/Parent 2 0 R
/MediaBox [0 0 612 792]
/Contents 4 0 R
/Resources <<
/Font <<
/F1 5 0 R
>>
>>
>>
endobj
4 0 obj
<<
/Length 44
>>
stream
BT
/F1 12 Tf
100 700 Td
(` + text + `) Tj
ET
endstream
endobj
5 0 obj
<<
/Type /Font
/Subtype /Type1
/BaseFont /Helvetica
>>
endobj
xref
0 6
0000000000 65535 f
0000000009 00000 n
0000000058 00000 n
0000000115 00000 n
0000000262 00000 n
0000000356 00000 n
trailer
<<
/Size 6
/Root 1 0 R
>>
startxref
444
%%EOF`

	return os.WriteFile(path, []byte(pdfContent), 0644)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestNewRendererUnknownBackend(t *testing.T) {
	if _, err := NewRenderer("ghostscript"); err == nil {
		t.Error("Expected an error for an unknown backend")
	}
}

func TestNewRendererDefaultsToFitz(t *testing.T) {
	renderer, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer renderer.Close()

	if _, ok := renderer.(*FitzRenderer); !ok {
		t.Errorf("Expected FitzRenderer for an empty backend name, got %T", renderer)
	}
}

func TestDpiForScale(t *testing.T) {
	cases := []struct {
		scale float64
		want  float64
	}{
		{1.0, 72.0},
		{2.0, 144.0},
		{2.5, 180.0},
		{0, 144.0},
		{-3, 144.0},
	}
	for _, tc := range cases {
		if got := dpiForScale(tc.scale); got != tc.want {
			t.Errorf("dpiForScale(%v) = %v, want %v", tc.scale, got, tc.want)
		}
	}
}

func TestFitzRenderScaleDimensions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MuPDF integration test in short mode")
	}

	pdfPath := filepath.Join(t.TempDir(), "single_page.pdf")
	if err := createSimpleTestPDF(pdfPath, "Test Document"); err != nil {
		t.Fatalf("Failed to create test PDF: %v", err)
	}

	renderer, err := NewFitzRenderer()
	if err != nil {
		t.Fatalf("NewFitzRenderer failed: %v", err)
	}
	defer renderer.Close()

	pages, err := renderer.RenderPDF(pdfPath, 1.0)
	if err != nil {
		t.Fatalf("RenderPDF failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(pages))
	}

	// MediaBox is 612x792 points, so scale 1.0 renders at 72 DPI
	bounds := pages[0].Bounds()
	if abs(bounds.Dx()-612) > 2 || abs(bounds.Dy()-792) > 2 {
		t.Errorf("Expected roughly 612x792 at scale 1.0, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	doublePages, err := renderer.RenderPDF(pdfPath, 2.0)
	if err != nil {
		t.Fatalf("RenderPDF at scale 2.0 failed: %v", err)
	}
	doubleBounds := doublePages[0].Bounds()
	if abs(doubleBounds.Dx()-2*bounds.Dx()) > 4 || abs(doubleBounds.Dy()-2*bounds.Dy()) > 4 {
		t.Errorf("Expected dimensions to double at scale 2.0, got %dx%d from %dx%d",
			doubleBounds.Dx(), doubleBounds.Dy(), bounds.Dx(), bounds.Dy())
	}
}

func TestFitzRenderMissingFile(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MuPDF integration test in short mode")
	}

	renderer, err := NewFitzRenderer()
	if err != nil {
		t.Fatalf("NewFitzRenderer failed: %v", err)
	}
	defer renderer.Close()

	_, err = renderer.RenderPDF(filepath.Join(t.TempDir(), "missing.pdf"), 1.0)
	var openErr *DocumentOpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("Expected DocumentOpenError for a missing file, got %v", err)
	}
}

func TestFitzRenderGarbageFile(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MuPDF integration test in short mode")
	}

	pdfPath := filepath.Join(t.TempDir(), "garbage.pdf")
	if err := os.WriteFile(pdfPath, []byte("this is not a pdf"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	renderer, err := NewFitzRenderer()
	if err != nil {
		t.Fatalf("NewFitzRenderer failed: %v", err)
	}
	defer renderer.Close()

	_, err = renderer.RenderPDF(pdfPath, 1.0)
	var openErr *DocumentOpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("Expected DocumentOpenError for garbage input, got %v", err)
	}
}
