package engine

import (
	"github.com/ledongthuc/pdf"

	"github.com/drummonds/pdfstitch/engine/pdfrenderer"
)

// extractTextFromFile pulls the embedded text layer out of a PDF. Pages
// whose text cannot be decoded are skipped with a warning rather than
// failing the whole document.
func extractTextFromFile(path string) (string, error) {
	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return "", &pdfrenderer.DocumentOpenError{Path: path, Err: err}
	}
	defer f.Close()

	totalPages := pdfReader.NumPage()
	var fullText string

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			Logger.Warn("Failed to extract text from page", "page", pageNum, "error", err)
			continue
		}

		fullText += text
	}

	return fullText, nil
}
