package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"cv-screener/internal/contextutil"
)

// ErrExtraction is returned when a document cannot be parsed.
var ErrExtraction = errors.New("text extraction failed")

// Extractor turns raw document bytes into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, data []byte) (string, error)

// ExtractText calls f.
func (f ExtractorFunc) ExtractText(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

// PDFExtractor extracts the text layer of a PDF page by page.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText returns the text of every page joined by blank lines.
// Scanned PDFs without a text layer yield an empty string, not an error.
func (e *PDFExtractor) ExtractText(ctx context.Context, data []byte) (text string, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: malformed pdf: %v", ErrExtraction, r)
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	numPages := pdfReader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrExtraction, i, err)
		}
		if pageText = Normalize(pageText); pageText != "" {
			pages = append(pages, pageText)
		}
	}

	text = strings.Join(pages, "\n\n")
	logger.DebugContext(ctx, "pdf text extracted", "pages", numPages, "chars", len(text))
	return text, nil
}

// Normalize drops NUL bytes, replaces invalid UTF-8 and trims surrounding space.
func Normalize(s string) string {
	s = strings.ToValidUTF8(s, "�")
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}
