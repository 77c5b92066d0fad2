package pdfextract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// maxPDFBytes caps how much of a remote PDF the extractor will buffer.
// Scraped URLs are untrusted input; anything bigger is rejected, not truncated.
const maxPDFBytes = 20 << 20 // 20 MB

// ExtractText extracts plain text from the PDF read from r. The content
// extractor feeds it bodies served with an application/pdf content type.
// Returns empty string and nil error if the PDF has no extractable text.
func ExtractText(r io.Reader) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxPDFBytes+1))
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", nil
	}
	if len(b) > maxPDFBytes {
		return "", fmt.Errorf("pdf exceeds %d byte limit", maxPDFBytes)
	}
	readerAt := bytes.NewReader(b)
	pdfReader, err := pdf.NewReader(readerAt, int64(len(b)))
	if err != nil {
		return "", err
	}
	plainReader, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
