// Package pdftext reads back the text of generated documents.
package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is the extracted text of a PDF, one entry per page.
type Document struct {
	Pages []string
}

// Text returns all pages joined in order.
func (d *Document) Text() string {
	return strings.Join(d.Pages, "")
}

// Lines returns every non-blank line of the document, trimmed.
func (d *Document) Lines() []string {
	var out []string
	for _, page := range d.Pages {
		for _, line := range strings.Split(page, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

// Extract parses data as a PDF and returns its plain text.
func Extract(data []byte) (*Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	doc := &Document{}
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		doc.Pages = append(doc.Pages, text)
	}
	return doc, nil
}

// ExtractFile reads and extracts the PDF at path.
func ExtractFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(data)
}
