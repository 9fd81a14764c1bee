package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"resume-builder/internal/layout"
)

// fixedDate is stamped into every document so identical inputs produce
// identical bytes.
var fixedDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// RendererOption configures an FpdfRenderer.
type RendererOption func(*FpdfRenderer)

// WithCompression toggles stream compression. Uncompressed output is
// larger but readable with plain byte searches.
func WithCompression(compress bool) RendererOption {
	return func(r *FpdfRenderer) {
		r.compress = compress
	}
}

// WithCreationDate overrides the creation and modification dates written
// into the document info dictionary.
func WithCreationDate(t time.Time) RendererOption {
	return func(r *FpdfRenderer) {
		if !t.IsZero() {
			r.created = t
		}
	}
}

// FpdfRenderer replays layout pages onto a single A4 fpdf document.
type FpdfRenderer struct {
	compress bool
	created  time.Time
}

func NewFpdfRenderer(opts ...RendererOption) *FpdfRenderer {
	r := &FpdfRenderer{compress: true, created: fixedDate}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rendered is the serialized document and any non-fatal problems met while
// embedding images.
type Rendered struct {
	PDF      []byte
	Warnings []string
}

// Render draws page and the given assets and returns the PDF bytes.
// An image that cannot be embedded is skipped with a warning; any other
// backend error fails the render.
func (r *FpdfRenderer) Render(ctx context.Context, page layout.Page, assets []*Asset) (*Rendered, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(r.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(r.created)
	pdf.SetModificationDate(r.created)
	pdf.SetCreator("resume-builder", false)
	if page.Title != "" {
		pdf.SetTitle(page.Title, true)
	}
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	family := page.Font
	if family == "" {
		family = layout.DefaultFont
	}

	for _, op := range page.Ops {
		switch op.Kind {
		case layout.OpText:
			pdf.SetFont(family, op.Style, op.Size)
			pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
			pdf.CellFormat(layout.CellWidth, op.Height, tr(op.Text), "", 1, op.Align, false, 0, "")
		case layout.OpRule:
			y := pdf.GetY()
			pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
			pdf.Line(op.X1, y, op.X2, y)
			pdf.SetDrawColor(0, 0, 0)
		case layout.OpGap:
			pdf.Ln(op.Height)
		}
	}
	pdf.SetTextColor(0, 0, 0)
	if pdf.Err() {
		return nil, fmt.Errorf("fpdf: %w", pdf.Error())
	}

	var warnings []string
	for _, a := range assets {
		if a == nil {
			continue
		}
		if err := embedImage(pdf, a); err != nil {
			warnings = append(warnings, fmt.Sprintf("Error handling QR code for %s: %v", a.Slot.Key, err))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("fpdf: output: %w", err)
	}
	return &Rendered{PDF: buf.Bytes(), Warnings: warnings}, nil
}

// embedImage places a PNG asset at its slot. The image is registered under
// the slot key rather than the file path so that temp-file names never
// influence the output. A failure leaves the document usable.
func embedImage(pdf *fpdf.Fpdf, a *Asset) error {
	f, err := os.Open(a.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	name := "qr-" + a.Slot.Key
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, f)
	if pdf.Err() {
		err := pdf.Error()
		pdf.ClearError()
		return err
	}
	pdf.ImageOptions(name, a.Slot.X, a.Slot.Y, a.Slot.W, 0, false, opts, 0, "")
	if pdf.Err() {
		err := pdf.Error()
		pdf.ClearError()
		return err
	}
	return nil
}
