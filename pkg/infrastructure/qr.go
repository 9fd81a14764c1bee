package infrastructure

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"resume-builder/internal/layout"
)

const defaultQRPixels = 256

// Asset is a generated image waiting to be embedded at its slot.
type Asset struct {
	Slot layout.ImageSlot
	Path string
}

// Remove deletes the asset's backing file. It is safe to call on a nil
// asset and more than once.
func (a *Asset) Remove() error {
	if a == nil || a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// QRGenerator writes QR codes for image slots as PNG files.
type QRGenerator struct {
	dir string
}

// NewQRGenerator returns a generator writing into dir, or into the system
// temp directory when dir is empty.
func NewQRGenerator(dir string) *QRGenerator {
	return &QRGenerator{dir: dir}
}

// Generate encodes slot.URL as a QR code and writes it to a file named
// after the slot key and renderID, so concurrent renders never share a
// path. An empty URL produces no asset and no error. The caller owns the
// returned asset and must Remove it.
func (g *QRGenerator) Generate(renderID string, slot layout.ImageSlot) (*Asset, error) {
	if slot.URL == "" {
		return nil, nil
	}

	code, err := qr.Encode(slot.URL, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: encode %s: %w", slot.Key, err)
	}
	px := slot.Pixels
	if px <= 0 {
		px = defaultQRPixels
	}
	scaled, err := barcode.Scale(code, px, px)
	if err != nil {
		return nil, fmt.Errorf("qr: scale %s: %w", slot.Key, err)
	}

	dir := g.dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("qr: asset dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("qr_%s_%s.png", slot.Key, renderID))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("qr: create %s: %w", path, err)
	}
	asset := &Asset{Slot: slot, Path: path}
	if err := png.Encode(f, scaled); err != nil {
		f.Close()
		_ = asset.Remove()
		return nil, fmt.Errorf("qr: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = asset.Remove()
		return nil, fmt.Errorf("qr: close %s: %w", path, err)
	}
	return asset, nil
}
