package infrastructure

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFilename is used when the caller gives no filename.
const DefaultFilename = "resume"

// ExportError reports an I/O failure while writing a document. It wraps the
// underlying error and records the operation and path involved.
type ExportError struct {
	Op   string // "mkdir", "create", "write", "close"
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Destination selects where an exported document is written. With an empty
// Dir the document goes to a fresh temporary file.
type Destination struct {
	Dir      string
	Filename string
}

// Exported describes a written document.
type Exported struct {
	Path     string
	Filename string
	Size     int64
	PDF      []byte
}

// DataURI returns the document as a base64 data URI suitable for a direct
// download link.
func (e *Exported) DataURI() string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(e.PDF)
}

// FileExporter writes PDF bytes to disk.
type FileExporter struct {
	tempDir string
}

// NewFileExporter returns an exporter whose temporary files are created in
// tempDir, or in the system temp directory when tempDir is empty.
func NewFileExporter(tempDir string) *FileExporter {
	return &FileExporter{tempDir: tempDir}
}

// SanitizeFilename reduces name to a bare file name ending in ".pdf".
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, ".pdf")
	if name == "" || name == "." || name == "/" || name == ".." {
		name = DefaultFilename
	}
	return name + ".pdf"
}

// Export writes pdf to dst and returns where it went. The target directory
// is created if needed.
func (x *FileExporter) Export(pdf []byte, dst Destination) (*Exported, error) {
	filename := SanitizeFilename(dst.Filename)

	if dst.Dir != "" {
		if err := os.MkdirAll(dst.Dir, 0o755); err != nil {
			return nil, &ExportError{Op: "mkdir", Path: dst.Dir, Err: err}
		}
		path := filepath.Join(dst.Dir, filename)
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return nil, &ExportError{Op: "write", Path: path, Err: err}
		}
		return &Exported{Path: path, Filename: filename, Size: int64(len(pdf)), PDF: pdf}, nil
	}

	f, err := os.CreateTemp(x.tempDir, "resume-*.pdf")
	if err != nil {
		return nil, &ExportError{Op: "create", Path: x.tempDir, Err: err}
	}
	if _, err := f.Write(pdf); err != nil {
		f.Close()
		return nil, &ExportError{Op: "write", Path: f.Name(), Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &ExportError{Op: "close", Path: f.Name(), Err: err}
	}
	return &Exported{Path: f.Name(), Filename: filename, Size: int64(len(pdf)), PDF: pdf}, nil
}
