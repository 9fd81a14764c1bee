// Package layout turns a resume into an ordered list of draw operations on a
// single fixed-size page.
//
// The page is A4 portrait in millimetres. There is no automatic page break:
// the operations are replayed top to bottom by a backend and anything that
// runs past the bottom edge is clipped. Building a page is pure; it needs no
// fonts, files or PDF backend.
package layout

// Page geometry in millimetres.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	Margin     = 10.0
	CellWidth  = 200.0
)

// Text sizes in points and line heights in millimetres.
const (
	NameSize        = 16.0
	NameHeight      = 8.0
	TitleSize       = 10.0
	TitleHeight     = 5.0
	SectionSize     = 11.0
	SectionHeight   = 6.0
	BodySize        = 9.0
	BodyHeight      = 5.0
	HeaderGap       = 3.0
	ContactGap      = 1.0
	RuleStart       = 60.0
	RuleEnd         = 150.0
	BulletPrefix    = "- "
	FresherLine     = "Looking for opportunities as a fresher."
	QRSize          = 20.0
	QRBottomOffset  = 35.0
	QRGitHubX       = 10.0
	QRLinkedInX     = 40.0
	SlotKeyGitHub   = "github"
	SlotKeyLinkedIn = "linkedin"
)

// QR raster widths in pixels. fpdf orders embedded images by pixel width
// alone, so each slot gets a distinct width to keep the output byte-stable.
const (
	QRPixelsGitHub   = 240
	QRPixelsLinkedIn = 248
)

// OpKind identifies a draw operation.
type OpKind int

const (
	// OpText draws one full-width line of text and moves to the next line.
	OpText OpKind = iota
	// OpRule draws a horizontal line at the current vertical position.
	OpRule
	// OpGap advances the vertical position.
	OpGap
)

func (k OpKind) String() string {
	switch k {
	case OpText:
		return "text"
	case OpRule:
		return "rule"
	case OpGap:
		return "gap"
	}
	return "unknown"
}

// Role tells what a text line represents in the document.
type Role int

const (
	RoleNone Role = iota
	RoleName
	RoleTitle
	RoleContact
	RoleSection
	RoleEntry
	RoleProjectTitle
	RoleBullet
	RolePlaceholder
)

// Font style flags as understood by the PDF backend.
const (
	StyleRegular = ""
	StyleBold    = "B"
	StyleItalic  = "I"
)

// Alignment values as understood by the PDF backend.
const (
	AlignLeft   = "L"
	AlignCenter = "C"
)

// Op is a single draw operation. Which fields matter depends on Kind.
type Op struct {
	Kind OpKind
	Role Role

	// OpText
	Text  string
	Style string
	Size  float64
	Align string
	Color Color

	// OpText line height, OpGap height
	Height float64

	// OpRule
	X1, X2 float64
}

// ImageSlot is a fixed position reserved for a generated image, such as a
// QR code for a profile URL.
type ImageSlot struct {
	Key    string
	URL    string
	X, Y   float64
	W      float64
	Pixels int
}

// Page is the full set of draw operations for one document.
type Page struct {
	Width, Height float64
	Title         string
	Font          string
	Template      Template
	Ops           []Op
	Slots         []ImageSlot
}

// Lines returns the text of all text operations in draw order.
func (p Page) Lines() []string {
	var out []string
	for _, op := range p.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// LinesWithRole returns the text of the text operations with role r.
func (p Page) LinesWithRole(r Role) []string {
	var out []string
	for _, op := range p.Ops {
		if op.Kind == OpText && op.Role == r {
			out = append(out, op.Text)
		}
	}
	return out
}

// Slot returns the image slot with the given key.
func (p Page) Slot(key string) (ImageSlot, bool) {
	for _, s := range p.Slots {
		if s.Key == key {
			return s, true
		}
	}
	return ImageSlot{}, false
}
