package layout

import "strings"

// DefaultFont is the universal family used when a requested family is not
// available in the rendering backend.
const DefaultFont = "Arial"

// availableFonts maps lower-cased family names to the names handed to the
// PDF backend. Only the standard PDF core families are listed, so no font
// files are needed at render time.
var availableFonts = map[string]string{
	"arial":     "Arial",
	"helvetica": "Helvetica",
	"times":     "Times",
	"courier":   "Courier",
}

// ResolveFont returns the backend family for requested, falling back to
// DefaultFont for unknown or empty names.
func ResolveFont(requested string) string {
	if f, ok := availableFonts[strings.ToLower(strings.TrimSpace(requested))]; ok {
		return f
	}
	return DefaultFont
}

// FontAvailable reports whether requested resolves without falling back.
func FontAvailable(requested string) bool {
	_, ok := availableFonts[strings.ToLower(strings.TrimSpace(requested))]
	return ok
}

// Template selects the cosmetic variant of the layout.
type Template string

const (
	TemplateClassic Template = "classic"
	TemplateModern  Template = "modern"
)

// ParseTemplate maps a user selection to a Template. Unknown values select
// the classic template.
func ParseTemplate(s string) Template {
	if strings.EqualFold(strings.TrimSpace(s), string(TemplateModern)) {
		return TemplateModern
	}
	return TemplateClassic
}

// Color is an RGB color.
type Color struct {
	R, G, B int
}

var (
	black     = Color{0, 0, 0}
	modernInk = Color{31, 56, 100}
)

// accent returns the color used for the name, section titles and the
// header rule.
func (t Template) accent() Color {
	if t == TemplateModern {
		return modernInk
	}
	return black
}
