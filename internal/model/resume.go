package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Go models for a single resume submission. A Resume is built fresh for
// every render and never stored.

type Contact struct {
	Name     string `json:"name" yaml:"name"`
	Title    string `json:"title,omitempty" yaml:"title"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin"`
	GitHub   string `json:"github,omitempty" yaml:"github"`
}

type EducationEntry struct {
	Degree      string `json:"degree" yaml:"degree"`
	Institute   string `json:"institute" yaml:"institute"`
	Year        string `json:"year" yaml:"year"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// IsEmpty reports whether every field of the entry is empty.
func (e EducationEntry) IsEmpty() bool {
	return e.Degree == "" && e.Institute == "" && e.Year == "" && e.Description == ""
}

type ExperienceEntry struct {
	Company     string `json:"company" yaml:"company"`
	Role        string `json:"role" yaml:"role"`
	Duration    string `json:"duration" yaml:"duration"`
	Description string `json:"description,omitempty" yaml:"description"`
}

func (e ExperienceEntry) IsEmpty() bool {
	return e.Company == "" && e.Role == "" && e.Duration == "" && e.Description == ""
}

type ProjectEntry struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
}

func (p ProjectEntry) IsEmpty() bool {
	return p.Title == "" && p.Description == ""
}

type CustomSection struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Present reports whether the section has both a title and some non-blank
// content.
func (c *CustomSection) Present() bool {
	return c != nil && c.Title != "" && strings.TrimSpace(c.Content) != ""
}

type Resume struct {
	Contact        Contact           `json:"contact" yaml:"contact"`
	Education      []EducationEntry  `json:"education,omitempty" yaml:"education"`
	Fresher        bool              `json:"fresher,omitempty" yaml:"fresher"`
	Experience     []ExperienceEntry `json:"experience,omitempty" yaml:"experience"`
	Skills         TextBlock         `json:"skills,omitempty" yaml:"skills"`
	Certifications TextBlock         `json:"certifications,omitempty" yaml:"certifications"`
	Projects       []ProjectEntry    `json:"projects,omitempty" yaml:"projects"`
	Languages      TextBlock         `json:"languages,omitempty" yaml:"languages"`
	Custom         *CustomSection    `json:"custom,omitempty" yaml:"custom"`
}

// Normalize returns a copy of r holding only entries with at least one
// non-empty field. Entry order is preserved. Experience entries are dropped
// entirely for freshers.
func (r Resume) Normalize() Resume {
	out := r
	out.Education = nil
	for _, e := range r.Education {
		if !e.IsEmpty() {
			out.Education = append(out.Education, e)
		}
	}
	out.Experience = nil
	if !r.Fresher {
		for _, e := range r.Experience {
			if !e.IsEmpty() {
				out.Experience = append(out.Experience, e)
			}
		}
	}
	out.Projects = nil
	for _, p := range r.Projects {
		if !p.IsEmpty() {
			out.Projects = append(out.Projects, p)
		}
	}
	if r.Custom != nil {
		c := *r.Custom
		out.Custom = &c
	}
	return out
}

// isLineBreak matches every line boundary recognised by text areas: LF, CR,
// VT, FF, the file/group/record separators, NEL and the Unicode line and
// paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// NonBlankLines splits text into lines and returns the trimmed, non-blank
// ones in their original order.
func NonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.FieldsFunc(text, isLineBreak) {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// TextBlock is a raw multi-line text area. On input it accepts either a
// single string or an array of strings; array items become lines.
type TextBlock string

func (t TextBlock) String() string { return string(t) }

// IsBlank reports whether the block holds no non-whitespace characters.
func (t TextBlock) IsBlank() bool { return strings.TrimSpace(string(t)) == "" }

// Lines returns the non-blank lines of the block.
func (t TextBlock) Lines() []string { return NonBlankLines(string(t)) }

func (t *TextBlock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = TextBlock(s)
		return nil
	}
	var items []interface{}
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("text block must be a string or an array of strings")
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case string:
			lines = append(lines, v)
		case nil:
		default:
			lines = append(lines, fmt.Sprintf("%v", v))
		}
	}
	*t = TextBlock(strings.Join(lines, "\n"))
	return nil
}

func (t *TextBlock) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = TextBlock(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*t = TextBlock(strings.Join(items, "\n"))
		return nil
	}
	return fmt.Errorf("text block must be a string or a list of strings (line %d)", value.Line)
}
