package model

import "regexp"

var (
	namePattern     = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailPattern    = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	phonePattern    = regexp.MustCompile(`^[0-9]{10}$`)
	linkedinPattern = regexp.MustCompile(`^https://(www\.)?linkedin\.com/in/[A-Za-z0-9_%-]+/?$`)
	githubPattern   = regexp.MustCompile(`^https://(www\.)?github\.com/[A-Za-z0-9_%-]+/?$`)
)

// Field names used in validation reports and form payloads.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLinkedIn = "linkedin"
	FieldGitHub   = "github"
)

// FieldResult is the outcome of checking one contact field. Valid is false
// only when the field is non-empty and malformed; empty fields never warn.
type FieldResult struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ValidationReport holds per-field warnings and the export gate.
type ValidationReport struct {
	Fields            []FieldResult `json:"fields"`
	GenerationAllowed bool          `json:"generationAllowed"`
}

// Warnings returns the messages of all fields that failed.
func (r ValidationReport) Warnings() []string {
	var out []string
	for _, f := range r.Fields {
		if !f.Valid {
			out = append(out, f.Message)
		}
	}
	return out
}

// Field returns the result for the named field.
func (r ValidationReport) Field(name string) (FieldResult, bool) {
	for _, f := range r.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldResult{}, false
}

func ValidName(s string) bool     { return namePattern.MatchString(s) }
func ValidEmail(s string) bool    { return emailPattern.MatchString(s) }
func ValidPhone(s string) bool    { return phonePattern.MatchString(s) }
func ValidLinkedIn(s string) bool { return linkedinPattern.MatchString(s) }
func ValidGitHub(s string) bool   { return githubPattern.MatchString(s) }

type fieldCheck struct {
	field   string
	value   string
	valid   func(string) bool
	message string
}

// Validate checks the contact fields of c.
//
// Warnings are raised only for non-empty malformed fields, while the export
// gate additionally treats name, email and phone as required. An empty phone
// therefore produces no warning but still closes the gate.
func Validate(c Contact) ValidationReport {
	checks := []fieldCheck{
		{FieldName, c.Name, ValidName, "Name should contain only letters and spaces."},
		{FieldEmail, c.Email, ValidEmail, "Please enter a valid email address."},
		{FieldPhone, c.Phone, ValidPhone, "Phone number must be exactly 10 digits and contain digits only."},
		{FieldLinkedIn, c.LinkedIn, ValidLinkedIn, "Please enter a valid LinkedIn profile URL (e.g., https://www.linkedin.com/in/yourname)."},
		{FieldGitHub, c.GitHub, ValidGitHub, "Please enter a valid GitHub profile URL (e.g., https://github.com/yourusername)."},
	}

	report := ValidationReport{Fields: make([]FieldResult, 0, len(checks))}
	for _, ch := range checks {
		res := FieldResult{Field: ch.field, Valid: true}
		if ch.value != "" && !ch.valid(ch.value) {
			res.Valid = false
			res.Message = ch.message
		}
		report.Fields = append(report.Fields, res)
	}

	report.GenerationAllowed = c.Name != "" && ValidName(c.Name) &&
		c.Phone != "" && ValidPhone(c.Phone) &&
		c.Email != "" && ValidEmail(c.Email)
	return report
}

// MissingRequired lists the required fields that are empty. It explains a
// closed gate when no warning is shown.
func MissingRequired(c Contact) []string {
	var missing []string
	if c.Name == "" {
		missing = append(missing, FieldName)
	}
	if c.Email == "" {
		missing = append(missing, FieldEmail)
	}
	if c.Phone == "" {
		missing = append(missing, FieldPhone)
	}
	return missing
}
