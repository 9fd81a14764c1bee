package http

import (
	"fmt"
	"strconv"
	"strings"

	"resume-builder/internal/model"
)

// maxEntries bounds every repeatable form section.
const maxEntries = 5

// formValues is the subset of *fiber.Ctx used to read a submitted form.
type formValues interface {
	FormValue(key string, defaultValue ...string) string
}

// entryCount reads a "<prefix>_count" field clamped to 1..maxEntries. A
// missing or malformed count means one entry.
func entryCount(f formValues, prefix string) int {
	n, err := strconv.Atoi(strings.TrimSpace(f.FormValue(prefix + "_count")))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxEntries {
		return maxEntries
	}
	return n
}

// field trims surrounding whitespace; inner newlines of text areas are kept.
func field(f formValues, key string) string {
	return strings.TrimSpace(f.FormValue(key))
}

func checkbox(f formValues, key string) bool {
	switch strings.ToLower(field(f, key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// parseForm builds a submission from url-encoded or multipart form fields.
// Entries are indexed from 1: education_1_degree, education_2_degree, ...
func parseForm(f formValues) model.Submission {
	var s model.Submission
	s.Contact = model.Contact{
		Name:     field(f, "name"),
		Title:    field(f, "title"),
		Email:    field(f, "email"),
		Phone:    field(f, "phone"),
		LinkedIn: field(f, "linkedin"),
		GitHub:   field(f, "github"),
	}

	for i := 1; i <= entryCount(f, "education"); i++ {
		k := func(name string) string { return fmt.Sprintf("education_%d_%s", i, name) }
		s.Education = append(s.Education, model.EducationEntry{
			Degree:      field(f, k("degree")),
			Institute:   field(f, k("institute")),
			Year:        field(f, k("year")),
			Description: field(f, k("description")),
		})
	}

	s.Fresher = checkbox(f, "fresher")
	if !s.Fresher {
		for i := 1; i <= entryCount(f, "experience"); i++ {
			k := func(name string) string { return fmt.Sprintf("experience_%d_%s", i, name) }
			s.Experience = append(s.Experience, model.ExperienceEntry{
				Company:     field(f, k("company")),
				Role:        field(f, k("role")),
				Duration:    field(f, k("duration")),
				Description: field(f, k("description")),
			})
		}
	}

	s.Skills = model.TextBlock(field(f, "skills"))
	s.Certifications = model.TextBlock(field(f, "certifications"))
	s.Languages = model.TextBlock(field(f, "languages"))

	for i := 1; i <= entryCount(f, "project"); i++ {
		k := func(name string) string { return fmt.Sprintf("project_%d_%s", i, name) }
		s.Projects = append(s.Projects, model.ProjectEntry{
			Title:       field(f, k("title")),
			Description: field(f, k("description")),
		})
	}

	if title, content := field(f, "custom_title"), field(f, "custom_content"); title != "" || content != "" {
		s.Custom = &model.CustomSection{Title: title, Content: content}
	}

	s.Template = field(f, "template")
	s.Font = field(f, "font")
	s.Filename = field(f, "filename")
	s.SaveDir = field(f, "save_dir")
	return s
}
