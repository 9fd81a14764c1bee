package layout

import (
	"fmt"
	"strings"

	"resume-builder/internal/model"
)

// Options are the presentation selections for a page.
type Options struct {
	Font     string
	Template Template
}

// Build lays out r on a single page. Entries are filtered with
// Resume.Normalize first, so callers may pass raw form state.
//
// Sections appear in a fixed order: Education, Experience, Skills,
// Certifications, Projects, Languages and the custom section. Every section
// except Experience is omitted when it has nothing to show; the Experience
// title is always drawn, even with no entries.
func Build(r model.Resume, opts Options) Page {
	r = r.Normalize()
	b := &builder{
		page: Page{
			Width:    PageWidth,
			Height:   PageHeight,
			Font:     ResolveFont(opts.Font),
			Template: opts.Template,
		},
		accent: opts.Template.accent(),
	}
	if b.page.Template == "" {
		b.page.Template = TemplateClassic
	}

	b.header(r.Contact)
	b.contact(r.Contact)
	b.education(r.Education)
	b.experience(r.Fresher, r.Experience)
	b.textSection("Skills", r.Skills)
	b.textSection("Certifications", r.Certifications)
	b.projects(r.Projects)
	b.textSection("Languages", r.Languages)
	if r.Custom.Present() {
		b.textSection(r.Custom.Title, model.TextBlock(r.Custom.Content))
	}
	b.slots(r.Contact)
	return b.page
}

type builder struct {
	page   Page
	accent Color
}

func (b *builder) text(role Role, text, style string, size, height float64, align string, c Color) {
	b.page.Ops = append(b.page.Ops, Op{
		Kind:   OpText,
		Role:   role,
		Text:   text,
		Style:  style,
		Size:   size,
		Height: height,
		Align:  align,
		Color:  c,
	})
}

func (b *builder) body(role Role, text string) {
	b.text(role, text, StyleRegular, BodySize, BodyHeight, AlignLeft, black)
}

func (b *builder) gap(h float64) {
	b.page.Ops = append(b.page.Ops, Op{Kind: OpGap, Height: h})
}

func (b *builder) header(c model.Contact) {
	b.page.Title = c.Name
	b.text(RoleName, strings.ToUpper(c.Name), StyleBold, NameSize, NameHeight, AlignCenter, b.accent)
	if c.Title != "" {
		b.text(RoleTitle, c.Title, StyleItalic, TitleSize, TitleHeight, AlignCenter, black)
	}
	b.page.Ops = append(b.page.Ops, Op{Kind: OpRule, X1: RuleStart, X2: RuleEnd, Color: b.accent})
	b.gap(HeaderGap)
}

func (b *builder) contact(c model.Contact) {
	lines := []struct{ label, value string }{
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"LinkedIn", c.LinkedIn},
		{"GitHub", c.GitHub},
	}
	for _, l := range lines {
		if l.value != "" {
			b.body(RoleContact, fmt.Sprintf("%s: %s", l.label, l.value))
		}
	}
	b.gap(ContactGap)
}

func (b *builder) section(title string) {
	b.text(RoleSection, title, StyleBold, SectionSize, SectionHeight, AlignLeft, b.accent)
}

// bullets draws one "- " line per non-blank line of text.
func (b *builder) bullets(text string) {
	for _, line := range model.NonBlankLines(text) {
		b.body(RoleBullet, BulletPrefix+line)
	}
}

func (b *builder) education(entries []model.EducationEntry) {
	if len(entries) == 0 {
		return
	}
	b.section("Education")
	for _, e := range entries {
		b.body(RoleEntry, fmt.Sprintf("%s, %s (%s)", e.Degree, e.Institute, e.Year))
		b.bullets(e.Description)
	}
}

func (b *builder) experience(fresher bool, entries []model.ExperienceEntry) {
	b.section("Experience")
	if fresher {
		b.body(RolePlaceholder, FresherLine)
		return
	}
	for _, e := range entries {
		b.body(RoleEntry, fmt.Sprintf("%s at %s (%s)", e.Role, e.Company, e.Duration))
		b.bullets(e.Description)
	}
}

func (b *builder) textSection(title string, block model.TextBlock) {
	if block.IsBlank() {
		return
	}
	b.section(title)
	b.bullets(string(block))
}

func (b *builder) projects(entries []model.ProjectEntry) {
	if len(entries) == 0 {
		return
	}
	b.section("Projects")
	for _, p := range entries {
		b.text(RoleProjectTitle, strings.TrimSpace(p.Title), StyleBold, BodySize, BodyHeight, AlignLeft, black)
		b.bullets(p.Description)
	}
}

func (b *builder) slots(c model.Contact) {
	y := PageHeight - QRBottomOffset
	if c.GitHub != "" {
		b.page.Slots = append(b.page.Slots, ImageSlot{Key: SlotKeyGitHub, URL: c.GitHub, X: QRGitHubX, Y: y, W: QRSize, Pixels: QRPixelsGitHub})
	}
	if c.LinkedIn != "" {
		b.page.Slots = append(b.page.Slots, ImageSlot{Key: SlotKeyLinkedIn, URL: c.LinkedIn, X: QRLinkedInX, Y: y, W: QRSize, Pixels: QRPixelsLinkedIn})
	}
}
