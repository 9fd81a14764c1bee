package layout

import (
	"reflect"
	"strings"
	"testing"

	"resume-builder/internal/model"
)

func janeDoe() model.Resume {
	return model.Resume{
		Contact: model.Contact{Name: "Jane Doe", Email: "jane@x.com", Phone: "1234567890"},
	}
}

func TestBuild_JaneDoeScenario(t *testing.T) {
	page := Build(janeDoe(), Options{Font: "Arial"})

	lines := page.Lines()
	if len(lines) == 0 || lines[0] != "JANE DOE" {
		t.Fatalf("first line = %v, want JANE DOE", lines)
	}
	contact := page.LinesWithRole(RoleContact)
	want := []string{"Email: jane@x.com", "Phone: 1234567890"}
	if !reflect.DeepEqual(contact, want) {
		t.Errorf("contact = %v, want %v", contact, want)
	}
	if sections := page.LinesWithRole(RoleSection); !reflect.DeepEqual(sections, []string{"Experience"}) {
		t.Errorf("sections = %v, want only Experience", sections)
	}
	if got := page.LinesWithRole(RoleEntry); len(got) != 0 {
		t.Errorf("expected no entries, got %v", got)
	}
	if got := page.LinesWithRole(RolePlaceholder); len(got) != 0 {
		t.Errorf("expected no fresher placeholder, got %v", got)
	}
	if len(page.Slots) != 0 {
		t.Errorf("expected no image slots, got %+v", page.Slots)
	}
}

func TestBuild_FresherPlaceholder(t *testing.T) {
	r := janeDoe()
	r.Fresher = true
	r.Experience = []model.ExperienceEntry{{Company: "Ignored"}}
	page := Build(r, Options{})

	got := page.LinesWithRole(RolePlaceholder)
	if !reflect.DeepEqual(got, []string{FresherLine}) {
		t.Errorf("placeholder = %v", got)
	}
	for _, l := range page.Lines() {
		if strings.Contains(l, "Ignored") {
			t.Errorf("fresher page must not list experience entries, found %q", l)
		}
	}
}

func TestBuild_HeaderOps(t *testing.T) {
	r := janeDoe()
	r.Contact.Title = "Software Developer"
	page := Build(r, Options{Template: TemplateModern})

	name, title, rule, gap := page.Ops[0], page.Ops[1], page.Ops[2], page.Ops[3]
	if name.Style != StyleBold || name.Size != NameSize || name.Align != AlignCenter || name.Color != modernInk {
		t.Errorf("unexpected name op: %+v", name)
	}
	if title.Text != "Software Developer" || title.Style != StyleItalic || title.Align != AlignCenter {
		t.Errorf("unexpected title op: %+v", title)
	}
	if rule.Kind != OpRule || rule.X1 != RuleStart || rule.X2 != RuleEnd {
		t.Errorf("unexpected rule op: %+v", rule)
	}
	if gap.Kind != OpGap || gap.Height != HeaderGap {
		t.Errorf("unexpected gap op: %+v", gap)
	}
}

func TestBuild_SectionOrderAndFormats(t *testing.T) {
	r := janeDoe()
	r.Contact.LinkedIn = "https://linkedin.com/in/jd"
	r.Contact.GitHub = "https://github.com/jd"
	r.Education = []model.EducationEntry{{Degree: "BSc", Institute: "MIT", Year: "2020", Description: "Dean's list\n\nThesis on PDFs"}}
	r.Experience = []model.ExperienceEntry{{Company: "Acme", Role: "Engineer", Duration: "2021-2023", Description: "Built things"}}
	r.Skills = "Go\nSQL"
	r.Certifications = "CKA"
	r.Projects = []model.ProjectEntry{{Title: "  resumectl  ", Description: "CLI\nServer"}}
	r.Languages = "English"
	r.Custom = &model.CustomSection{Title: "Awards", Content: "Hackathon winner"}

	page := Build(r, Options{})

	sections := page.LinesWithRole(RoleSection)
	want := []string{"Education", "Experience", "Skills", "Certifications", "Projects", "Languages", "Awards"}
	if !reflect.DeepEqual(sections, want) {
		t.Fatalf("sections = %v, want %v", sections, want)
	}
	entries := page.LinesWithRole(RoleEntry)
	wantEntries := []string{"BSc, MIT (2020)", "Engineer at Acme (2021-2023)"}
	if !reflect.DeepEqual(entries, wantEntries) {
		t.Errorf("entries = %v, want %v", entries, wantEntries)
	}
	if got := page.LinesWithRole(RoleProjectTitle); !reflect.DeepEqual(got, []string{"resumectl"}) {
		t.Errorf("project titles = %v", got)
	}
	for _, op := range page.Ops {
		if op.Role == RoleProjectTitle && op.Style != StyleBold {
			t.Errorf("project title must be bold: %+v", op)
		}
	}
	contact := page.LinesWithRole(RoleContact)
	if len(contact) != 4 || contact[2] != "LinkedIn: https://linkedin.com/in/jd" || contact[3] != "GitHub: https://github.com/jd" {
		t.Errorf("contact = %v", contact)
	}
}

func TestBuild_OmissionLaw(t *testing.T) {
	r := janeDoe()
	r.Skills = "   \n\n"
	r.Certifications = ""
	r.Languages = "\t"
	r.Education = []model.EducationEntry{{}}
	r.Projects = []model.ProjectEntry{{}, {}}
	r.Custom = &model.CustomSection{Title: "Awards", Content: " "}

	page := Build(r, Options{})
	if got := page.LinesWithRole(RoleSection); !reflect.DeepEqual(got, []string{"Experience"}) {
		t.Errorf("sections = %v, want only Experience", got)
	}

	r.Custom = &model.CustomSection{Title: "", Content: "orphan"}
	page = Build(r, Options{})
	for _, l := range page.Lines() {
		if strings.Contains(l, "orphan") {
			t.Error("custom section without title must be omitted")
		}
	}
}

func TestBuild_BulletLaw(t *testing.T) {
	blocks := []string{
		"",
		"one",
		"one\ntwo\nthree",
		"\n\n  a  \n\n\tb\n \n",
		"x\r\ny\r\n",
	}
	for _, block := range blocks {
		r := janeDoe()
		r.Skills = model.TextBlock(block)
		page := Build(r, Options{})

		var want []string
		for _, l := range model.NonBlankLines(block) {
			want = append(want, BulletPrefix+l)
		}
		got := page.LinesWithRole(RoleBullet)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("block %q: bullets = %v, want %v", block, got, want)
		}
		for _, op := range page.Ops {
			if op.Role == RoleBullet && op.Size != BodySize {
				t.Errorf("bullet size = %v, want %v", op.Size, BodySize)
			}
		}
	}
}

func TestBuild_QRSlots(t *testing.T) {
	r := janeDoe()
	r.Contact.GitHub = "https://github.com/jd"
	page := Build(r, Options{})

	if len(page.Slots) != 1 {
		t.Fatalf("slots = %+v, want one", page.Slots)
	}
	s, ok := page.Slot(SlotKeyGitHub)
	if !ok || s.X != QRGitHubX || s.Y != PageHeight-QRBottomOffset || s.W != QRSize {
		t.Errorf("unexpected github slot: %+v", s)
	}
	if _, ok := page.Slot(SlotKeyLinkedIn); ok {
		t.Error("unexpected linkedin slot")
	}

	r.Contact.LinkedIn = "https://linkedin.com/in/jd"
	page = Build(r, Options{})
	gh, _ := page.Slot(SlotKeyGitHub)
	li, _ := page.Slot(SlotKeyLinkedIn)
	if gh.X+gh.W > li.X {
		t.Errorf("slots overlap: %+v %+v", gh, li)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	r := janeDoe()
	r.Skills = "Go\nSQL"
	a := Build(r, Options{Font: "times"})
	b := Build(r, Options{Font: "times"})
	if !reflect.DeepEqual(a, b) {
		t.Error("Build is not deterministic")
	}
}

func TestResolveFont(t *testing.T) {
	tests := map[string]string{
		"Arial":       "Arial",
		"times":       "Times",
		"COURIER":     "Courier",
		" Helvetica ": "Helvetica",
		"Comic Sans":  DefaultFont,
		"":            DefaultFont,
	}
	for in, want := range tests {
		if got := ResolveFont(in); got != want {
			t.Errorf("ResolveFont(%q) = %q, want %q", in, got, want)
		}
	}
	if FontAvailable("Comic Sans") {
		t.Error("Comic Sans should not be available")
	}
}

func TestBuild_UnknownFontFallsBack(t *testing.T) {
	a := Build(janeDoe(), Options{Font: "Papyrus"})
	b := Build(janeDoe(), Options{Font: DefaultFont})
	if a.Font != DefaultFont {
		t.Errorf("font = %q, want %q", a.Font, DefaultFont)
	}
	if !reflect.DeepEqual(a.Ops, b.Ops) {
		t.Error("font fallback must not change the layout")
	}
}

func TestParseTemplate(t *testing.T) {
	if ParseTemplate("Modern") != TemplateModern {
		t.Error("expected modern")
	}
	if ParseTemplate("Classic") != TemplateClassic || ParseTemplate("fancy") != TemplateClassic {
		t.Error("expected classic")
	}
}
