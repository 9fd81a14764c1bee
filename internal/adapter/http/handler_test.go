package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func newTestApp(t *testing.T, allowSaveDir bool) (*fiber.App, string) {
	t.Helper()
	tmp := t.TempDir()
	proc := usecase.NewProcessor(
		infrastructure.NewFpdfRenderer(),
		infrastructure.NewQRGenerator(tmp),
		infrastructure.NewFileExporter(tmp),
		usecase.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	app := fiber.New()
	NewHandler(proc, repository.NewJobsRepo(nil), allowSaveDir).Register(app)
	return app, tmp
}

const janeJSON = `{
  "contact": {"name": "Jane Doe", "email": "jane@example.com", "phone": "9876543210", "github": "https://github.com/janedoe"},
  "education": [{"degree": "B.Tech", "institute": "MIT", "year": "2020", "description": "Graduated with honors"}],
  "skills": ["Go", "SQL"],
  "filename": "jane"
}`

func doJSON(t *testing.T, app *fiber.App, target, body string) *nethttp.Response {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decode(t *testing.T, resp *nethttp.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestRender_JSONReturnsAttachment(t *testing.T) {
	app, tmp := newTestApp(t, false)
	resp := doJSON(t, app, "/resumes", janeJSON)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, "jane.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
	if _, err := uuid.Parse(resp.Header.Get("X-Resume-Id")); err != nil {
		t.Errorf("X-Resume-Id: %v", err)
	}
	entries, _ := os.ReadDir(tmp)
	if len(entries) != 0 {
		t.Errorf("temp files left behind: %d", len(entries))
	}
}

func TestRender_FormatJSON(t *testing.T) {
	app, _ := newTestApp(t, false)
	resp := doJSON(t, app, "/resumes?format=json", janeJSON)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out renderResp
	decode(t, resp, &out)
	if out.Filename != "jane.pdf" || out.Size == 0 || out.Path != "" {
		t.Errorf("response = %+v", out)
	}
	if !strings.HasPrefix(out.DataURI, "data:application/pdf;base64,") {
		t.Errorf("dataUri = %.40q", out.DataURI)
	}
	if out.Warnings == nil || len(out.Warnings) != 0 {
		t.Errorf("warnings = %v", out.Warnings)
	}
}

func TestRender_SaveDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	body := strings.Replace(janeJSON, `"filename": "jane"`, `"filename": "jane", "saveDir": "`+dir+`"`, 1)

	app, _ := newTestApp(t, true)
	var out renderResp
	decode(t, doJSON(t, app, "/resumes?format=json", body), &out)
	if out.Path != filepath.Join(dir, "jane.pdf") {
		t.Fatalf("path = %q", out.Path)
	}
	if _, err := os.Stat(out.Path); err != nil {
		t.Fatal(err)
	}

	app, _ = newTestApp(t, false)
	var disabled renderResp
	decode(t, doJSON(t, app, "/resumes?format=json", strings.Replace(body, "jane\"", "other\"", 1)), &disabled)
	if disabled.Path != "" || disabled.Filename != "other.pdf" {
		t.Errorf("save dir honoured while disabled: %+v", disabled)
	}
}

func TestRender_BlockedPhone(t *testing.T) {
	app, _ := newTestApp(t, false)
	resp := doJSON(t, app, "/resumes", strings.Replace(janeJSON, "9876543210", "12345", 1))
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Error  string `json:"error"`
		Report struct {
			GenerationAllowed bool `json:"generationAllowed"`
		} `json:"report"`
	}
	decode(t, resp, &out)
	if out.Error == "" || out.Report.GenerationAllowed {
		t.Errorf("response = %+v", out)
	}
}

func TestRender_SchemaViolation(t *testing.T) {
	app, _ := newTestApp(t, false)
	tests := map[string]string{
		"malformed":     `{"contact":`,
		"unknown field": `{"contact": {"name": "Jane", "nickname": "J"}}`,
		"too many":      `{"contact": {}, "projects": [{},{},{},{},{},{}]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			resp := doJSON(t, app, "/resumes", body)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d", resp.StatusCode)
			}
		})
	}
}

func TestRender_Form(t *testing.T) {
	app, _ := newTestApp(t, false)
	form := url.Values{
		"name":                  {"Jane Doe"},
		"email":                 {"jane@example.com"},
		"phone":                 {"9876543210"},
		"education_count":       {"2"},
		"education_1_degree":    {"B.Tech"},
		"education_1_institute": {"MIT"},
		"education_1_year":      {"2020"},
		"education_2_degree":    {"M.Tech"},
		"fresher":               {"on"},
		"experience_1_company":  {"ignored"},
		"skills":                {"Go\n\nSQL"},
		"filename":              {"form-cv"},
	}
	req := httptest.NewRequest(nethttp.MethodPost, "/resumes?format=json", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var out renderResp
	decode(t, resp, &out)
	if out.Filename != "form-cv.pdf" {
		t.Errorf("filename = %q", out.Filename)
	}
}

func TestValidateEndpoint(t *testing.T) {
	app, _ := newTestApp(t, false)
	resp := doJSON(t, app, "/resumes/validate", `{"contact": {"name": "Jane D0e", "email": "", "phone": "9876543210", "linkedin": "nope"}}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		GenerationAllowed bool     `json:"generationAllowed"`
		Missing           []string `json:"missing"`
		Warnings          []string `json:"warnings"`
	}
	decode(t, resp, &out)
	if out.GenerationAllowed {
		t.Error("gate open")
	}
	if len(out.Missing) != 1 || out.Missing[0] != "email" {
		t.Errorf("missing = %v", out.Missing)
	}
	if len(out.Warnings) != 2 {
		t.Errorf("warnings = %v", out.Warnings)
	}
}

func TestHealthAndJobs(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/healthz", nil), -1)
	if err != nil || resp.StatusCode != fiber.StatusOK {
		t.Fatalf("healthz = %v, %v", resp, err)
	}

	resp, _ = app.Test(httptest.NewRequest(nethttp.MethodGet, "/resumes/jobs/not-a-uuid", nil), -1)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("bad id status = %d", resp.StatusCode)
	}
	resp, _ = app.Test(httptest.NewRequest(nethttp.MethodGet, "/resumes/jobs/"+uuid.NewString(), nil), -1)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown id status = %d", resp.StatusCode)
	}
}
