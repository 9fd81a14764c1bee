package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// JobLookup finds render-log entries.
type JobLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.RenderJob, error)
}

type Handler struct {
	processor    *usecase.Processor
	jobs         JobLookup
	allowSaveDir bool
}

func NewHandler(p *usecase.Processor, jobs JobLookup, allowSaveDir bool) *Handler {
	return &Handler{processor: p, jobs: jobs, allowSaveDir: allowSaveDir}
}

// Register mounts the handler's routes on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.Health)
	app.Post("/resumes", h.Render)
	app.Post("/resumes/validate", h.Validate)
	app.Get("/resumes/jobs/:id", h.GetJob)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

type renderResp struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Path     string   `json:"path,omitempty"`
	Size     int64    `json:"size"`
	DataURI  string   `json:"dataUri"`
	Warnings []string `json:"warnings"`
}

// Render turns a submission into a PDF. The document is returned as an
// attachment, or described as JSON with ?format=json.
func (h *Handler) Render(c *fiber.Ctx) error {
	sub, err := parseSubmission(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req := usecase.NewRequest(sub, h.allowSaveDir)
	res, err := h.processor.Process(c.UserContext(), req)
	if err != nil {
		var blocked *usecase.BlockedError
		if errors.As(err, &blocked) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   "Please fill in all required fields correctly before generating the PDF.",
				"missing": blocked.Missing,
				"report":  blocked.Report,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	exp := res.Exported
	path := exp.Path
	if req.Destination.Dir == "" {
		// Temp exports are only a staging copy; the bytes go out in the response.
		if err := os.Remove(exp.Path); err != nil {
			slog.Warn("Failed to remove temp export", "id", res.ID.String(), "path", exp.Path, "error", err)
		}
		path = ""
	}

	c.Set("X-Resume-Id", res.ID.String())
	if strings.EqualFold(c.Query("format"), "json") {
		warnings := res.Warnings
		if warnings == nil {
			warnings = []string{}
		}
		return c.JSON(renderResp{
			ID:       res.ID.String(),
			Filename: exp.Filename,
			Path:     path,
			Size:     exp.Size,
			DataURI:  exp.DataURI(),
			Warnings: warnings,
		})
	}
	for _, w := range res.Warnings {
		c.Context().Response.Header.Add("X-Resume-Warning", w)
	}
	c.Attachment(exp.Filename)
	return c.Send(exp.PDF)
}

// Validate reports field warnings and whether export would be allowed,
// without rendering anything.
func (h *Handler) Validate(c *fiber.Ctx) error {
	sub, err := parseSubmission(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	report := model.Validate(sub.Contact)
	return c.JSON(fiber.Map{
		"fields":            report.Fields,
		"generationAllowed": report.GenerationAllowed,
		"missing":           model.MissingRequired(sub.Contact),
		"warnings":          report.Warnings(),
	})
}

func (h *Handler) GetJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if h.jobs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "render log disabled"})
	}
	job, err := h.jobs.Get(c.UserContext(), id)
	if errors.Is(err, repository.ErrJobNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err != nil {
		slog.Error("Render log lookup failed", "id", id.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "lookup failed"})
	}
	return c.JSON(job)
}

// parseSubmission reads a JSON body (checked against the submission schema)
// or form fields, depending on the request content type.
func parseSubmission(c *fiber.Ctx) (model.Submission, error) {
	var sub model.Submission
	if !strings.HasPrefix(strings.ToLower(string(c.Request().Header.ContentType())), fiber.MIMEApplicationJSON) {
		return parseForm(c), nil
	}

	body := c.Body()
	if err := model.ValidatePayload(body); err != nil {
		return sub, err
	}
	if err := json.Unmarshal(body, &sub); err != nil {
		return sub, errors.Join(model.ErrInvalidPayload, err)
	}
	return sub, nil
}
