package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/layout"
	"resume-builder/pkg/infrastructure"
)

type Renderer interface {
	Render(ctx context.Context, page layout.Page, assets []*infrastructure.Asset) (*infrastructure.Rendered, error)
}

type AssetGenerator interface {
	Generate(renderID string, slot layout.ImageSlot) (*infrastructure.Asset, error)
}

type Exporter interface {
	Export(pdf []byte, dst infrastructure.Destination) (*infrastructure.Exported, error)
}

type RenderLog interface {
	Save(ctx context.Context, j *domain.RenderJob) error
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithDefaultFont sets the family used when a request names none.
func WithDefaultFont(font string) ProcessorOption {
	return func(p *Processor) { p.defaultFont = font }
}

// WithDefaultTemplate sets the template used when a request names none.
func WithDefaultTemplate(t layout.Template) ProcessorOption {
	return func(p *Processor) { p.defaultTemplate = t }
}

// WithRenderLog records every render attempt. Save failures are logged and
// never fail a render.
func WithRenderLog(l RenderLog) ProcessorOption {
	return func(p *Processor) { p.log = l }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = l }
}

type Processor struct {
	renderer        Renderer
	assets          AssetGenerator
	exporter        Exporter
	log             RenderLog
	logger          *slog.Logger
	defaultFont     string
	defaultTemplate layout.Template
	now             func() time.Time
}

func NewProcessor(r Renderer, assets AssetGenerator, exp Exporter, opts ...ProcessorOption) *Processor {
	p := &Processor{
		renderer: r,
		assets:   assets,
		exporter: exp,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process validates, lays out, renders and exports one resume. A closed
// export gate returns a *BlockedError and produces nothing. Asset problems
// become warnings on the result. Render and export failures are returned
// as *StageError.
func (p *Processor) Process(ctx context.Context, req Request) (*Result, error) {
	id := uuid.New()
	logger := p.logger.With("id", id.String())
	job := &domain.RenderJob{
		ID:        id,
		Filename:  infrastructure.SanitizeFilename(req.Destination.Filename),
		Template:  req.Template,
		Font:      req.Font,
		CreatedAt: p.now().UTC(),
	}

	report, err := validateStage(req.Resume)
	if err != nil {
		logger.Info("Render blocked", "stage", StageValidate, "error", err)
		job.Status = domain.StatusBlocked
		p.record(ctx, logger, job)
		return nil, err
	}

	page := layoutStage(req, p.defaultFont, p.defaultTemplate)
	job.Font = page.Font
	job.Template = string(page.Template)
	res := &Result{ID: id, Report: report, Page: page}
	res.Warnings = append(res.Warnings, report.Warnings()...)
	if fontFellBack(req.Font) {
		logger.Debug("Font not available, using default", "requested", req.Font, "font", page.Font)
	}

	assets, warnings := assetStage(p.assets, id.String(), page)
	defer func() {
		for _, a := range assets {
			if err := a.Remove(); err != nil {
				logger.Warn("Failed to remove asset", "path", a.Path, "error", err)
			}
		}
	}()
	res.Warnings = append(res.Warnings, warnings...)

	rendered, err := p.renderer.Render(ctx, page, assets)
	if err != nil {
		return nil, p.fail(ctx, logger, job, StageRender, err)
	}
	res.Warnings = append(res.Warnings, rendered.Warnings...)

	exported, err := p.exporter.Export(rendered.PDF, req.Destination)
	if err != nil {
		return nil, p.fail(ctx, logger, job, StageExport, err)
	}
	res.Exported = exported

	job.Status = domain.StatusExported
	job.Filename = exported.Filename
	job.SizeBytes = exported.Size
	job.Warnings = res.Warnings
	p.record(ctx, logger, job)

	for _, w := range res.Warnings {
		logger.Warn("Render warning", "warning", w)
	}
	logger.Info("Resume exported", "path", exported.Path, "size", exported.Size)
	return res, nil
}

func (p *Processor) fail(ctx context.Context, logger *slog.Logger, job *domain.RenderJob, stage string, err error) error {
	serr := &StageError{Stage: stage, Err: err}
	logger.Error("Render failed", "stage", stage, "error", err)
	job.Status = domain.StatusFailed
	job.Warnings = []string{serr.Error()}
	p.record(ctx, logger, job)
	return serr
}

// record saves job to the render log, if any.
func (p *Processor) record(ctx context.Context, logger *slog.Logger, job *domain.RenderJob) {
	if p.log == nil {
		return
	}
	job.UpdatedAt = p.now().UTC()
	if err := p.log.Save(ctx, job); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("Unable to save render log (non-fatal)", "error", err)
	}
}
