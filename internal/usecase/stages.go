package usecase

import (
	"fmt"

	"resume-builder/internal/layout"
	"resume-builder/internal/model"
	"resume-builder/pkg/infrastructure"
)

// Stage names as reported in StageError and logs.
const (
	StageValidate = "validate"
	StageLayout   = "layout"
	StageAssets   = "assets"
	StageRender   = "render"
	StageExport   = "export"
)

// validateStage runs the field checks and the export gate.
func validateStage(r model.Resume) (model.ValidationReport, error) {
	report := model.Validate(r.Contact)
	if !report.GenerationAllowed {
		return report, &BlockedError{Report: report, Missing: model.MissingRequired(r.Contact)}
	}
	return report, nil
}

// layoutStage resolves presentation selections against the processor
// defaults and builds the page.
func layoutStage(req Request, defaultFont string, defaultTemplate layout.Template) layout.Page {
	opts := layout.Options{Font: req.Font, Template: layout.ParseTemplate(req.Template)}
	if opts.Font == "" {
		opts.Font = defaultFont
	}
	if req.Template == "" && defaultTemplate != "" {
		opts.Template = defaultTemplate
	}
	return layout.Build(req.Resume, opts)
}

// assetStage generates one asset per image slot. A slot whose asset cannot
// be generated is reported as a warning and left empty. Every returned
// asset must be removed by the caller, including on error paths.
func assetStage(gen AssetGenerator, renderID string, page layout.Page) ([]*infrastructure.Asset, []string) {
	var (
		assets   []*infrastructure.Asset
		warnings []string
	)
	for _, slot := range page.Slots {
		a, err := gen.Generate(renderID, slot)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Error handling QR code for %s: %v", slot.Key, err))
			continue
		}
		if a != nil {
			assets = append(assets, a)
		}
	}
	return assets, warnings
}

// fontFellBack reports whether a requested family was replaced by the
// default. The replacement is silent to the user.
func fontFellBack(requested string) bool {
	return requested != "" && !layout.FontAvailable(requested)
}
