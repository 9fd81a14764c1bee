package usecase

import (
	"github.com/google/uuid"

	"resume-builder/internal/layout"
	"resume-builder/internal/model"
	"resume-builder/pkg/infrastructure"
)

// Request is one render: the resume, its presentation selections and where
// the result goes.
type Request struct {
	Resume      model.Resume
	Font        string
	Template    string
	Destination infrastructure.Destination
}

// NewRequest builds a Request from a submission. saveDir is honoured only
// when allowSaveDir is set; otherwise the document goes to a temp file.
func NewRequest(s model.Submission, allowSaveDir bool) Request {
	req := Request{
		Resume:   s.Resume,
		Font:     s.Font,
		Template: s.Template,
		Destination: infrastructure.Destination{
			Filename: s.Filename,
		},
	}
	if allowSaveDir {
		req.Destination.Dir = s.SaveDir
	}
	return req
}

// Result is the outcome of a successful render.
type Result struct {
	ID       uuid.UUID
	Exported *infrastructure.Exported
	Report   model.ValidationReport
	Warnings []string
	Page     layout.Page
}
