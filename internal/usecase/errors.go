package usecase

import (
	"errors"
	"fmt"
	"strings"

	"resume-builder/internal/model"
)

// ErrGenerationBlocked is matched by every *BlockedError.
var ErrGenerationBlocked = errors.New("resume generation blocked")

// BlockedError reports a submission that failed the export gate. No
// document is produced.
type BlockedError struct {
	Report  model.ValidationReport
	Missing []string
}

func (e *BlockedError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	var invalid []string
	for _, name := range []string{model.FieldName, model.FieldEmail, model.FieldPhone} {
		if f, ok := e.Report.Field(name); ok && !f.Valid {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(invalid, ", "))
	}
	if len(parts) == 0 {
		return ErrGenerationBlocked.Error()
	}
	return fmt.Sprintf("%s: %s", ErrGenerationBlocked, strings.Join(parts, "; "))
}

func (e *BlockedError) Unwrap() error { return ErrGenerationBlocked }

// StageError wraps a failure in one pipeline stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
