package model

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var submissionSchema []byte

// ErrInvalidPayload is returned when a JSON submission does not match the
// submission schema.
var ErrInvalidPayload = errors.New("invalid resume payload")

var schemaLoader = gojsonschema.NewBytesLoader(submissionSchema)

// Submission is one form submission: the resume plus the presentation
// selections that only affect cosmetic rendering.
type Submission struct {
	Resume   `yaml:",inline"`
	Template string `json:"template,omitempty" yaml:"template"`
	Font     string `json:"font,omitempty" yaml:"font"`
	Filename string `json:"filename,omitempty" yaml:"filename"`
	SaveDir  string `json:"saveDir,omitempty" yaml:"save_dir"`
}

// ValidatePayload validates a raw JSON submission against the embedded
// schema. All schema violations are collected into a single error.
func ValidatePayload(payload []byte) error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: schema validation failed: %s", ErrInvalidPayload, strings.Join(msgs, "; "))
}
