package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"resume-builder/internal/model"
)

// loadSubmission reads a resume file. JSON files are checked against the
// submission schema as-is; YAML files are decoded first and checked in
// their JSON form, so both formats obey the same rules.
func loadSubmission(path string) (model.Submission, error) {
	var sub model.Submission
	data, err := os.ReadFile(path)
	if err != nil {
		return sub, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := model.ValidatePayload(data); err != nil {
			return sub, err
		}
		if err := json.Unmarshal(data, &sub); err != nil {
			return sub, fmt.Errorf("%w: %v", model.ErrInvalidPayload, err)
		}
	default:
		if err := yaml.Unmarshal(data, &sub); err != nil {
			return sub, fmt.Errorf("%w: %v", model.ErrInvalidPayload, err)
		}
		canonical, err := json.Marshal(sub)
		if err != nil {
			return sub, err
		}
		if err := model.ValidatePayload(canonical); err != nil {
			return sub, err
		}
	}
	return sub, nil
}
