package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusBlocked  = "blocked"
	StatusFailed   = "failed"
	StatusExported = "exported"
)

// RenderJob is the metadata kept about one render. The resume content
// itself is never stored.
type RenderJob struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Template  string    `json:"template"`
	Font      string    `json:"font"`
	Status    string    `json:"status"`
	SizeBytes int64     `json:"size_bytes"`
	Warnings  []string  `json:"warnings"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
