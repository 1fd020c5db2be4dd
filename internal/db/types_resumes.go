package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Resume is a committed resume aggregate: the parent row's metadata plus the
// fully hydrated draft shape the wizard edits.
type Resume struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	TemplateID string            `json:"template_id"`
	Draft      types.ResumeDraft `json:"draft"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ResumeSummary is a lightweight view for listing a user's resumes.
type ResumeSummary struct {
	ID         uuid.UUID `json:"id"`
	TemplateID string    `json:"template_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NotFoundError reports a lookup for a resume that does not exist.
type NotFoundError struct {
	ResumeID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// UnknownSectionError reports a section name outside the draft shape.
type UnknownSectionError struct {
	Section string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown resume section: %s", e.Section)
}
