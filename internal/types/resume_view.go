package types

import (
	"time"

	"github.com/google/uuid"
)

// ResumeView is the single read-side projection used to render a resume,
// whether it comes from an in-progress wizard session or a committed
// aggregate. Both sources project into this one type so rendering code never
// branches on origin.
type ResumeView struct {
	ID         *uuid.UUID  `json:"id,omitempty"` // nil for uncommitted drafts
	OwnerID    *uuid.UUID  `json:"owner_id,omitempty"`
	TemplateID string      `json:"template_id,omitempty"`
	Committed  bool        `json:"committed"`
	CreatedAt  *time.Time  `json:"created_at,omitempty"`
	Resume     ResumeDraft `json:"resume"`
}

// DraftView projects an in-progress draft into a ResumeView.
func DraftView(draft ResumeDraft, templateID string) ResumeView {
	return ResumeView{
		TemplateID: templateID,
		Committed:  false,
		Resume:     draft,
	}
}

// CommittedView projects a persisted aggregate into a ResumeView.
func CommittedView(id, owner uuid.UUID, templateID string, createdAt time.Time, draft ResumeDraft) ResumeView {
	return ResumeView{
		ID:         &id,
		OwnerID:    &owner,
		TemplateID: templateID,
		Committed:  true,
		CreatedAt:  &createdAt,
		Resume:     draft,
	}
}
