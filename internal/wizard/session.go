package wizard

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Session is one user's in-progress wizard state. It survives across
// requests until commit or explicit abandon and is owned exclusively by one
// user: only one session is addressable per owner at a time.
type Session struct {
	OwnerID     uuid.UUID         `json:"owner_id"`
	Draft       types.ResumeDraft `json:"draft"`
	CurrentStep Step              `json:"current_step"`
	TemplateID  string            `json:"template_id"`

	// EditingResumeID is set when the session was hydrated from an
	// already-committed resume; commit then updates instead of creating.
	EditingResumeID *uuid.UUID `json:"editing_resume_id,omitempty"`
}

// Store holds wizard sessions keyed by owner. Starting a new session for an
// owner replaces any existing one; there is no merging.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

// Start creates (or replaces) the owner's session, seeded with the given
// draft, positioned at step 1.
func (s *Store) Start(owner uuid.UUID, draft types.ResumeDraft, templateID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		OwnerID:     owner,
		Draft:       draft,
		CurrentStep: FirstStep,
		TemplateID:  templateID,
	}
	s.sessions[owner] = sess
	return sess
}

// Get returns the owner's session, or nil if none exists.
func (s *Store) Get(owner uuid.UUID) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[owner]
}

// Session returns the owner's session, or a NoSessionError if none exists.
func (s *Store) Session(owner uuid.UUID) (*Session, error) {
	if sess := s.Get(owner); sess != nil {
		return sess, nil
	}
	return nil, &NoSessionError{Owner: owner.String()}
}

// Clear removes the owner's session. Called on successful commit or
// explicit abandon.
func (s *Store) Clear(owner uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, owner)
}
