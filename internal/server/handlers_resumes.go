package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/db"
	"github.com/jonathan/resume-wizard/internal/types"
)

// handleListResumes lists the owner's committed resumes
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.requireOwner(w, r)
	if !ok {
		return
	}

	summaries, err := s.store.ListResumes(r.Context(), owner)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list resumes")
		return
	}
	if summaries == nil {
		summaries = []db.ResumeSummary{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": summaries})
}

// handleGetResume returns one committed resume as a render-ready view
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	res, ok := s.ownedResume(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, types.CommittedView(res.ID, res.UserID, res.TemplateID, res.CreatedAt, res.Draft))
}

// handleDeleteResume removes a committed resume
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	res, ok := s.ownedResume(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteResume(r.Context(), res.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ownedResume loads the resume in the path and enforces ownership. A resume
// belonging to someone else reads as not found.
func (s *Server) ownedResume(w http.ResponseWriter, r *http.Request) (*db.Resume, bool) {
	owner, ok := s.requireOwner(w, r)
	if !ok {
		return nil, false
	}
	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume id must be a valid UUID")
		return nil, false
	}

	res, err := s.store.GetResume(r.Context(), resumeID)
	if err != nil {
		var notFound *db.NotFoundError
		if errors.As(err, &notFound) {
			s.errorResponse(w, http.StatusNotFound, err.Error())
		} else {
			s.errorResponse(w, http.StatusInternalServerError, "failed to load resume")
		}
		return nil, false
	}
	if res.UserID != owner {
		s.errorResponse(w, http.StatusNotFound, (&db.NotFoundError{ResumeID: resumeID}).Error())
		return nil, false
	}
	return res, true
}
