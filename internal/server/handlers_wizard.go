package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/db"
	"github.com/jonathan/resume-wizard/internal/extraction"
	"github.com/jonathan/resume-wizard/internal/normalize"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// ownerHeader identifies the requesting user. Sessions and resumes are
// scoped to this identity.
const ownerHeader = "X-User-ID"

const defaultTemplateID = "modern"

// StartRequest is the optional request body for /wizard/start
type StartRequest struct {
	TemplateID string `json:"template_id,omitempty"`
}

// StepResponse is the rendered state of one wizard step
type StepResponse struct {
	Step        int                     `json:"step"`
	Section     string                  `json:"section"`
	Data        any                     `json:"data"`
	CurrentStep int                     `json:"current_step"`
	Done        bool                    `json:"done,omitempty"`
	Errors      wizard.ValidationErrors `json:"errors,omitempty"`
}

// CommitResponse is the response for /wizard/commit
type CommitResponse struct {
	ResumeID string `json:"resume_id"`
	Status   string `json:"status"`
}

// ownerID reads the owner identity header.
func ownerID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.Header.Get(ownerHeader))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// requireOwner extracts the owner or writes a 400.
func (s *Server) requireOwner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	owner, ok := ownerID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "X-User-ID header must be a valid UUID")
	}
	return owner, ok
}

// requireSession extracts the owner's active session or writes a 404.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (uuid.UUID, *wizard.Session, bool) {
	owner, ok := s.requireOwner(w, r)
	if !ok {
		return uuid.Nil, nil, false
	}
	sess, err := s.sessions.Session(owner)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return owner, nil, false
	}
	return owner, sess, true
}

// stepParam parses the {n} path segment into a wizard step.
func stepParam(r *http.Request) (wizard.Step, bool) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		return 0, false
	}
	step := wizard.Step(n)
	return step, step.Valid()
}

func stepResponse(sess *wizard.Session, step wizard.Step) StepResponse {
	return StepResponse{
		Step:        int(step),
		Section:     step.Section(),
		Data:        wizard.StepView(sess.Draft, step),
		CurrentStep: int(sess.CurrentStep),
	}
}

// handleWizardStart opens a blank wizard session
func (s *Server) handleWizardStart(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.requireOwner(w, r)
	if !ok {
		return
	}

	var req StartRequest
	if r.Body != nil {
		// Body is optional; a decode failure just means defaults.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.TemplateID == "" {
		req.TemplateID = defaultTemplateID
	}

	sess := s.sessions.Start(owner, types.NewResumeDraft(), req.TemplateID)
	s.jsonResponse(w, http.StatusCreated, stepResponse(sess, wizard.FirstStep))
}

// handleWizardUpload opens a session seeded from an uploaded document.
// Extraction and parsing failures degrade to an emptier draft; only a
// contract violation (unsupported extension, oversize file) is an error.
func (s *Server) handleWizardUpload(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.requireOwner(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+(64<<10))
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "a 'file' form field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	if int64(len(data)) > s.maxUpload {
		s.errorResponse(w, http.StatusBadRequest, "uploaded file exceeds the size limit")
		return
	}

	raw, err := extraction.Extract(data, header.Filename)
	if err != nil {
		var unsupported *extraction.UnsupportedFormatError
		var tooLarge *extraction.TooLargeError
		switch {
		case errors.As(err, &unsupported), errors.As(err, &tooLarge):
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		default:
			// Unreadable or near-empty documents seed an empty draft.
			log.Printf("Extraction degraded for %s: %v", header.Filename, err)
			raw = &extraction.RawExtraction{Links: []string{}}
		}
	}

	structured := s.parser.Parse(r.Context(), raw.Text, raw.Links)
	draft := normalize.Draft(structured)

	templateID := r.FormValue("template_id")
	if templateID == "" {
		templateID = defaultTemplateID
	}

	sess := s.sessions.Start(owner, draft, templateID)
	s.jsonResponse(w, http.StatusCreated, stepResponse(sess, wizard.FirstStep))
}

// handleWizardStepGet renders one step of the active session
func (s *Server) handleWizardStepGet(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	step, valid := stepParam(r)
	if !valid {
		s.errorResponse(w, http.StatusBadRequest, "step must be an integer between 1 and 9")
		return
	}
	s.jsonResponse(w, http.StatusOK, stepResponse(sess, step))
}

// handleWizardStepPost validates and applies one step submission
func (s *Server) handleWizardStepPost(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	step, valid := stepParam(r)
	if !valid {
		s.errorResponse(w, http.StatusBadRequest, "step must be an integer between 1 and 9")
		return
	}

	if err := r.ParseForm(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid form body: "+err.Error())
		return
	}
	form := wizard.Form{}
	for key, values := range r.PostForm {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}

	result, err := s.machine.Submit(sess, step, form)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(result.Errors) > 0 {
		resp := stepResponse(sess, step)
		resp.Errors = result.Errors
		s.jsonResponse(w, http.StatusBadRequest, resp)
		return
	}

	resp := stepResponse(sess, result.Step)
	resp.Done = result.Done
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleWizardGoto repositions the session without validating
func (s *Server) handleWizardGoto(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	step, valid := stepParam(r)
	if !valid {
		s.errorResponse(w, http.StatusBadRequest, "step must be an integer between 1 and 9")
		return
	}
	if err := s.machine.Goto(sess, step); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, stepResponse(sess, step))
}

// handleWizardCommit materializes the session as a committed resume. The
// session survives a failed commit so nothing the user entered is lost.
func (s *Server) handleWizardCommit(w http.ResponseWriter, r *http.Request) {
	owner, sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	var resumeID uuid.UUID
	if sess.EditingResumeID != nil {
		resumeID = *sess.EditingResumeID
		if err := s.store.UpdateResume(r.Context(), resumeID, sess.Draft); err != nil {
			log.Printf("Commit failed for resume %s: %v", resumeID, err)
			s.errorResponse(w, http.StatusInternalServerError, "failed to save resume; your progress is preserved")
			return
		}
	} else {
		id, err := s.store.CreateResume(r.Context(), owner, sess.TemplateID, sess.Draft)
		if err != nil {
			log.Printf("Commit failed for owner %s: %v", owner, err)
			s.errorResponse(w, http.StatusInternalServerError, "failed to save resume; your progress is preserved")
			return
		}
		resumeID = id
	}

	s.sessions.Clear(owner)
	s.jsonResponse(w, http.StatusCreated, CommitResponse{ResumeID: resumeID.String(), Status: "committed"})
}

// handleWizardEdit hydrates a session from a committed resume
func (s *Server) handleWizardEdit(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.requireOwner(w, r)
	if !ok {
		return
	}
	resumeID, err := uuid.Parse(r.PathValue("resume_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume_id must be a valid UUID")
		return
	}

	res, err := s.store.GetResume(r.Context(), resumeID)
	if err != nil {
		var notFound *db.NotFoundError
		if errors.As(err, &notFound) {
			s.errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to load resume")
		return
	}
	if res.UserID != owner {
		// Hide other users' resumes entirely.
		s.errorResponse(w, http.StatusNotFound, (&db.NotFoundError{ResumeID: resumeID}).Error())
		return
	}

	sess := s.sessions.Start(owner, res.Draft, res.TemplateID)
	sess.EditingResumeID = &resumeID
	s.jsonResponse(w, http.StatusCreated, stepResponse(sess, wizard.FirstStep))
}

// handleWizardAbandon discards the active session
func (s *Server) handleWizardAbandon(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.requireOwner(w, r)
	if !ok {
		return
	}
	s.sessions.Clear(owner)
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "abandoned"})
}
