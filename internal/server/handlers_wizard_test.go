package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/db"
	"github.com/jonathan/resume-wizard/internal/parsing"
	"github.com/jonathan/resume-wizard/internal/types"
)

// fakeStore is an in-memory CommitStore.
type fakeStore struct {
	resumes   map[uuid.UUID]*db.Resume
	createErr error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{resumes: make(map[uuid.UUID]*db.Resume)}
}

func (f *fakeStore) CreateResume(_ context.Context, userID uuid.UUID, templateID string, draft types.ResumeDraft) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	id := uuid.New()
	f.resumes[id] = &db.Resume{ID: id, UserID: userID, TemplateID: templateID, Draft: draft, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	return id, nil
}

func (f *fakeStore) UpdateResume(_ context.Context, resumeID uuid.UUID, draft types.ResumeDraft) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	res, ok := f.resumes[resumeID]
	if !ok {
		return &db.NotFoundError{ResumeID: resumeID}
	}
	res.Draft = draft
	res.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) GetResume(_ context.Context, resumeID uuid.UUID) (*db.Resume, error) {
	res, ok := f.resumes[resumeID]
	if !ok {
		return nil, &db.NotFoundError{ResumeID: resumeID}
	}
	return res, nil
}

func (f *fakeStore) ListResumes(_ context.Context, userID uuid.UUID) ([]db.ResumeSummary, error) {
	var out []db.ResumeSummary
	for _, res := range f.resumes {
		if res.UserID == userID {
			out = append(out, db.ResumeSummary{ID: res.ID, TemplateID: res.TemplateID})
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteResume(_ context.Context, resumeID uuid.UUID) error {
	if _, ok := f.resumes[resumeID]; !ok {
		return &db.NotFoundError{ResumeID: resumeID}
	}
	delete(f.resumes, resumeID)
	return nil
}

func newTestServer(store CommitStore) *Server {
	// Nil client means the deterministic fallback parser.
	return newServer(store, parsing.NewParser(nil), 5<<20)
}

func doRequest(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func formRequest(t *testing.T, path string, owner uuid.UUID, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(ownerHeader, owner.String())
	return req
}

func decodeStep(t *testing.T, rec *httptest.ResponseRecorder) StepResponse {
	t.Helper()
	var resp StepResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func startWizard(t *testing.T, s *Server, owner uuid.UUID) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/wizard/start", strings.NewReader(`{"template_id": "classic"}`))
	req.Header.Set(ownerHeader, owner.String())
	rec := doRequest(t, s, req)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(newFakeStore())
	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWizardStartRequiresOwner(t *testing.T) {
	s := newTestServer(newFakeStore())
	rec := doRequest(t, s, httptest.NewRequest(http.MethodPost, "/wizard/start", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardStartRendersFirstStep(t *testing.T) {
	s := newTestServer(newFakeStore())
	owner := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/wizard/start", nil)
	req.Header.Set(ownerHeader, owner.String())
	rec := doRequest(t, s, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeStep(t, rec)
	assert.Equal(t, 1, resp.Step)
	assert.Equal(t, "personal_info", resp.Section)
	assert.Equal(t, 1, resp.CurrentStep)
}

func TestWizardUploadSeedsSession(t *testing.T) {
	s := newTestServer(newFakeStore())
	owner := uuid.New()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "resume.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("John A Doe\njohn@example.com\n(555) 123-4567\nPlatform engineer with ten years of experience.\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/wizard/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(ownerHeader, owner.String())
	rec := doRequest(t, s, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeStep(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "John", data["first_name"])
	assert.Equal(t, "Doe", data["last_name"])
	assert.Equal(t, "john@example.com", data["email"])
}

func TestWizardUploadRejectsUnsupportedFormat(t *testing.T) {
	s := newTestServer(newFakeStore())
	owner := uuid.New()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "resume.rtf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("{\\rtf1 not supported}"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/wizard/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(ownerHeader, owner.String())
	rec := doRequest(t, s, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardStepSubmitAndRender(t *testing.T) {
	s := newTestServer(newFakeStore())
	owner := uuid.New()
	startWizard(t, s, owner)

	rec := doRequest(t, s, formRequest(t, "/wizard/step/1", owner, url.Values{
		"first_name": {"Jane"},
		"last_name":  {"Roe"},
		"email":      {"jane@example.com"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeStep(t, rec)
	assert.Equal(t, 2, resp.Step)
	assert.Equal(t, 2, resp.CurrentStep)

	getReq := httptest.NewRequest(http.MethodGet, "/wizard/step/1", nil)
	getReq.Header.Set(ownerHeader, owner.String())
	rec = doRequest(t, s, getReq)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeStep(t, rec).Data.(map[string]any)
	assert.Equal(t, "Jane", data["first_name"])
}

func TestWizardStepValidationFailure(t *testing.T) {
	s := newTestServer(newFakeStore())
	owner := uuid.New()
	startWizard(t, s, owner)

	rec := doRequest(t, s, formRequest(t, "/wizard/step/1", owner, url.Values{
		"first_name": {""},
		"last_name":  {"Roe"},
		"email":      {"not-an-email"},
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeStep(t, rec)
	assert.Contains(t, resp.Errors, "first_name")
	assert.Contains(t, resp.Errors, "email")
	assert.Equal(t, 1, resp.CurrentStep, "step does not advance on validation failure")
}

func TestWizardStepRejectsInvalidNumber(t *testing.T) {
	s := newTestServer(newFakeStore())
	owner := uuid.New()
	startWizard(t, s, owner)

	for _, path := range []string{"/wizard/step/0", "/wizard/step/10", "/wizard/step/x"} {
		rec := doRequest(t, s, formRequest(t, path, owner, url.Values{}))
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestWizardStepWithoutSession(t *testing.T) {
	s := newTestServer(newFakeStore())
	rec := doRequest(t, s, formRequest(t, "/wizard/step/1", uuid.New(), url.Values{}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWizardGoto(t *testing.T) {
	s := newTestServer(newFakeStore())
	owner := uuid.New()
	startWizard(t, s, owner)

	rec := doRequest(t, s, formRequest(t, "/wizard/goto/5", owner, url.Values{}))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeStep(t, rec)
	assert.Equal(t, 5, resp.Step)
	assert.Equal(t, 5, resp.CurrentStep)
}

func submitMinimalWizard(t *testing.T, s *Server, owner uuid.UUID) {
	t.Helper()
	rec := doRequest(t, s, formRequest(t, "/wizard/step/1", owner, url.Values{
		"first_name": {"Jane"},
		"last_name":  {"Roe"},
		"email":      {"jane@example.com"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestWizardCommitCreatesResume(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)
	owner := uuid.New()
	startWizard(t, s, owner)
	submitMinimalWizard(t, s, owner)

	rec := doRequest(t, s, formRequest(t, "/wizard/commit", owner, url.Values{}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CommitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "committed", resp.Status)
	require.Len(t, store.resumes, 1)

	// The session is gone after a successful commit.
	rec = doRequest(t, s, formRequest(t, "/wizard/step/1", owner, url.Values{}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWizardCommitFailurePreservesSession(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("connection refused")
	s := newTestServer(store)
	owner := uuid.New()
	startWizard(t, s, owner)
	submitMinimalWizard(t, s, owner)

	rec := doRequest(t, s, formRequest(t, "/wizard/commit", owner, url.Values{}))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// Session and draft survive the failed commit.
	getReq := httptest.NewRequest(http.MethodGet, "/wizard/step/1", nil)
	getReq.Header.Set(ownerHeader, owner.String())
	rec = doRequest(t, s, getReq)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeStep(t, rec).Data.(map[string]any)
	assert.Equal(t, "Jane", data["first_name"])
}

func TestWizardEditHydratesFromCommitted(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)
	owner := uuid.New()

	draft := types.NewResumeDraft()
	draft.PersonalInfo.FirstName = "Sam"
	draft.PersonalInfo.LastName = "Lee"
	draft.PersonalInfo.Email = "sam@example.com"
	resumeID, err := store.CreateResume(context.Background(), owner, "classic", draft)
	require.NoError(t, err)

	rec := doRequest(t, s, formRequest(t, "/wizard/edit/"+resumeID.String(), owner, url.Values{}))
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeStep(t, rec)
	assert.Equal(t, 1, resp.CurrentStep)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Sam", data["first_name"])

	// Committing the edit session updates in place.
	submitMinimalWizard(t, s, owner)
	rec = doRequest(t, s, formRequest(t, "/wizard/commit", owner, url.Values{}))
	require.Equal(t, http.StatusCreated, rec.Code)
	var commit CommitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &commit))
	assert.Equal(t, resumeID.String(), commit.ResumeID)
	assert.Equal(t, "Jane", store.resumes[resumeID].Draft.PersonalInfo.FirstName)
}

func TestWizardEditDeniesForeignResume(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)

	resumeID, err := store.CreateResume(context.Background(), uuid.New(), "classic", types.NewResumeDraft())
	require.NoError(t, err)

	rec := doRequest(t, s, formRequest(t, "/wizard/edit/"+resumeID.String(), uuid.New(), url.Values{}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWizardAbandon(t *testing.T) {
	s := newTestServer(newFakeStore())
	owner := uuid.New()
	startWizard(t, s, owner)

	rec := doRequest(t, s, formRequest(t, "/wizard/abandon", owner, url.Values{}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, formRequest(t, "/wizard/step/1", owner, url.Values{}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
