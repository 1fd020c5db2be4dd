package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/types"
)

func ownedGet(t *testing.T, s *Server, path string, owner uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(ownerHeader, owner.String())
	return doRequest(t, s, req)
}

func TestGetResume(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)
	owner := uuid.New()

	draft := types.NewResumeDraft()
	draft.PersonalInfo.FirstName = "Sam"
	resumeID, err := store.CreateResume(context.Background(), owner, "classic", draft)
	require.NoError(t, err)

	rec := ownedGet(t, s, "/resumes/"+resumeID.String(), owner)
	require.Equal(t, http.StatusOK, rec.Code)

	var view types.ResumeView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.True(t, view.Committed)
	require.NotNil(t, view.ID)
	assert.Equal(t, resumeID, *view.ID)
	assert.Equal(t, "Sam", view.Resume.PersonalInfo.FirstName)
}

func TestGetResumeOwnership(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)

	resumeID, err := store.CreateResume(context.Background(), uuid.New(), "classic", types.NewResumeDraft())
	require.NoError(t, err)

	rec := ownedGet(t, s, "/resumes/"+resumeID.String(), uuid.New())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetResumeBadID(t *testing.T) {
	s := newTestServer(newFakeStore())
	rec := ownedGet(t, s, "/resumes/not-a-uuid", uuid.New())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListResumes(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)
	owner := uuid.New()

	_, err := store.CreateResume(context.Background(), owner, "classic", types.NewResumeDraft())
	require.NoError(t, err)
	_, err = store.CreateResume(context.Background(), uuid.New(), "classic", types.NewResumeDraft())
	require.NoError(t, err)

	rec := ownedGet(t, s, "/resumes", owner)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Resumes []json.RawMessage `json:"resumes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Resumes, 1, "only the owner's resumes are listed")
}

func TestListResumesEmpty(t *testing.T) {
	s := newTestServer(newFakeStore())
	rec := ownedGet(t, s, "/resumes", uuid.New())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"resumes": []}`, rec.Body.String())
}

func TestDeleteResume(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)
	owner := uuid.New()

	resumeID, err := store.CreateResume(context.Background(), owner, "classic", types.NewResumeDraft())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/resumes/"+resumeID.String(), nil)
	req.Header.Set(ownerHeader, owner.String())
	rec := doRequest(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.resumes)

	rec = ownedGet(t, s, "/resumes/"+resumeID.String(), owner)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
