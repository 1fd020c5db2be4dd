package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftView(t *testing.T) {
	draft := NewResumeDraft()
	draft.PersonalInfo.FirstName = "Ada"

	view := DraftView(draft, "modern")

	assert.False(t, view.Committed)
	assert.Nil(t, view.ID)
	assert.Equal(t, "Ada", view.Resume.PersonalInfo.FirstName)
}

func TestCommittedView(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	created := time.Now()

	view := CommittedView(id, owner, "classic", created, NewResumeDraft())

	assert.True(t, view.Committed)
	require.NotNil(t, view.ID)
	assert.Equal(t, id, *view.ID)
	require.NotNil(t, view.OwnerID)
	assert.Equal(t, owner, *view.OwnerID)
}

func TestResumeDraftWireFormat(t *testing.T) {
	data, err := json.Marshal(NewResumeDraft())
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))

	for _, key := range []string{"personal_info", "summary", "skills", "experiences", "educations", "projects", "certifications", "languages", "custom_sections"} {
		assert.Contains(t, m, key)
	}
	// Collections marshal as empty arrays, never null.
	assert.JSONEq(t, `[]`, string(m["skills"]))
	assert.JSONEq(t, `[]`, string(m["custom_sections"]))
}

func TestEnsureLists(t *testing.T) {
	var sr StructuredResume
	sr.EnsureLists()

	assert.NotNil(t, sr.PersonalInformation)
	assert.NotNil(t, sr.Skills)
	assert.NotNil(t, sr.WorkExperience)
	assert.NotNil(t, sr.AdditionalSections)
}
