package wizard

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/types"
)

func startSession(t *testing.T) (*Store, *Session) {
	t.Helper()
	store := NewStore()
	sess := store.Start(uuid.New(), types.NewResumeDraft(), "modern")
	return store, sess
}

func TestSubmitPersonalInfoAdvances(t *testing.T) {
	_, sess := startSession(t)
	m := NewMachine()

	res, err := m.Submit(sess, StepPersonalInfo, Form{
		"first_name":   "John",
		"middle_name":  "A",
		"last_name":    "Doe",
		"email":        "john@example.com",
		"phone":        "(555) 123-4567",
		"linkedin_url": "linkedin.com/in/johndoe",
		"github_url":   "",
	})
	require.NoError(t, err)

	assert.Empty(t, res.Errors)
	assert.Equal(t, StepSummary, res.Step)
	assert.Equal(t, StepSummary, sess.CurrentStep)
	assert.Equal(t, "John", sess.Draft.PersonalInfo.FirstName)
	require.NotNil(t, sess.Draft.PersonalInfo.LinkedInURL)
	assert.Equal(t, "https://linkedin.com/in/johndoe", *sess.Draft.PersonalInfo.LinkedInURL)
	assert.Nil(t, sess.Draft.PersonalInfo.GitHubURL)
}

func TestSubmitInvalidPayloadLeavesSessionUntouched(t *testing.T) {
	_, sess := startSession(t)
	m := NewMachine()

	_, err := m.Submit(sess, StepPersonalInfo, Form{
		"first_name": "Jane", "last_name": "Roe", "email": "jane@example.com",
	})
	require.NoError(t, err)

	before, err := json.Marshal(sess.Draft)
	require.NoError(t, err)
	stepBefore := sess.CurrentStep

	res, err := m.Submit(sess, StepPersonalInfo, Form{
		"first_name": "", "last_name": "Roe", "email": "not-an-email",
	})
	require.NoError(t, err)

	assert.Contains(t, res.Errors, "first_name")
	assert.Contains(t, res.Errors, "email")
	assert.Equal(t, StepPersonalInfo, res.Step)

	after, err := json.Marshal(sess.Draft)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "invalid submission must not touch the draft")
	assert.Equal(t, stepBefore, sess.CurrentStep)
}

func TestSubmitExperienceBulletScanStopsAtBlank(t *testing.T) {
	_, sess := startSession(t)
	m := NewMachine()

	res, err := m.Submit(sess, StepExperience, Form{
		"experience_count": "1",
		"job_title_0":      "Engineer",
		"bullet_count_0":   "3",
		"bullet_0_0":       "Did X",
		"bullet_0_1":       "",
		"bullet_0_2":       "Did Z",
	})
	require.NoError(t, err)
	require.Empty(t, res.Errors)

	require.Len(t, sess.Draft.Experiences, 1)
	bullets := sess.Draft.Experiences[0].BulletPoints
	require.Len(t, bullets, 1, "scan stops at the first blank slot")
	assert.Equal(t, "Did X", bullets[0].Description)
}

func TestSubmitExperienceAnchorSkip(t *testing.T) {
	_, sess := startSession(t)
	m := NewMachine()

	_, err := m.Submit(sess, StepExperience, Form{
		"experience_count": "3",
		"job_title_0":      "",
		"company_name_0":   "Orphaned Co",
		"job_title_1":      "Engineer",
		"company_name_1":   "Acme",
		"start_date_1":     "Jan 2021",
		"end_date_1":       "2023-06",
		"job_title_2":      "Manager",
		"is_current_2":     "on",
		"end_date_2":       "2024-01-01",
	})
	require.NoError(t, err)

	require.Len(t, sess.Draft.Experiences, 2, "blank anchor skips the row")
	first := sess.Draft.Experiences[0]
	assert.Equal(t, "Engineer", first.JobTitle)
	require.NotNil(t, first.StartDate)
	assert.Equal(t, "2021-01-01", *first.StartDate)
	require.NotNil(t, first.EndDate)
	assert.Equal(t, "2023-06-01", *first.EndDate)

	second := sess.Draft.Experiences[1]
	assert.True(t, second.IsCurrent)
	assert.Nil(t, second.EndDate, "current role clears the end date")
}

func TestSubmitSkillsNormalizesTypeAndProficiency(t *testing.T) {
	_, sess := startSession(t)
	m := NewMachine()

	_, err := m.Submit(sess, StepSkills, Form{
		"skill_count":         "2",
		"skill_name_0":        "Go",
		"skill_type_0":        "Programming Language",
		"proficiency_level_0": "250",
		"skill_name_1":        "Mentoring",
		"skill_type_1":        "soft",
		"proficiency_level_1": "",
	})
	require.NoError(t, err)

	require.Len(t, sess.Draft.Skills, 2)
	assert.Equal(t, types.SkillTypeLanguage, sess.Draft.Skills[0].SkillType)
	assert.Equal(t, 100, sess.Draft.Skills[0].ProficiencyLevel)
	assert.Equal(t, types.SkillTypeSoft, sess.Draft.Skills[1].SkillType)
	assert.Equal(t, 50, sess.Draft.Skills[1].ProficiencyLevel)
}

func TestSubmitOverwritesOnlyItsSection(t *testing.T) {
	_, sess := startSession(t)
	sess.Draft.Summary = "Kept as-is."
	sess.Draft.Skills = []types.Skill{{SkillName: "Go", SkillType: types.SkillTypeTechnical, ProficiencyLevel: 90}}
	m := NewMachine()

	_, err := m.Submit(sess, StepLanguages, Form{
		"language_count":      "1",
		"language_name_0":     "Spanish",
		"proficiency_level_0": "Fluent",
	})
	require.NoError(t, err)

	assert.Equal(t, "Kept as-is.", sess.Draft.Summary)
	require.Len(t, sess.Draft.Skills, 1)
	require.Len(t, sess.Draft.Languages, 1)
	assert.Equal(t, "fluent", sess.Draft.Languages[0].ProficiencyLevel)
}

func TestSubmitLastStepReportsDone(t *testing.T) {
	_, sess := startSession(t)
	m := NewMachine()

	res, err := m.Submit(sess, StepCustomSections, Form{
		"section_count":     "1",
		"section_title_0":   "Volunteering",
		"section_content_0": "Food bank\n\n  Coaching  \n",
	})
	require.NoError(t, err)

	assert.True(t, res.Done)
	require.Len(t, sess.Draft.CustomSections, 1)
	assert.Equal(t, "Food bank\nCoaching", sess.Draft.CustomSections[0].BulletPoints)
}

func TestSubmitInvalidStep(t *testing.T) {
	_, sess := startSession(t)
	m := NewMachine()

	_, err := m.Submit(sess, Step(12), Form{})
	var invalid *InvalidStepError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 12, invalid.Step)
}

func TestGotoNeverValidates(t *testing.T) {
	_, sess := startSession(t)
	sess.CurrentStep = StepProjects
	m := NewMachine()

	require.NoError(t, m.Goto(sess, StepPersonalInfo))
	assert.Equal(t, StepPersonalInfo, sess.CurrentStep)

	err := m.Goto(sess, Step(0))
	var invalid *InvalidStepError
	require.ErrorAs(t, err, &invalid)
}

func TestStepViewDefaultsOneEmptyRow(t *testing.T) {
	draft := types.NewResumeDraft()

	for _, step := range []Step{StepSkills, StepExperience, StepEducation, StepProjects, StepCertifications, StepLanguages, StepCustomSections} {
		view := StepView(draft, step)
		data, err := json.Marshal(view)
		require.NoError(t, err)

		var rows []any
		require.NoError(t, json.Unmarshal(data, &rows), "repeated step %s renders a list", step)
		assert.Len(t, rows, 1, "empty section renders one blank row")
	}
}

func TestStepViewReturnsExistingRows(t *testing.T) {
	draft := types.NewResumeDraft()
	draft.Skills = []types.Skill{{SkillName: "Go"}, {SkillName: "SQL"}}

	view, ok := StepView(draft, StepSkills).([]types.Skill)
	require.True(t, ok)
	assert.Len(t, view, 2)
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()
	owner := uuid.New()

	assert.Nil(t, store.Get(owner))

	sess := store.Start(owner, types.NewResumeDraft(), "classic")
	assert.Equal(t, FirstStep, sess.CurrentStep)
	assert.Same(t, sess, store.Get(owner))

	replaced := store.Start(owner, types.NewResumeDraft(), "modern")
	assert.NotSame(t, sess, replaced, "starting again replaces the session")

	store.Clear(owner)
	assert.Nil(t, store.Get(owner))
}

func TestStoreSessionReportsMissingOwner(t *testing.T) {
	store := NewStore()
	owner := uuid.New()

	_, err := store.Session(owner)
	var noSess *NoSessionError
	require.ErrorAs(t, err, &noSess)
	assert.Equal(t, owner.String(), noSess.Owner)

	started := store.Start(owner, types.NewResumeDraft(), "classic")
	sess, err := store.Session(owner)
	require.NoError(t, err)
	assert.Same(t, started, sess)
}
