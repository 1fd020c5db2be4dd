package wizard

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-wizard/internal/normalize"
	"github.com/jonathan/resume-wizard/internal/types"
)

// ValidationErrors maps a form field name to a human-readable message.
type ValidationErrors map[string]string

// SubmitResult reports the outcome of one step submission.
type SubmitResult struct {
	// Step is the step the caller should render next: the submitted step
	// again on validation failure, otherwise the following one.
	Step Step `json:"step"`

	// Errors is non-empty only on validation failure.
	Errors ValidationErrors `json:"errors,omitempty"`

	// Done is true once the last step was accepted; the session is ready
	// to commit.
	Done bool `json:"done"`
}

// Machine applies step submissions to a session draft. Submissions are
// validated and normalized per section; an invalid submission never touches
// the stored draft and never advances the step.
type Machine struct {
	validate *validator.Validate
}

// NewMachine creates a step machine with a shared validator instance.
func NewMachine() *Machine {
	return &Machine{validate: validator.New()}
}

// Submit validates form against step, overwrites exactly that section of the
// session draft, and advances the session. On validation failure the session
// is left unchanged and the result carries per-field errors.
func (m *Machine) Submit(sess *Session, step Step, form Form) (*SubmitResult, error) {
	if !step.Valid() {
		return nil, &InvalidStepError{Step: int(step)}
	}

	// Builders mutate a copy; every builder replaces its whole section,
	// so the stored draft's slices are never written through.
	draft := sess.Draft
	errs := m.buildSection(&draft, step, form)
	if len(errs) > 0 {
		return &SubmitResult{Step: step, Errors: errs}, nil
	}

	sess.Draft = draft
	if step == LastStep {
		sess.CurrentStep = LastStep
		return &SubmitResult{Step: LastStep, Done: true}, nil
	}
	sess.CurrentStep = step + 1
	return &SubmitResult{Step: step + 1}, nil
}

// Goto repositions the session without validating anything. Stored draft
// state is read-only under navigation.
func (m *Machine) Goto(sess *Session, step Step) error {
	if !step.Valid() {
		return &InvalidStepError{Step: int(step)}
	}
	sess.CurrentStep = step
	return nil
}

func (m *Machine) buildSection(draft *types.ResumeDraft, step Step, form Form) ValidationErrors {
	switch step {
	case StepPersonalInfo:
		return m.buildPersonalInfo(draft, form)
	case StepSummary:
		draft.Summary = form.Get("summary")
	case StepSkills:
		buildSkills(draft, form)
	case StepExperience:
		buildExperiences(draft, form)
	case StepEducation:
		buildEducations(draft, form)
	case StepProjects:
		buildProjects(draft, form)
	case StepCertifications:
		buildCertifications(draft, form)
	case StepLanguages:
		buildLanguages(draft, form)
	case StepCustomSections:
		buildCustomSections(draft, form)
	}
	return nil
}

// personalInfoPayload carries the only hard-required fields in the wizard.
type personalInfoPayload struct {
	FirstName string `validate:"required,min=1"`
	LastName  string `validate:"required,min=1"`
	Email     string `validate:"required,email"`
}

func (m *Machine) buildPersonalInfo(draft *types.ResumeDraft, form Form) ValidationErrors {
	payload := personalInfoPayload{
		FirstName: form.Get("first_name"),
		LastName:  form.Get("last_name"),
		Email:     form.Get("email"),
	}
	if err := m.validate.Struct(payload); err != nil {
		errs := ValidationErrors{}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				switch fe.Field() {
				case "FirstName":
					errs["first_name"] = "first name is required"
				case "LastName":
					errs["last_name"] = "last name is required"
				case "Email":
					errs["email"] = "a valid email address is required"
				}
			}
		}
		if len(errs) == 0 {
			errs["personal_info"] = "invalid personal information"
		}
		return errs
	}

	draft.PersonalInfo = types.PersonalInfo{
		FirstName:    payload.FirstName,
		MiddleName:   form.Get("middle_name"),
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        form.Get("phone"),
		Location:     normalize.FormatLocation(form.Get("location")),
		LinkedInURL:  normalize.FormatURL(form.Get("linkedin_url")),
		GitHubURL:    normalize.FormatURL(form.Get("github_url")),
		PortfolioURL: normalize.FormatURL(form.Get("portfolio_url")),
	}
	return nil
}

func buildSkills(draft *types.ResumeDraft, form Form) {
	skills := []types.Skill{}
	for i := 0; i < form.Count("skill_count"); i++ {
		name := form.indexed("skill_name", i)
		if name == "" {
			continue
		}
		skills = append(skills, types.Skill{
			SkillName:        name,
			SkillType:        normalize.SkillType(form.indexed("skill_type", i)),
			ProficiencyLevel: normalize.ClampProficiency(form.indexed("proficiency_level", i)),
		})
	}
	draft.Skills = skills
}

func buildExperiences(draft *types.ResumeDraft, form Form) {
	experiences := []types.Experience{}
	for i := 0; i < form.Count("experience_count"); i++ {
		title := form.indexed("job_title", i)
		if title == "" {
			continue
		}
		exp := types.Experience{
			JobTitle:     title,
			CompanyName:  form.indexed("company_name", i),
			Location:     normalize.FormatLocation(form.indexed("location", i)),
			StartDate:    normalize.FormatDate(form.indexed("start_date", i)),
			EndDate:      normalize.FormatDate(form.indexed("end_date", i)),
			IsCurrent:    form.indexedBool("is_current", i),
			BulletPoints: form.collectBullets(i),
		}
		if exp.IsCurrent {
			exp.EndDate = nil
		}
		experiences = append(experiences, exp)
	}
	draft.Experiences = experiences
}

func buildEducations(draft *types.ResumeDraft, form Form) {
	educations := []types.Education{}
	for i := 0; i < form.Count("education_count"); i++ {
		inst := form.indexed("institution_name", i)
		if inst == "" {
			continue
		}
		educations = append(educations, types.Education{
			InstitutionName: inst,
			DegreeType:      strings.ToLower(form.indexed("degree_type", i)),
			FieldOfStudy:    form.indexed("field_of_study", i),
			Location:        normalize.FormatLocation(form.indexed("location", i)),
			StartDate:       normalize.FormatDate(form.indexed("start_date", i)),
			EndDate:         normalize.FormatDate(form.indexed("end_date", i)),
			GPA:             form.indexed("gpa", i),
		})
	}
	draft.Educations = educations
}

func buildProjects(draft *types.ResumeDraft, form Form) {
	projects := []types.Project{}
	for i := 0; i < form.Count("project_count"); i++ {
		name := form.indexed("project_name", i)
		if name == "" {
			continue
		}
		projects = append(projects, types.Project{
			ProjectName:  name,
			Description:  form.indexed("description", i),
			Technologies: form.indexed("technologies", i),
			ProjectURL:   normalize.FormatURL(form.indexed("project_url", i)),
			StartDate:    normalize.FormatDate(form.indexed("start_date", i)),
			EndDate:      normalize.FormatDate(form.indexed("end_date", i)),
			BulletPoints: form.collectBullets(i),
		})
	}
	draft.Projects = projects
}

func buildCertifications(draft *types.ResumeDraft, form Form) {
	certifications := []types.Certification{}
	for i := 0; i < form.Count("certification_count"); i++ {
		name := form.indexed("certification_name", i)
		if name == "" {
			continue
		}
		certifications = append(certifications, types.Certification{
			CertificationName:   name,
			IssuingOrganization: form.indexed("issuing_organization", i),
			IssueDate:           normalize.FormatDate(form.indexed("issue_date", i)),
			ExpirationDate:      normalize.FormatDate(form.indexed("expiration_date", i)),
			CredentialID:        form.indexed("credential_id", i),
			CredentialURL:       normalize.FormatURL(form.indexed("credential_url", i)),
		})
	}
	draft.Certifications = certifications
}

func buildLanguages(draft *types.ResumeDraft, form Form) {
	languages := []types.Language{}
	for i := 0; i < form.Count("language_count"); i++ {
		name := form.indexed("language_name", i)
		if name == "" {
			continue
		}
		languages = append(languages, types.Language{
			LanguageName:     name,
			ProficiencyLevel: strings.ToLower(form.indexed("proficiency_level", i)),
		})
	}
	draft.Languages = languages
}

func buildCustomSections(draft *types.ResumeDraft, form Form) {
	sections := []types.CustomSection{}
	for i := 0; i < form.Count("section_count"); i++ {
		title := form.indexed("section_title", i)
		if title == "" {
			continue
		}
		sections = append(sections, types.CustomSection{
			SectionTitle: title,
			BulletPoints: joinLines(form.indexed("section_content", i)),
		})
	}
	draft.CustomSections = sections
}

// joinLines re-joins a textarea value as trimmed, non-empty lines.
func joinLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, "\n")
}

// StepView returns the draft section bound to step for rendering. Repeated
// steps with no rows render one empty row so the form never has zero inputs.
func StepView(draft types.ResumeDraft, step Step) any {
	switch step {
	case StepPersonalInfo:
		return draft.PersonalInfo
	case StepSummary:
		return draft.Summary
	case StepSkills:
		if len(draft.Skills) == 0 {
			return []types.Skill{{}}
		}
		return draft.Skills
	case StepExperience:
		if len(draft.Experiences) == 0 {
			return []types.Experience{{BulletPoints: []types.BulletPoint{}}}
		}
		return draft.Experiences
	case StepEducation:
		if len(draft.Educations) == 0 {
			return []types.Education{{}}
		}
		return draft.Educations
	case StepProjects:
		if len(draft.Projects) == 0 {
			return []types.Project{{BulletPoints: []types.BulletPoint{}}}
		}
		return draft.Projects
	case StepCertifications:
		if len(draft.Certifications) == 0 {
			return []types.Certification{{}}
		}
		return draft.Certifications
	case StepLanguages:
		if len(draft.Languages) == 0 {
			return []types.Language{{}}
		}
		return draft.Languages
	case StepCustomSections:
		if len(draft.CustomSections) == 0 {
			return []types.CustomSection{{}}
		}
		return draft.CustomSections
	default:
		return nil
	}
}
