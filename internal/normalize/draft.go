package normalize

import (
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Draft converts untrusted parser output into the canonical draft shape.
// The same scalar normalizers are applied here and to manual wizard input,
// so both paths land in an identical ResumeDraft.
func Draft(sr types.StructuredResume) types.ResumeDraft {
	sr.EnsureLists()

	draft := types.NewResumeDraft()
	draft.PersonalInfo = personalInfo(sr.PersonalInformation)
	draft.Summary = SafeStrip(sr.ProfessionalSummary, "")

	for _, item := range sr.Skills {
		name := SafeStrip(lookupField(item, "skillname", "name", "skill"), "")
		if name == "" {
			continue
		}
		draft.Skills = append(draft.Skills, types.Skill{
			SkillName:        name,
			SkillType:        SkillType(lookupField(item, "skilltype", "type", "category")),
			ProficiencyLevel: ClampProficiency(lookupField(item, "proficiencylevel", "proficiency", "level")),
		})
	}

	for _, item := range sr.WorkExperience {
		title := SafeStrip(lookupField(item, "jobtitle", "title", "position", "role"), "")
		if title == "" {
			continue
		}
		draft.Experiences = append(draft.Experiences, types.Experience{
			JobTitle:     title,
			CompanyName:  SafeStrip(lookupField(item, "companyname", "company", "employer"), ""),
			Location:     FormatLocation(lookupField(item, "location")),
			StartDate:    FormatDate(lookupField(item, "startdate", "from")),
			EndDate:      FormatDate(lookupField(item, "enddate", "to")),
			IsCurrent:    asBool(lookupField(item, "iscurrent", "current", "currentjob")),
			BulletPoints: bulletPoints(lookupField(item, "bulletpoints", "responsibilities", "highlights", "achievements")),
		})
	}

	for _, item := range sr.Education {
		inst := SafeStrip(lookupField(item, "institutionname", "institution", "school", "university"), "")
		if inst == "" {
			continue
		}
		draft.Educations = append(draft.Educations, types.Education{
			InstitutionName: inst,
			DegreeType:      strings.ToLower(SafeStrip(lookupField(item, "degreetype", "degree"), "")),
			FieldOfStudy:    SafeStrip(lookupField(item, "fieldofstudy", "major", "field"), ""),
			Location:        FormatLocation(lookupField(item, "location")),
			StartDate:       FormatDate(lookupField(item, "startdate", "from")),
			EndDate:         FormatDate(lookupField(item, "enddate", "to", "graduationdate")),
			GPA:             stringify(lookupField(item, "gpa", "grade"), ""),
		})
	}

	for _, item := range sr.Projects {
		name := SafeStrip(lookupField(item, "projectname", "name", "title"), "")
		if name == "" {
			continue
		}
		draft.Projects = append(draft.Projects, types.Project{
			ProjectName:  name,
			Description:  SafeStrip(lookupField(item, "description", "summary"), ""),
			Technologies: SafeStrip(lookupField(item, "technologiesused", "technologies", "techstack"), ""),
			ProjectURL:   FormatURL(lookupField(item, "projecturl", "url", "link")),
			StartDate:    FormatDate(lookupField(item, "startdate", "from")),
			EndDate:      FormatDate(lookupField(item, "enddate", "to")),
			BulletPoints: bulletPoints(lookupField(item, "bulletpoints", "highlights", "details")),
		})
	}

	for _, item := range sr.Certifications {
		name := SafeStrip(lookupField(item, "certificationname", "name", "title", "certification"), "")
		if name == "" {
			continue
		}
		draft.Certifications = append(draft.Certifications, types.Certification{
			CertificationName:   name,
			IssuingOrganization: SafeStrip(lookupField(item, "issuingorganization", "issuer", "organization"), ""),
			IssueDate:           FormatDate(lookupField(item, "issuedate", "date")),
			ExpirationDate:      FormatDate(lookupField(item, "expirationdate", "expirydate", "expires")),
			CredentialID:        stringify(lookupField(item, "credentialid"), ""),
			CredentialURL:       FormatURL(lookupField(item, "credentialurl", "url", "link")),
		})
	}

	for _, item := range sr.Languages {
		name := SafeStrip(lookupField(item, "languagename", "language", "name"), "")
		if name == "" {
			continue
		}
		draft.Languages = append(draft.Languages, types.Language{
			LanguageName:     name,
			ProficiencyLevel: strings.ToLower(SafeStrip(lookupField(item, "proficiencylevel", "proficiency", "level"), "")),
		})
	}

	for _, item := range sr.AdditionalSections {
		title := SafeStrip(lookupField(item, "sectiontitle", "title", "name", "section"), "")
		if title == "" {
			continue
		}
		draft.CustomSections = append(draft.CustomSections, types.CustomSection{
			SectionTitle: title,
			BulletPoints: joinedBullets(lookupField(item, "bulletpoints", "content", "items", "details")),
		})
	}

	return draft
}

func personalInfo(m map[string]any) types.PersonalInfo {
	return types.PersonalInfo{
		FirstName:    SafeStrip(lookupField(m, "firstname", "givenname"), ""),
		MiddleName:   SafeStrip(lookupField(m, "middlename"), ""),
		LastName:     SafeStrip(lookupField(m, "lastname", "surname", "familyname"), ""),
		Email:        SafeStrip(lookupField(m, "email", "emailaddress"), ""),
		Phone:        SafeStrip(lookupField(m, "phonenumber", "phone", "mobile"), ""),
		Location:     FormatLocation(lookupField(m, "location", "address", "city")),
		LinkedInURL:  FormatURL(lookupField(m, "linkedinurl", "linkedin")),
		GitHubURL:    FormatURL(lookupField(m, "githuburl", "github")),
		PortfolioURL: FormatURL(lookupField(m, "portfoliourl", "portfolio", "website", "websiteurl")),
	}
}

// SkillType maps a provider or form skill type onto the accepted domain,
// defaulting to technical.
func SkillType(v any) string {
	t := strings.ToLower(SafeStrip(v, ""))
	if types.ValidSkillType(t) {
		return t
	}
	switch {
	case strings.Contains(t, "soft"), strings.Contains(t, "interpersonal"):
		return types.SkillTypeSoft
	case strings.Contains(t, "lang"):
		return types.SkillTypeLanguage
	case strings.Contains(t, "tool"), strings.Contains(t, "software"):
		return types.SkillTypeTool
	default:
		return types.SkillTypeTechnical
	}
}

// bulletPoints collects an ordered bullet list from a provider value that
// may be a list of strings or a list of {description} objects. Order is
// display order; duplicates are preserved.
func bulletPoints(v any) []types.BulletPoint {
	bullets := []types.BulletPoint{}
	items, ok := v.([]any)
	if !ok {
		if s := SafeStrip(v, ""); s != "" {
			bullets = append(bullets, types.BulletPoint{Description: s})
		}
		return bullets
	}
	for _, item := range items {
		switch b := item.(type) {
		case string:
			if s := strings.TrimSpace(b); s != "" {
				bullets = append(bullets, types.BulletPoint{Description: s})
			}
		case map[string]any:
			if s := SafeStrip(lookupField(b, "description", "text"), ""); s != "" {
				bullets = append(bullets, types.BulletPoint{Description: s})
			}
		}
	}
	return bullets
}

// joinedBullets renders custom-section content as one newline-joined string.
func joinedBullets(v any) string {
	switch items := v.(type) {
	case string:
		return strings.TrimSpace(items)
	case []any:
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if s := SafeStrip(item, ""); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

// ClampProficiency coerces a proficiency value into [0, 100], defaulting to
// the midpoint when missing or non-numeric.
func ClampProficiency(v any) int {
	return clampInt(v, 50, 0, 100)
}
