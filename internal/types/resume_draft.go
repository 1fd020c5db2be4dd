package types

// Skill type values accepted in the canonical draft.
const (
	SkillTypeTechnical = "technical"
	SkillTypeSoft      = "soft"
	SkillTypeLanguage  = "language"
	SkillTypeTool      = "tool"
)

// ValidSkillType reports whether t is one of the accepted skill types.
func ValidSkillType(t string) bool {
	switch t {
	case SkillTypeTechnical, SkillTypeSoft, SkillTypeLanguage, SkillTypeTool:
		return true
	}
	return false
}

// ResumeDraft is the canonical in-progress resume shape shared by all wizard
// steps. The JSON tags are the session wire format and must remain stable
// across step transitions and server restarts.
//
// Invariants: date fields are nil or ISO YYYY-MM-DD strings; URL fields are
// nil or absolute scheme-qualified URLs (mailto: for emails).
type ResumeDraft struct {
	PersonalInfo   PersonalInfo    `json:"personal_info"`
	Summary        string          `json:"summary"`
	Skills         []Skill         `json:"skills"`
	Experiences    []Experience    `json:"experiences"`
	Educations     []Education     `json:"educations"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Languages      []Language      `json:"languages"`
	CustomSections []CustomSection `json:"custom_sections"`
}

// NewResumeDraft returns a draft with all collections initialized.
func NewResumeDraft() ResumeDraft {
	return ResumeDraft{
		Skills:         []Skill{},
		Experiences:    []Experience{},
		Educations:     []Education{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Languages:      []Language{},
		CustomSections: []CustomSection{},
	}
}

// PersonalInfo holds contact and identity fields.
type PersonalInfo struct {
	FirstName    string  `json:"first_name"`
	MiddleName   string  `json:"middle_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Location     string  `json:"location"`
	LinkedInURL  *string `json:"linkedin_url"`
	GitHubURL    *string `json:"github_url"`
	PortfolioURL *string `json:"portfolio_url"`
}

// Skill is one individual skill, never a category label.
type Skill struct {
	SkillName        string `json:"skill_name"`
	SkillType        string `json:"skill_type"`        // technical, soft, language, tool
	ProficiencyLevel int    `json:"proficiency_level"` // 0-100
}

// BulletPoint is one display-ordered bullet under an experience or project.
type BulletPoint struct {
	Description string `json:"description"`
}

// Experience is one work history entry.
type Experience struct {
	JobTitle     string        `json:"job_title"`
	CompanyName  string        `json:"company_name"`
	Location     string        `json:"location"`
	StartDate    *string       `json:"start_date"`
	EndDate      *string       `json:"end_date"`
	IsCurrent    bool          `json:"is_current"`
	BulletPoints []BulletPoint `json:"bullet_points"`
}

// Education is one degree or program entry.
type Education struct {
	InstitutionName string  `json:"institution_name"`
	DegreeType      string  `json:"degree_type"`
	FieldOfStudy    string  `json:"field_of_study"`
	Location        string  `json:"location"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	GPA             string  `json:"gpa"`
}

// Project is one project entry.
type Project struct {
	ProjectName  string        `json:"project_name"`
	Description  string        `json:"description"`
	Technologies string        `json:"technologies"`
	ProjectURL   *string       `json:"project_url"`
	StartDate    *string       `json:"start_date"`
	EndDate      *string       `json:"end_date"`
	BulletPoints []BulletPoint `json:"bullet_points"`
}

// Certification is one certification entry.
type Certification struct {
	CertificationName   string  `json:"certification_name"`
	IssuingOrganization string  `json:"issuing_organization"`
	IssueDate           *string `json:"issue_date"`
	ExpirationDate      *string `json:"expiration_date"`
	CredentialID        string  `json:"credential_id"`
	CredentialURL       *string `json:"credential_url"`
}

// Language is one spoken-language entry.
type Language struct {
	LanguageName     string `json:"language_name"`
	ProficiencyLevel string `json:"proficiency_level"`
}

// CustomSection is a free-form additional section. BulletPoints is a single
// newline-joined string, unlike experience/project bullets. This divergence
// is part of the canonical shape, not one to silently unify.
type CustomSection struct {
	SectionTitle string `json:"section_title"`
	BulletPoints string `json:"bullet_points"`
}
