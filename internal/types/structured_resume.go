// Package types defines the data shapes shared across the resume wizard:
// the untrusted parser output, the canonical session draft, and the
// read-side view projection.
package types

// StructuredResume is the parser output before normalization. Top-level keys
// are fixed by the parser contract, but field names inside each object are
// provider-defined and values may be missing, null, or wrong-typed. Treat
// every value in here as untrusted input.
type StructuredResume struct {
	PersonalInformation map[string]any   `json:"Personal Information"`
	ProfessionalSummary any              `json:"Professional Summary"`
	Skills              []map[string]any `json:"Skills"`
	WorkExperience      []map[string]any `json:"Work Experience"`
	Education           []map[string]any `json:"Education"`
	Projects            []map[string]any `json:"Projects"`
	Certifications      []map[string]any `json:"Certifications"`
	Languages           []map[string]any `json:"Languages"`
	AdditionalSections  []map[string]any `json:"Additional sections"`
}

// NewStructuredResume returns a StructuredResume with every collection
// initialized, so downstream code never has to null-check sections.
func NewStructuredResume() StructuredResume {
	return StructuredResume{
		PersonalInformation: map[string]any{},
		Skills:              []map[string]any{},
		WorkExperience:      []map[string]any{},
		Education:           []map[string]any{},
		Projects:            []map[string]any{},
		Certifications:      []map[string]any{},
		Languages:           []map[string]any{},
		AdditionalSections:  []map[string]any{},
	}
}

// EnsureLists replaces nil maps/slices with empty ones. Called after
// unmarshalling provider JSON, where list keys may arrive as null.
func (r *StructuredResume) EnsureLists() {
	if r.PersonalInformation == nil {
		r.PersonalInformation = map[string]any{}
	}
	if r.Skills == nil {
		r.Skills = []map[string]any{}
	}
	if r.WorkExperience == nil {
		r.WorkExperience = []map[string]any{}
	}
	if r.Education == nil {
		r.Education = []map[string]any{}
	}
	if r.Projects == nil {
		r.Projects = []map[string]any{}
	}
	if r.Certifications == nil {
		r.Certifications = []map[string]any{}
	}
	if r.Languages == nil {
		r.Languages = []map[string]any{}
	}
	if r.AdditionalSections == nil {
		r.AdditionalSections = []map[string]any{}
	}
}
