// Package wizard implements the nine-step resume editing state machine.
// Each step is bound to one section of the canonical draft; submitting a
// step validates, normalizes, and overwrites exactly that section.
package wizard

// Step identifies one of the nine ordered wizard steps.
type Step int

// The nine steps, in fixed display order.
const (
	StepPersonalInfo Step = iota + 1
	StepSummary
	StepSkills
	StepExperience
	StepEducation
	StepProjects
	StepCertifications
	StepLanguages
	StepCustomSections

	// FirstStep and LastStep bound the valid range.
	FirstStep = StepPersonalInfo
	LastStep  = StepCustomSections
)

// Valid reports whether s is within the wizard's step range.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Section returns the draft section key bound to this step.
func (s Step) Section() string {
	switch s {
	case StepPersonalInfo:
		return "personal_info"
	case StepSummary:
		return "summary"
	case StepSkills:
		return "skills"
	case StepExperience:
		return "experiences"
	case StepEducation:
		return "educations"
	case StepProjects:
		return "projects"
	case StepCertifications:
		return "certifications"
	case StepLanguages:
		return "languages"
	case StepCustomSections:
		return "custom_sections"
	default:
		return ""
	}
}

// Repeated reports whether the step collects a count-plus-indexed list.
func (s Step) Repeated() bool {
	switch s {
	case StepPersonalInfo, StepSummary:
		return false
	default:
		return s.Valid()
	}
}

func (s Step) String() string {
	if sec := s.Section(); sec != "" {
		return sec
	}
	return "invalid"
}
