package parsing

import (
	"strings"
)

// buildResumePrompt constructs the single extraction prompt: task
// description, the full output contract, the extracted hyperlinks, and the
// raw resume text. The links block is included so the model prefers real
// hyperlink targets over text pattern-matches.
func buildResumePrompt(text string, links []string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert resume parser. Extract the resume below into structured JSON.\n")
	sb.WriteString("COPY VALUES FROM THE TEXT - do not invent, summarize, or reword.\n\n")

	sb.WriteString("Return ONLY valid JSON with EXACTLY these top-level keys:\n")
	sb.WriteString(`{
  "Personal Information": {
    "First name": string|null,
    "Middle name": string|null,
    "Last name": string|null,
    "Email": string|null,
    "Phone number": string|null,
    "Location": string|null,
    "LinkedIn URL": string|null,
    "GitHub URL": string|null,
    "Portfolio URL": string|null
  },
  "Professional Summary": string|null,
  "Skills": [{"Skill name": string, "Skill type": "technical"|"soft"|"language"|"tool", "Proficiency level": integer 0-100}],
  "Work Experience": [{"Job title": string, "Company name": string|null, "Location": string|null, "Start date": string|null, "End date": string|null, "Is current": boolean, "Bullet points": [string]}],
  "Education": [{"Institution name": string, "Degree type": "high_school"|"associate"|"bachelor"|"master"|"phd"|"certificate"|"other", "Field of study": string|null, "Location": string|null, "Start date": string|null, "End date": string|null, "GPA": string|null}],
  "Projects": [{"Project name": string, "Description": string|null, "Technologies used": string|null, "Project URL": string|null, "Start date": string|null, "End date": string|null, "Bullet points": [string]}],
  "Certifications": [{"Certification name": string, "Issuing organization": string|null, "Issue date": string|null, "Expiration date": string|null, "Credential ID": string|null, "Credential URL": string|null}],
  "Languages": [{"Language name": string, "Proficiency level": "basic"|"conversational"|"fluent"|"native"}],
  "Additional sections": [{"Section title": string, "Bullet points": [string]}]
}`)
	sb.WriteString("\n\nRULES:\n")
	sb.WriteString("- Every list-valued key MUST be an array, possibly empty - never omit it.\n")
	sb.WriteString("- Optional scalar fields are null, never omitted.\n")
	sb.WriteString("- All dates are YYYY-MM-DD strings or null. Use 01 for an unknown day or month.\n")
	sb.WriteString("- List every individual skill separately. NEVER group skills into category entries like \"Programming: Go, Python\".\n")
	sb.WriteString("- Prefer URLs from the Extracted Links block over URLs guessed from the text.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	if len(links) > 0 {
		sb.WriteString("Extracted Links (real hyperlink targets from the document):\n")
		for _, link := range links {
			sb.WriteString("- ")
			sb.WriteString(link)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("Resume text:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}
