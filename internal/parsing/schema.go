package parsing

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume_schema.json
var resumeSchemaJSON string

// ValidateResumeJSON checks a decoded AI response against the resume schema
// contract: all nine top-level keys present, list-valued keys are arrays,
// scalar fields are the documented types or null.
func ValidateResumeJSON(document any) error {
	schemaLoader := gojsonschema.NewStringLoader(resumeSchemaJSON)
	docLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return &AIParseError{Message: "schema validation could not run", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return &SchemaViolationError{Violations: violations}
}
