package parsing

import "fmt"

// AIParseError represents a failure of the AI parsing path: a provider
// error, a malformed response, or a schema violation. It is always caught
// internally and converted into a fallback-parser invocation; it never
// reaches callers of Parse.
type AIParseError struct {
	Message string
	Cause   error
}

func (e *AIParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI parse failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("AI parse failed: %s", e.Message)
}

func (e *AIParseError) Unwrap() error {
	return e.Cause
}

// SchemaViolationError represents an AI response that parsed as JSON but did
// not conform to the resume schema contract.
type SchemaViolationError struct {
	Violations []string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("response violates resume schema: %d violation(s): %v", len(e.Violations), e.Violations)
}
