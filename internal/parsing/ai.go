package parsing

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/jonathan/resume-wizard/internal/llm"
	"github.com/jonathan/resume-wizard/internal/types"
)

// minAITextLength is the shortest input worth sending to a provider. Anything
// below it goes straight to the fallback.
const minAITextLength = 50

// AIParser parses resume text through an AI backend. On any failure
// (short input, provider error, malformed JSON, non-object result, schema
// violation) it degrades to the deterministic fallback rather than
// propagating the error. It never retries the provider call; retrying is a
// caller decision (cost control).
type AIParser struct {
	client   llm.Client
	fallback *FallbackParser
}

// Parse implements StructuredParser.
func (p *AIParser) Parse(ctx context.Context, text string, links []string) types.StructuredResume {
	sr, err := p.parseAI(ctx, text, links)
	if err != nil {
		log.Printf("AI parse degraded to fallback: %v", err)
		return p.fallback.Parse(ctx, text, links)
	}
	return sr
}

func (p *AIParser) parseAI(ctx context.Context, text string, links []string) (types.StructuredResume, error) {
	var sr types.StructuredResume

	if len(strings.TrimSpace(text)) < minAITextLength {
		return sr, &AIParseError{Message: "input text too short"}
	}

	response, err := p.client.GenerateJSON(ctx, buildResumePrompt(text, links))
	if err != nil {
		return sr, &AIParseError{Message: "provider call failed", Cause: err}
	}

	// Decode generically first: the top-level result must be an object
	// before the schema contract is worth checking.
	var document any
	if err := json.Unmarshal([]byte(response), &document); err != nil {
		return sr, &AIParseError{Message: "response is not valid JSON", Cause: err}
	}
	if _, ok := document.(map[string]any); !ok {
		return sr, &AIParseError{Message: "top-level JSON value is not an object"}
	}
	if err := ValidateResumeJSON(document); err != nil {
		return sr, err
	}

	if err := json.Unmarshal([]byte(response), &sr); err != nil {
		return sr, &AIParseError{Message: "response does not fit the resume shape", Cause: err}
	}
	sr.EnsureLists()
	return sr, nil
}
