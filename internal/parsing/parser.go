// Package parsing turns extracted resume text into a schema-conformant
// structured record, either via an AI backend with a strict JSON contract or
// via a deterministic regex fallback.
package parsing

import (
	"context"

	"github.com/jonathan/resume-wizard/internal/llm"
	"github.com/jonathan/resume-wizard/internal/types"
)

// StructuredParser is the single contract both parsing strategies satisfy.
type StructuredParser interface {
	// Parse consumes extracted text and hyperlinks and produces a
	// structured resume record with all nine top-level keys present.
	Parse(ctx context.Context, text string, links []string) types.StructuredResume
}

// NewParser selects the parsing strategy once at the orchestration boundary.
// A nil client selects the deterministic fallback: absence of a configured
// provider is a "use fallback" signal, not an error.
func NewParser(client llm.Client) StructuredParser {
	if client == nil {
		return &FallbackParser{}
	}
	return &AIParser{client: client, fallback: &FallbackParser{}}
}
