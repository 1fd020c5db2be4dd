package parsing

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+?\d{1,2}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	urlRe   = regexp.MustCompile(`https?://[^\s<>()"']+|www\.[^\s<>()"']+`)
)

// FallbackParser is the deterministic, no-dependency strategy: first email
// match, first phone-shaped match, URL bucketing by substring, and a name
// guess from the first non-empty line. It always returns a fully-keyed
// record with empty sequences rather than nulls, so downstream code never
// null-checks collections.
//
// The heuristics are deliberately approximate; they exist to keep manual
// resume creation working when no AI backend is available.
type FallbackParser struct{}

// Parse implements StructuredParser. It never fails, even on empty input.
func (p *FallbackParser) Parse(_ context.Context, text string, links []string) types.StructuredResume {
	sr := types.NewStructuredResume()
	info := sr.PersonalInformation

	first, middle, last := splitNameLine(text)
	setIfNotEmpty(info, "First name", first)
	setIfNotEmpty(info, "Middle name", middle)
	setIfNotEmpty(info, "Last name", last)

	setIfNotEmpty(info, "Email", emailRe.FindString(text))
	setIfNotEmpty(info, "Phone number", phoneRe.FindString(text))

	// Extracted hyperlink targets take priority over URLs pattern-matched
	// from the text; first match wins per bucket.
	candidates := append(append([]string{}, links...), urlRe.FindAllString(text, -1)...)
	for _, raw := range candidates {
		url := strings.TrimRight(strings.TrimSpace(raw), ".,;")
		if url == "" {
			continue
		}
		lower := strings.ToLower(url)
		switch {
		case strings.Contains(lower, "linkedin"):
			setIfAbsent(info, "LinkedIn URL", url)
		case strings.Contains(lower, "github"):
			setIfAbsent(info, "GitHub URL", url)
		default:
			setIfAbsent(info, "Portfolio URL", url)
		}
	}

	return sr
}

// splitNameLine guesses first/middle/last name from the first non-empty
// line of text split on whitespace.
func splitNameLine(text string) (first, middle, last string) {
	var line string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}
	if line == "" {
		return "", "", ""
	}

	parts := strings.Fields(line)
	switch len(parts) {
	case 1:
		return parts[0], "", ""
	case 2:
		return parts[0], "", parts[1]
	default:
		return parts[0], strings.Join(parts[1:len(parts)-1], " "), parts[len(parts)-1]
	}
}

func setIfNotEmpty(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func setIfAbsent(m map[string]any, key, value string) {
	if _, exists := m[key]; !exists {
		m[key] = value
	}
}
