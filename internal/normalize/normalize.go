// Package normalize provides pure, total transforms that reconcile
// heterogeneous parser output and raw form input into the canonical draft
// shape. Every function accepts malformed input and returns a safe default
// instead of an error.
package normalize

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts is ordered from most to least specific. Partial dates
// (year-month, year only) default the missing day/month to 01.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"January 2006",
	"Jan 2006",
	"2006-01",
	"01/2006",
	"2006",
}

// FormatDate normalizes a date-like value to an ISO YYYY-MM-DD string.
// Unparseable input returns nil, never the original string. This is lossy
// and callers must be aware of it.
func FormatDate(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		iso := t.Format("2006-01-02")
		return &iso
	}
	return nil
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FormatURL normalizes a URL-like value to an absolute, scheme-qualified
// URL string. Scheme-less host-looking strings get https:// prepended;
// bare email-looking strings become mailto:. Anything that does not parse
// into a (scheme, host) pair returns nil.
func FormatURL(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "mailto:") {
		if emailRe.MatchString(strings.TrimPrefix(s, "mailto:")) {
			return &s
		}
		return nil
	}
	if emailRe.MatchString(s) {
		m := "mailto:" + s
		return &m
	}

	// Prepend a scheme to host-looking strings (contains a dot, no spaces).
	if !strings.Contains(s, "://") {
		if strings.ContainsAny(s, " \t") || !strings.Contains(s, ".") {
			return nil
		}
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}

	out := u.String()
	// Strip a single trailing slash unless the path is just "/".
	if strings.HasSuffix(out, "/") && u.Path != "/" {
		out = strings.TrimSuffix(out, "/")
	}
	return &out
}

// FormatLocation joins location fragments into a single display string.
// Accepts a string, an object with city/state/country keys, or a list of
// fragments. Unknown shapes normalize to the empty string, never nil.
func FormatLocation(v any) string {
	switch loc := v.(type) {
	case string:
		return strings.TrimSpace(loc)
	case map[string]any:
		parts := make([]string, 0, 3)
		for _, key := range []string{"city", "state", "country"} {
			if val := lookupField(loc, key); val != nil {
				if s := SafeStrip(val, ""); s != "" {
					parts = append(parts, s)
				}
			}
		}
		return strings.Join(parts, ", ")
	case []any:
		parts := make([]string, 0, len(loc))
		for _, frag := range loc {
			if s := SafeStrip(frag, ""); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case []string:
		parts := make([]string, 0, len(loc))
		for _, frag := range loc {
			if s := strings.TrimSpace(frag); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// SafeStrip coerces a value to a trimmed string. Lists of strings are joined
// with a single space. Everything else, including nil, returns def.
func SafeStrip(v any, def string) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case []string:
		return strings.TrimSpace(strings.Join(s, " "))
	case []any:
		parts := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return def
			}
			parts = append(parts, str)
		}
		return strings.TrimSpace(strings.Join(parts, " "))
	default:
		return def
	}
}

// clampInt coerces a numeric-ish value into [lo, hi], returning def when the
// value is missing or not numeric.
func clampInt(v any, def, lo, hi int) int {
	n := def
	switch num := v.(type) {
	case int:
		n = num
	case int64:
		n = int(num)
	case float64:
		n = int(num)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil {
			n = def
		} else {
			n = parsed
		}
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// asBool interprets common truthy encodings from form or provider input.
func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "on", "1":
			return true
		}
	case float64:
		return b != 0
	}
	return false
}

// canonicalKey lowercases a field name and removes separators, so
// "First name", "first_name", and "FirstName" all probe the same slot.
func canonicalKey(k string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(k) {
		switch r {
		case ' ', '_', '-', '.':
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// lookupField probes a provider-defined object for a field by canonical key.
// keys are given in canonical form ("firstname", "linkedinurl").
func lookupField(m map[string]any, keys ...string) any {
	if len(m) == 0 {
		return nil
	}
	for _, want := range keys {
		for k, v := range m {
			if canonicalKey(k) == want {
				return v
			}
		}
	}
	return nil
}

// stringify renders scalar values for fields that tolerate numbers, like GPA.
func stringify(v any, def string) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case int:
		return strconv.Itoa(s)
	case nil:
		return def
	default:
		return fmt.Sprintf("%v", s)
	}
}
