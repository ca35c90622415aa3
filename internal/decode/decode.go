// Package decode extracts and repairs a JSON object embedded in arbitrary
// LLM response text. The generator is prose output, not a structured API, so
// common formatting artifacts (markdown fences, trailing commas, surrounding
// prose) are repaired syntactically before a strict parse. Genuinely broken
// output still fails; shape validation is the schema package's job.
package decode

import (
	"encoding/json"
	"regexp"
	"strings"
)

// trailingCommaRe matches a comma, optional whitespace, and a closing brace
// or bracket. Trailing commas do not nest, so a single pass suffices.
var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

// Decode recovers a JSON object from raw response text.
//
// It strips optional markdown code fences, slices from the first '{' to the
// last '}', deletes trailing commas before closing braces/brackets, then
// strictly parses the result. Failures return *NoJSONObjectError when no
// object span exists and *MalformedJSONError when the repaired span still
// does not parse.
func Decode(raw string) (map[string]any, error) {
	clean := StripFences(raw)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &NoJSONObjectError{Raw: raw}
	}
	clean = clean[start : end+1]

	clean = trailingCommaRe.ReplaceAllString(clean, "$1")

	var obj map[string]any
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		malformed := &MalformedJSONError{Raw: raw, Cause: err}
		if syntaxErr, ok := err.(*json.SyntaxError); ok {
			malformed.Offset = syntaxErr.Offset
		}
		return nil, malformed
	}
	return obj, nil
}

// StripFences removes a leading markdown code fence (optionally tagged
// "json") and a trailing fence. Fences are optional decoration: text without
// them passes through unchanged.
func StripFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
