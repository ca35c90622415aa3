package decode

import "fmt"

// NoJSONObjectError reports response text that contains no {...} span at all.
type NoJSONObjectError struct {
	Raw string
}

func (e *NoJSONObjectError) Error() string {
	return "no JSON object found in response text"
}

// MalformedJSONError reports a span that still fails strict parsing after
// syntactic repair. Raw carries the original response text and Offset the
// parser's byte position inside the repaired span, so callers can surface
// both for manual inspection.
type MalformedJSONError struct {
	Raw    string
	Offset int64
	Cause  error
}

func (e *MalformedJSONError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("malformed JSON at offset %d: %v", e.Offset, e.Cause)
	}
	return fmt.Sprintf("malformed JSON: %v", e.Cause)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Cause
}
