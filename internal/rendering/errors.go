// Package rendering fills Word CV templates from an edited CVRecord.
package rendering

import "fmt"

// TemplateRenderError represents a failure to open, fill, or serialize a
// Word template. It is fatal for the render attempt only; the record that
// produced it stays valid.
type TemplateRenderError struct {
	Message string
	Cause   error
}

func (e *TemplateRenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template render error: %s", e.Message)
}

func (e *TemplateRenderError) Unwrap() error {
	return e.Cause
}
