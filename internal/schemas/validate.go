// Package schemas provides JSON Schema validation for the canonical CV
// record shape. The normalizer is the authority on what a record contains;
// the schema is a second, declarative statement of the same contract used by
// tests and debug tooling to catch drift between the two.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/cv-enhancer/internal/types"
)

//go:embed cv_record.schema.json
var cvRecordSchema string

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself.
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load cv record schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load cv record schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateRecord checks a CVRecord against the embedded schema. A normalized
// record always passes; a failure means the normalizer and the schema have
// drifted apart.
func ValidateRecord(record *types.CVRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for validation: %w", err)
	}
	return ValidateJSONString(string(data))
}

// ValidateJSONString validates raw JSON content against the record schema.
func ValidateJSONString(jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(cvRecordSchema)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
