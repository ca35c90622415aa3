package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-enhancer/internal/schema"
	"github.com/jonathan/cv-enhancer/internal/types"
)

func TestValidateRecord_FreshRecordPasses(t *testing.T) {
	err := ValidateRecord(types.NewCVRecord())
	assert.NoError(t, err)
}

func TestValidateRecord_NormalizedOutputPasses(t *testing.T) {
	raw := map[string]any{
		"personal_info": map[string]any{
			"NAME":      "JANE DOE",
			"JOB_TITLE": "Head of Sales",
			"Linkedin":  "linkedin.com/in/janedoe",
		},
		"summary_paragraphs": []any{"One."},
		"skills":             []any{"Negotiation", 42, "CRM"},
		"work_experience": []any{
			map[string]any{
				"company":      "Acme",
				"from_date":    "2020",
				"to_date":      "2023",
				"job_title":    "Lead",
				"achievements": []any{"Grew revenue"},
			},
		},
	}

	record := schema.Default().Normalize(raw)
	assert.NoError(t, ValidateRecord(record))
}

func TestValidateJSONString_MissingSection(t *testing.T) {
	err := ValidateJSONString(`{"personal_info": {}}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)

	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "(root)")
}

func TestValidateJSONString_WrongTypes(t *testing.T) {
	record := types.NewCVRecord()
	record.SummaryParagraphs = []string{"only one"}

	err := ValidateRecord(record)
	require.Error(t, err, "summary must hold exactly two paragraphs")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestValidateJSONString_UnknownKeyRejected(t *testing.T) {
	record := types.NewCVRecord()
	valid := ValidateRecord(record)
	require.NoError(t, valid)

	err := ValidateJSONString(`{
		"personal_info": {"name":"","title":"","phone":"","email":"","city":"","zip":"","country":"","linkedin":""},
		"summary_paragraphs": ["",""],
		"languages": [],
		"skills": [],
		"work_experience": [],
		"education": [],
		"hobbies": [],
		"extra_section": true
	}`)
	require.Error(t, err)
}

func TestValidateJSONString_NotJSON(t *testing.T) {
	err := ValidateJSONString("not json at all")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
