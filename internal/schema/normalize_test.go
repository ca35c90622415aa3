package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-enhancer/internal/types"
)

func decodeJSON(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestNormalizeEmptyObject(t *testing.T) {
	record := Default().Normalize(map[string]any{})

	assert.Equal(t, types.PersonalInfo{}, record.PersonalInfo)
	assert.Equal(t, []string{"", ""}, record.SummaryParagraphs)
	assert.Empty(t, record.Languages)
	assert.Empty(t, record.Skills)
	assert.Empty(t, record.WorkExperience)
	assert.Empty(t, record.Education)
	assert.Empty(t, record.Hobbies)
}

func TestNormalizeNilInput(t *testing.T) {
	record := Default().Normalize(nil)
	assert.Equal(t, []string{"", ""}, record.SummaryParagraphs)
}

func TestNormalizeKeyRenames(t *testing.T) {
	raw := decodeJSON(t, `{
		"personal_info": {
			"NAME": "Alice Example",
			"JOB_TITLE": "Head of Operations",
			"Linkedin": "https://linkedin.com/in/alice",
			"zip": "8001"
		},
		"work_experience": [
			{"company": "Acme", "from_date": "2019", "to_date": "2023", "job_title": "Manager"}
		],
		"education": [
			{"degree": "MSc", "graduation_date": "2015", "university": "ETH",
			 "university_location": "Zurich", "university_country": "Switzerland"}
		]
	}`)

	record := Default().Normalize(raw)

	assert.Equal(t, "Alice Example", record.PersonalInfo.Name)
	assert.Equal(t, "Head of Operations", record.PersonalInfo.Title)
	assert.Equal(t, "https://linkedin.com/in/alice", record.PersonalInfo.Linkedin)
	assert.Equal(t, "8001", record.PersonalInfo.Zip)

	require.Len(t, record.WorkExperience, 1)
	job := record.WorkExperience[0]
	assert.Equal(t, "2019", job.From)
	assert.Equal(t, "2023", job.To)
	assert.Equal(t, "Manager", job.Title)

	require.Len(t, record.Education, 1)
	edu := record.Education[0]
	assert.Equal(t, "2015", edu.Graduation)
	assert.Equal(t, "ETH", edu.Institution)
	assert.Equal(t, "Zurich", edu.Location)
	assert.Equal(t, "Switzerland", edu.Country)
}

func TestNormalizeDropsUnrecognizedKeys(t *testing.T) {
	raw := decodeJSON(t, `{
		"personal_info": {"name": "Bob", "favourite_colour": "blue"},
		"salary_expectation": 90000
	}`)

	record := Default().Normalize(raw)
	assert.Equal(t, "Bob", record.PersonalInfo.Name)
	// Unknown keys simply vanish; they have nowhere to go in the record.
	assert.NotContains(t, record.AsMap(), "salary_expectation")
}

func TestNormalizeTruncatesWorkExperience(t *testing.T) {
	jobs := make([]any, 20)
	for i := range jobs {
		jobs[i] = map[string]any{"company": string(rune('A' + i))}
	}
	record := Default().Normalize(map[string]any{"work_experience": jobs})

	require.Len(t, record.WorkExperience, 10)
	assert.Equal(t, "A", record.WorkExperience[0].Company)
	assert.Equal(t, "J", record.WorkExperience[9].Company)
}

func TestNormalizeSummaryPadding(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []string
	}{
		{"missing", nil, []string{"", ""}},
		{"empty list", []any{}, []string{"", ""}},
		{"one paragraph", []any{"first"}, []string{"first", ""}},
		{"two paragraphs", []any{"first", "second"}, []string{"first", "second"}},
		{"three paragraphs truncated", []any{"first", "second", "third"}, []string{"first", "second"}},
		{"wrong type", "just a string", []string{"", ""}},
		{"non-string item", []any{42, "second"}, []string{"", "second"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := Default().Normalize(map[string]any{"summary_paragraphs": tt.input})
			assert.Equal(t, tt.expected, record.SummaryParagraphs)
		})
	}
}

func TestNormalizeCoercesWrongTypes(t *testing.T) {
	raw := decodeJSON(t, `{
		"personal_info": "not an object",
		"skills": {"oops": "object"},
		"languages": [{"language": "German", "level": "C1"}, "not an object", 7],
		"work_experience": [{"company": 123, "achievements": "not a list"}],
		"hobbies": [true, "Hiking"]
	}`)

	record := Default().Normalize(raw)

	assert.Equal(t, types.PersonalInfo{}, record.PersonalInfo)
	assert.Empty(t, record.Skills)
	require.Len(t, record.Languages, 1)
	assert.Equal(t, "German", record.Languages[0].Language)
	require.Len(t, record.WorkExperience, 1)
	assert.Equal(t, "", record.WorkExperience[0].Company)
	assert.Empty(t, record.WorkExperience[0].Achievements)
	assert.Equal(t, []string{"Hiking"}, record.Hobbies)
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := decodeJSON(t, `{
		"personal_info": {"NAME": "Alice", "job_title": "Director", "email": "a@example.com"},
		"summary_paragraphs": ["one"],
		"languages": [{"language": "English", "level": "Native"}],
		"skills": ["Go", "SQL", "Leadership", "Negotiation", "Budgeting", "Hiring", "Extra"],
		"work_experience": [
			{"company": "Acme", "from_date": "2019", "to": "Present",
			 "job_title": "Manager", "achievements": ["a", "b", "c", "d"]}
		],
		"education": [{"degree": "BSc", "graduation_date": "2010"}],
		"hobbies": ["Chess"]
	}`)

	s := Default()
	once := s.Normalize(raw)
	twice := s.Normalize(once.AsMap())
	assert.Equal(t, once, twice)

	thrice := s.NormalizeRecord(twice)
	assert.Equal(t, once, thrice)
}

func TestNormalizeSkillsCapEndToEnd(t *testing.T) {
	raw := decodeJSON(t, `{"personal_info":{"name":"alice"},"skills":["a","b","c","d","e","f","g"]}`)

	record := Default().Normalize(raw)

	assert.Equal(t, "alice", record.PersonalInfo.Name)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, record.Skills)
}

func TestSchemaVersionCaps(t *testing.T) {
	v1 := ForVersion(V1)
	assert.Equal(t, 3, v1.Caps.Languages)
	assert.Equal(t, 15, v1.Caps.WorkExperience)
	assert.Equal(t, 6, v1.Caps.Education)

	v2 := ForVersion(V2)
	assert.Equal(t, 6, v2.Caps.Languages)
	assert.Equal(t, 10, v2.Caps.WorkExperience)

	assert.Equal(t, Default(), ForVersion("unknown"))
}

func TestNormalizeAchievementsCapPerJob(t *testing.T) {
	record := ForVersion(V1).Normalize(map[string]any{
		"work_experience": []any{
			map[string]any{
				"company":      "Acme",
				"achievements": []any{"one", "two", "three", "four", "five"},
			},
		},
	})

	require.Len(t, record.WorkExperience, 1)
	assert.Equal(t, []string{"one", "two", "three"}, record.WorkExperience[0].Achievements)
}
