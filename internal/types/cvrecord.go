// Package types provides type definitions for structured data used throughout the cv-enhancer system.
package types

import "encoding/json"

// PersonalInfo holds the fixed contact fields of a candidate.
// All fields are optional; absent values are empty strings.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"` // target job title
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	City     string `json:"city"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Linkedin string `json:"linkedin"`
}

// LanguageSkill is one spoken language with its proficiency level.
type LanguageSkill struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

// JobEntry is one work-experience position.
type JobEntry struct {
	Company        string   `json:"company"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	Title          string   `json:"title"`
	Responsibility string   `json:"responsibility"`
	Achievements   []string `json:"achievements"`
}

// EducationEntry is one degree or qualification.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Graduation  string `json:"graduation"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	Country     string `json:"country"`
}

// CVRecord is the canonical normalized representation of a candidate profile.
// It is produced by the schema normalizer, edited field-by-field, and consumed
// by the template renderer. It is never persisted by the core pipeline.
type CVRecord struct {
	PersonalInfo      PersonalInfo     `json:"personal_info"`
	SummaryParagraphs []string         `json:"summary_paragraphs"`
	Languages         []LanguageSkill  `json:"languages"`
	Skills            []string         `json:"skills"`
	WorkExperience    []JobEntry       `json:"work_experience"`
	Education         []EducationEntry `json:"education"`
	Hobbies           []string         `json:"hobbies"`
}

// NewCVRecord returns an empty record with the invariant shape:
// exactly two summary paragraphs and non-nil lists.
func NewCVRecord() *CVRecord {
	return &CVRecord{
		SummaryParagraphs: []string{"", ""},
		Languages:         []LanguageSkill{},
		Skills:            []string{},
		WorkExperience:    []JobEntry{},
		Education:         []EducationEntry{},
		Hobbies:           []string{},
	}
}

// Clone returns a deep copy of the record.
func (r *CVRecord) Clone() *CVRecord {
	out := *r
	out.SummaryParagraphs = append([]string(nil), r.SummaryParagraphs...)
	out.Languages = append([]LanguageSkill(nil), r.Languages...)
	out.Skills = append([]string(nil), r.Skills...)
	out.WorkExperience = make([]JobEntry, len(r.WorkExperience))
	for i, job := range r.WorkExperience {
		job.Achievements = append([]string(nil), job.Achievements...)
		out.WorkExperience[i] = job
	}
	out.Education = append([]EducationEntry(nil), r.Education...)
	out.Hobbies = append([]string(nil), r.Hobbies...)
	return &out
}

// AsMap converts the record to a generic map, the same shape the schema
// normalizer accepts. Used to verify normalization idempotence and to feed
// edited records back through the pipeline.
func (r *CVRecord) AsMap() map[string]any {
	data, err := json.Marshal(r)
	if err != nil {
		// A CVRecord contains only strings and slices; marshaling cannot fail.
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		panic(err)
	}
	return m
}
