package schema

import (
	"strings"

	"github.com/jonathan/cv-enhancer/internal/types"
)

// Normalize coerces an arbitrary decoded mapping into a conformant CVRecord.
//
// Normalize is pure and total: it never fails. Missing keys become zero
// values, wrong-typed values are coerced to the field's zero value,
// unrecognized keys are dropped, and every list is truncated to its cap.
// Summary paragraphs are padded to exactly two entries. The operation is
// idempotent: normalizing an already-normalized record is a no-op.
func (s Schema) Normalize(raw map[string]any) *types.CVRecord {
	record := types.NewCVRecord()
	if raw == nil {
		return record
	}

	record.PersonalInfo = normalizePersonalInfo(asMap(raw["personal_info"]))
	record.SummaryParagraphs = normalizeSummary(raw["summary_paragraphs"])
	record.Languages = normalizeLanguages(raw["languages"], s.Caps.Languages)
	record.Skills = stringList(raw["skills"], s.Caps.Skills)
	record.WorkExperience = s.normalizeWorkExperience(raw["work_experience"])
	record.Education = normalizeEducation(raw["education"], s.Caps.Education)
	record.Hobbies = stringList(raw["hobbies"], s.Caps.Hobbies)
	return record
}

// NormalizeRecord re-normalizes an existing record, used after user edits to
// restore the invariant shape. Equivalent to Normalize(record.AsMap()).
func (s Schema) NormalizeRecord(record *types.CVRecord) *types.CVRecord {
	if record == nil {
		return types.NewCVRecord()
	}
	return s.Normalize(record.AsMap())
}

func normalizePersonalInfo(m map[string]any) types.PersonalInfo {
	return types.PersonalInfo{
		Name:     aliasedString(m, personalInfoAliases["name"]),
		Title:    aliasedString(m, personalInfoAliases["title"]),
		Phone:    aliasedString(m, personalInfoAliases["phone"]),
		Email:    aliasedString(m, personalInfoAliases["email"]),
		City:     aliasedString(m, personalInfoAliases["city"]),
		Zip:      aliasedString(m, personalInfoAliases["zip"]),
		Country:  aliasedString(m, personalInfoAliases["country"]),
		Linkedin: aliasedString(m, personalInfoAliases["linkedin"]),
	}
}

// normalizeSummary pads or truncates to exactly two paragraphs. Unlike the
// other lists, empty strings are kept so editing positions stay stable.
func normalizeSummary(v any) []string {
	out := []string{"", ""}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for i := 0; i < len(items) && i < 2; i++ {
		out[i] = asString(items[i])
	}
	return out
}

func normalizeLanguages(v any, cap int) []types.LanguageSkill {
	items, ok := v.([]any)
	if !ok {
		return []types.LanguageSkill{}
	}
	out := make([]types.LanguageSkill, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lang := types.LanguageSkill{
			Language: aliasedString(m, []string{"language"}),
			Level:    aliasedString(m, []string{"level"}),
		}
		if lang.Language == "" && lang.Level == "" {
			continue
		}
		out = append(out, lang)
	}
	return truncate(out, cap)
}

func (s Schema) normalizeWorkExperience(v any) []types.JobEntry {
	items, ok := v.([]any)
	if !ok {
		return []types.JobEntry{}
	}
	out := make([]types.JobEntry, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, types.JobEntry{
			Company:        aliasedString(m, jobAliases["company"]),
			From:           aliasedString(m, jobAliases["from"]),
			To:             aliasedString(m, jobAliases["to"]),
			Title:          aliasedString(m, jobAliases["title"]),
			Responsibility: aliasedString(m, jobAliases["responsibility"]),
			Achievements:   stringList(m["achievements"], s.Caps.AchievementsPerJob),
		})
	}
	return truncate(out, s.Caps.WorkExperience)
}

func normalizeEducation(v any, cap int) []types.EducationEntry {
	items, ok := v.([]any)
	if !ok {
		return []types.EducationEntry{}
	}
	out := make([]types.EducationEntry, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, types.EducationEntry{
			Degree:      aliasedString(m, educationAliases["degree"]),
			Graduation:  aliasedString(m, educationAliases["graduation"]),
			Institution: aliasedString(m, educationAliases["institution"]),
			Location:    aliasedString(m, educationAliases["location"]),
			Country:     aliasedString(m, educationAliases["country"]),
		})
	}
	return truncate(out, cap)
}

// aliasedString returns the first alias present with a non-empty string
// value, or "" when none matches.
func aliasedString(m map[string]any, aliases []string) string {
	for _, key := range aliases {
		if v, ok := m[key]; ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// asString coerces a decoded value to string; anything that is not a string
// becomes the zero value rather than an error.
func asString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func asMap(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// stringList coerces a decoded value to a list of non-empty strings,
// truncated to cap. Non-string items are dropped.
func stringList(v any, cap int) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(asString(item)); s != "" {
			out = append(out, s)
		}
	}
	return truncate(out, cap)
}

func truncate[T any](items []T, cap int) []T {
	if cap > 0 && len(items) > cap {
		return items[:cap]
	}
	return items
}
