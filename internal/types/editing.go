package types

import (
	"fmt"
	"strings"
)

// Section identifies a top-level region of a CVRecord for editing.
type Section string

// Sections of a CVRecord addressable by an Edit.
const (
	SectionPersonalInfo   Section = "personal_info"
	SectionSummary        Section = "summary_paragraphs"
	SectionLanguages      Section = "languages"
	SectionSkills         Section = "skills"
	SectionWorkExperience Section = "work_experience"
	SectionEducation      Section = "education"
	SectionHobbies        Section = "hobbies"
)

// FieldKey addresses a single editable value inside a CVRecord.
// Index is ignored for personal_info; Field is ignored for flat string lists
// (skills, hobbies) and for summary paragraphs.
type FieldKey struct {
	Section Section `json:"section"`
	Index   int     `json:"index"`
	Field   string  `json:"field"`
}

// Edit is one user modification of a record field. For the work-experience
// "achievements" field the value is newline-separated, one achievement per
// line, matching the form representation.
type Edit struct {
	Key   FieldKey `json:"key"`
	Value string   `json:"value"`
}

// EditError reports an edit that does not address a valid record field.
type EditError struct {
	Key     FieldKey
	Message string
}

func (e *EditError) Error() string {
	return fmt.Sprintf("invalid edit for %s[%d].%s: %s", e.Key.Section, e.Key.Index, e.Key.Field, e.Message)
}

// ApplyEdits applies edits to the record in order. The record is modified in
// place; on the first invalid edit an *EditError is returned and remaining
// edits are not applied.
func ApplyEdits(r *CVRecord, edits []Edit) error {
	for _, edit := range edits {
		if err := applyEdit(r, edit); err != nil {
			return err
		}
	}
	return nil
}

func applyEdit(r *CVRecord, edit Edit) error {
	key := edit.Key
	switch key.Section {
	case SectionPersonalInfo:
		return applyPersonalInfoEdit(r, edit)
	case SectionSummary:
		if key.Index < 0 || key.Index >= len(r.SummaryParagraphs) {
			return &EditError{Key: key, Message: "paragraph index out of range"}
		}
		r.SummaryParagraphs[key.Index] = edit.Value
	case SectionSkills:
		if key.Index < 0 || key.Index >= len(r.Skills) {
			return &EditError{Key: key, Message: "skill index out of range"}
		}
		r.Skills[key.Index] = edit.Value
	case SectionHobbies:
		if key.Index < 0 || key.Index >= len(r.Hobbies) {
			return &EditError{Key: key, Message: "hobby index out of range"}
		}
		r.Hobbies[key.Index] = edit.Value
	case SectionLanguages:
		if key.Index < 0 || key.Index >= len(r.Languages) {
			return &EditError{Key: key, Message: "language index out of range"}
		}
		switch key.Field {
		case "language":
			r.Languages[key.Index].Language = edit.Value
		case "level":
			r.Languages[key.Index].Level = edit.Value
		default:
			return &EditError{Key: key, Message: "unknown language field"}
		}
	case SectionWorkExperience:
		return applyWorkExperienceEdit(r, edit)
	case SectionEducation:
		return applyEducationEdit(r, edit)
	default:
		return &EditError{Key: key, Message: "unknown section"}
	}
	return nil
}

func applyPersonalInfoEdit(r *CVRecord, edit Edit) error {
	switch edit.Key.Field {
	case "name":
		r.PersonalInfo.Name = edit.Value
	case "title":
		r.PersonalInfo.Title = edit.Value
	case "phone":
		r.PersonalInfo.Phone = edit.Value
	case "email":
		r.PersonalInfo.Email = edit.Value
	case "city":
		r.PersonalInfo.City = edit.Value
	case "zip":
		r.PersonalInfo.Zip = edit.Value
	case "country":
		r.PersonalInfo.Country = edit.Value
	case "linkedin":
		r.PersonalInfo.Linkedin = edit.Value
	default:
		return &EditError{Key: edit.Key, Message: "unknown personal_info field"}
	}
	return nil
}

func applyWorkExperienceEdit(r *CVRecord, edit Edit) error {
	key := edit.Key
	if key.Index < 0 || key.Index >= len(r.WorkExperience) {
		return &EditError{Key: key, Message: "job index out of range"}
	}
	job := &r.WorkExperience[key.Index]
	switch key.Field {
	case "company":
		job.Company = edit.Value
	case "from":
		job.From = edit.Value
	case "to":
		job.To = edit.Value
	case "title":
		job.Title = edit.Value
	case "responsibility":
		job.Responsibility = edit.Value
	case "achievements":
		job.Achievements = splitLines(edit.Value)
	default:
		return &EditError{Key: key, Message: "unknown work_experience field"}
	}
	return nil
}

func applyEducationEdit(r *CVRecord, edit Edit) error {
	key := edit.Key
	if key.Index < 0 || key.Index >= len(r.Education) {
		return &EditError{Key: key, Message: "education index out of range"}
	}
	edu := &r.Education[key.Index]
	switch key.Field {
	case "degree":
		edu.Degree = edit.Value
	case "graduation":
		edu.Graduation = edit.Value
	case "institution":
		edu.Institution = edit.Value
	case "location":
		edu.Location = edit.Value
	case "country":
		edu.Country = edit.Value
	default:
		return &EditError{Key: key, Message: "unknown education field"}
	}
	return nil
}

// splitLines splits a newline-separated value into trimmed, non-empty lines.
func splitLines(value string) []string {
	lines := strings.Split(value, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
