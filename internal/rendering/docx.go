package rendering

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/cv-enhancer/internal/prompts"
	"github.com/jonathan/cv-enhancer/internal/schema"
	"github.com/jonathan/cv-enhancer/internal/types"
)

// Flatten converts a CVRecord into the flat placeholder map the Word
// templates reference. List entries get indexed keys (work_1_title,
// skill_3) up to the caps of the schema revision the record was normalized
// under. Every key a template can reference is always present, so
// placeholders for absent entries render as empty strings instead of
// leaking "{{...}}" into the document.
func Flatten(record *types.CVRecord, caps schema.Caps) map[string]string {
	out := make(map[string]string, 64)

	out["name"] = record.PersonalInfo.Name
	out["job_title"] = record.PersonalInfo.Title
	out["phone"] = record.PersonalInfo.Phone
	out["email"] = record.PersonalInfo.Email
	out["city"] = record.PersonalInfo.City
	out["zip"] = record.PersonalInfo.Zip
	out["country"] = record.PersonalInfo.Country
	out["linkedin"] = record.PersonalInfo.Linkedin

	for i := 0; i < 2; i++ {
		value := ""
		if i < len(record.SummaryParagraphs) {
			value = record.SummaryParagraphs[i]
		}
		out["summary_"+strconv.Itoa(i+1)] = value
	}

	for i := 0; i < caps.Languages; i++ {
		value := ""
		if i < len(record.Languages) {
			lang := record.Languages[i]
			value = lang.Language
			if lang.Level != "" {
				value = fmt.Sprintf("%s: %s", lang.Language, lang.Level)
			}
		}
		out["language_"+strconv.Itoa(i+1)] = value
	}

	for i := 0; i < caps.Skills; i++ {
		value := ""
		if i < len(record.Skills) {
			value = record.Skills[i]
		}
		out["skill_"+strconv.Itoa(i+1)] = value
	}

	for i := 0; i < caps.Hobbies; i++ {
		value := ""
		if i < len(record.Hobbies) {
			value = record.Hobbies[i]
		}
		out["hobby_"+strconv.Itoa(i+1)] = value
	}

	for i := 0; i < caps.WorkExperience; i++ {
		prefix := "work_" + strconv.Itoa(i+1) + "_"
		var job types.JobEntry
		if i < len(record.WorkExperience) {
			job = record.WorkExperience[i]
		}
		out[prefix+"title"] = job.Title
		out[prefix+"company"] = job.Company
		out[prefix+"from"] = job.From
		out[prefix+"to"] = job.To
		out[prefix+"responsibility"] = job.Responsibility
		for j := 0; j < caps.AchievementsPerJob; j++ {
			value := ""
			if j < len(job.Achievements) {
				value = job.Achievements[j]
			}
			out[prefix+"achievement_"+strconv.Itoa(j+1)] = value
		}
	}

	for i := 0; i < caps.Education; i++ {
		prefix := "edu_" + strconv.Itoa(i+1) + "_"
		var edu types.EducationEntry
		if i < len(record.Education) {
			edu = record.Education[i]
		}
		out[prefix+"degree"] = edu.Degree
		out[prefix+"graduation"] = edu.Graduation
		out[prefix+"institution"] = edu.Institution
		out[prefix+"location"] = edu.Location
		out[prefix+"country"] = edu.Country
	}

	return out
}

// FillContent replaces every {{key}} placeholder in raw WordprocessingML
// with the XML-escaped value from values. Exposed separately from RenderDocx
// so the substitution can be tested without a real template file.
func FillContent(content string, values map[string]string) string {
	for key, value := range values {
		content = strings.ReplaceAll(content, "{{"+key+"}}", EscapeXML(value))
	}
	return content
}

// RenderDocx fills the Word template at templatePath with the record's
// values and returns the finished document bytes.
//
// The docx library XML-encodes replacement strings on its Replace path, so
// the substitution runs on the raw content instead and escaping stays in
// EscapeXML where the control-character stripping also lives.
func RenderDocx(templatePath string, record *types.CVRecord, caps schema.Caps) ([]byte, error) {
	reader, err := docx.ReadDocxFile(templatePath)
	if err != nil {
		return nil, &TemplateRenderError{
			Message: fmt.Sprintf("failed to open template %s", templatePath),
			Cause:   err,
		}
	}
	defer reader.Close()

	doc := reader.Editable()
	doc.SetContent(FillContent(doc.GetContent(), Flatten(record, caps)))

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, &TemplateRenderError{
			Message: "failed to serialize filled template",
			Cause:   err,
		}
	}

	return buf.Bytes(), nil
}

// OutputFileName builds the download filename for a rendered document.
// Spaces in the candidate name become underscores; a record without a name
// falls back to "CV".
func OutputFileName(record *types.CVRecord, lang prompts.Language) string {
	name := strings.TrimSpace(record.PersonalInfo.Name)
	if name == "" {
		name = "CV"
	}
	name = strings.ReplaceAll(name, " ", "_")

	prefix := "Enhanced_CV_"
	if lang == prompts.German {
		prefix = "Optimierter_Lebenslauf_"
	}
	return prefix + name + ".docx"
}
