package pipeline

import (
	"github.com/jonathan/cv-enhancer/internal/prompts"
	"github.com/jonathan/cv-enhancer/internal/rendering"
	"github.com/jonathan/cv-enhancer/internal/schema"
	"github.com/jonathan/cv-enhancer/internal/types"
)

// Render applies the user's edits to a copy of the record, re-normalizes it,
// and fills the Word template for the given language. It returns the
// document bytes and the download filename. The input record is not
// modified.
func Render(record *types.CVRecord, edits []types.Edit, sch schema.Schema, lang prompts.Language, templatePath string) ([]byte, string, error) {
	if sch.Version == "" {
		sch = schema.Default()
	}
	if lang == "" {
		lang = prompts.English
	}

	edited := record.Clone()
	if err := types.ApplyEdits(edited, edits); err != nil {
		return nil, "", err
	}
	edited = sch.NormalizeRecord(edited)

	data, err := rendering.RenderDocx(templatePath, edited, sch.Caps)
	if err != nil {
		return nil, "", err
	}

	return data, rendering.OutputFileName(edited, lang), nil
}
