package extraction

import "strings"

// DocumentSeparator is the human-visible token placed between consolidated
// documents so the model can tell where one source ends and the next begins.
const DocumentSeparator = "--- DOCUMENT SEPARATOR ---"

// Consolidate joins extracted document texts and an optional free-text note
// into one input blob. Empty pieces are dropped; order is preserved with
// files first (in upload order) and the free text last. When nothing
// non-empty remains, ErrEmptyInput is returned and the caller must not
// invoke the AI gateway.
func Consolidate(texts []string, freeText string) (string, error) {
	pieces := make([]string, 0, len(texts)+1)
	for _, text := range texts {
		if strings.TrimSpace(text) != "" {
			pieces = append(pieces, text)
		}
	}
	if strings.TrimSpace(freeText) != "" {
		pieces = append(pieces, freeText)
	}
	if len(pieces) == 0 {
		return "", ErrEmptyInput
	}
	return strings.Join(pieces, "\n\n"+DocumentSeparator+"\n\n"), nil
}
