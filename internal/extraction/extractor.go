// Package extraction pulls plain text out of uploaded CV documents and
// consolidates it into a single input blob for the AI gateway.
package extraction

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported upload media types. Anything else is ignored, not rejected.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// MimeTypeOf maps a file name to its declared media type by extension.
// Returns "" for extensions the extractor does not handle.
func MimeTypeOf(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	default:
		return ""
	}
}

// ExtractText extracts plain text from a file's bytes according to its
// declared media type. PDF pages and DOCX paragraphs are joined with
// newlines; pages/paragraphs with no extractable text are skipped.
//
// Unsupported media types return ("", nil). Extraction failures return
// ("", *ExtractionError) naming the file; they are terminal for that file
// only, never for the batch.
func ExtractText(filename, mimeType string, data []byte) (string, error) {
	switch mimeType {
	case MimePDF:
		text, err := extractPDF(data)
		if err != nil {
			return "", &ExtractionError{Filename: filename, Cause: err}
		}
		return text, nil
	case MimeDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return "", &ExtractionError{Filename: filename, Cause: err}
		}
		return text, nil
	default:
		return "", nil
	}
}

// extractPDF returns the per-page plain text of a PDF, joined with newlines.
func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed files instead of returning an
	// error; a corrupt upload must not take the whole request down.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if trimmed := strings.TrimSpace(pageText); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// extractDOCX returns the per-paragraph text of a DOCX, joined with newlines.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	return strings.Join(paragraphTexts(content), "\n"), nil
}

var (
	paragraphRe = regexp.MustCompile(`(?s)<w:p[ >].*?</w:p>`)
	textRunRe   = regexp.MustCompile(`(?s)<w:t[^>]*>(.*?)</w:t>`)

	xmlUnescaper = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&amp;", "&",
	)
)

// paragraphTexts pulls the visible text runs out of WordprocessingML,
// one string per non-empty <w:p> paragraph.
func paragraphTexts(documentXML string) []string {
	var out []string
	for _, para := range paragraphRe.FindAllString(documentXML, -1) {
		var sb strings.Builder
		for _, run := range textRunRe.FindAllStringSubmatch(para, -1) {
			sb.WriteString(xmlUnescaper.Replace(run[1]))
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			out = append(out, text)
		}
	}
	return out
}
