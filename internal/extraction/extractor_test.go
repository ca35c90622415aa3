package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextUnsupportedMime(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
	}{
		{"plain text", "text/plain"},
		{"image", "image/png"},
		{"legacy word", "application/msword"},
		{"empty mime", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractText("upload.bin", tt.mimeType, []byte("irrelevant"))
			assert.Empty(t, text)
			assert.NoError(t, err)
		})
	}
}

func TestExtractTextCorruptPDF(t *testing.T) {
	text, err := ExtractText("broken.pdf", MimePDF, []byte("this is not a pdf"))
	assert.Empty(t, text)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "broken.pdf", extractionErr.Filename)
}

func TestExtractTextCorruptDOCX(t *testing.T) {
	text, err := ExtractText("broken.docx", MimeDOCX, []byte("this is not a zip archive"))
	assert.Empty(t, text)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "broken.docx", extractionErr.Filename)
}

func TestMimeTypeOf(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"cv.pdf", MimePDF},
		{"CV.PDF", MimePDF},
		{"letter.docx", MimeDOCX},
		{"notes.txt", ""},
		{"no_extension", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, MimeTypeOf(tt.filename))
		})
	}
}

func TestParagraphTexts(t *testing.T) {
	documentXML := `<w:document><w:body>` +
		`<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Split </w:t></w:r><w:r><w:t>run</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>   </w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`<w:p><w:r><w:t>Fischer &amp; S&#246;hne</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	paragraphs := paragraphTexts(documentXML)
	require.Len(t, paragraphs, 3)
	assert.Equal(t, "First paragraph", paragraphs[0])
	assert.Equal(t, "Split run", paragraphs[1])
	assert.Equal(t, "Fischer & S&#246;hne", paragraphs[2])
}
