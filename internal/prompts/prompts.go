// Package prompts provides the LLM prompt templates for the enhancement
// pipeline.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Language selects which prompt set the pipeline uses. The rewrite step
// produces output in this language regardless of the input documents.
type Language string

const (
	English Language = "english"
	German  Language = "german"
)

// Tone steers the vocabulary and emphasis of the rewrite step. The values
// are the English labels offered to the user; German prompts translate them
// internally.
type Tone string

const (
	ToneExecutive Tone = "Executive / Leadership"
	ToneTechnical Tone = "Technical / Expert"
	ToneSales     Tone = "Sales / Commercial"
	ToneProject   Tone = "Project Management"
	ToneGeneral   Tone = "General Professional"
)

// Tones lists every supported tone in display order.
var Tones = []Tone{ToneExecutive, ToneTechnical, ToneSales, ToneProject, ToneGeneral}

// germanTones maps the English tone labels onto the labels the German
// rewrite prompt reasons about.
var germanTones = map[Tone]string{
	ToneExecutive: "Führungskraft / Management",
	ToneTechnical: "Technischer Experte / Spezialist",
	ToneSales:     "Vertrieb / Kommerziell",
	ToneProject:   "Projektmanagement",
	ToneGeneral:   "Allgemein / Fachlich",
}

func promptFile(lang Language) (string, error) {
	switch lang {
	case English:
		return "enhancement_en.json", nil
	case German:
		return "enhancement_de.json", nil
	default:
		return "", fmt.Errorf("unsupported prompt language %q", lang)
	}
}

// ExtractionPrompt builds the step 1 prompt that turns consolidated document
// text into a raw structured JSON object.
func ExtractionPrompt(lang Language, consolidatedText string) (string, error) {
	filename, err := promptFile(lang)
	if err != nil {
		return "", err
	}
	template, err := Get(filename, "extraction")
	if err != nil {
		return "", err
	}
	return Format(template, map[string]string{
		"ConsolidatedText": consolidatedText,
	}), nil
}

// RewritePrompt builds the step 2 prompt that rewrites the extracted data
// into the final narrative. extractedJSON is the step 1 output serialized as
// indented JSON; the consolidated text rides along so the model can see a
// job description when one was uploaded.
func RewritePrompt(lang Language, tone Tone, extractedJSON, consolidatedText string) (string, error) {
	filename, err := promptFile(lang)
	if err != nil {
		return "", err
	}
	template, err := Get(filename, "rewrite")
	if err != nil {
		return "", err
	}

	toneLabel := string(tone)
	if lang == German {
		label, ok := germanTones[tone]
		if !ok {
			label = germanTones[ToneGeneral]
		}
		toneLabel = label
	}

	return Format(template, map[string]string{
		"ExtractedJSON":    extractedJSON,
		"ConsolidatedText": consolidatedText,
		"Tone":             toneLabel,
	}), nil
}

// The prompt texts live next to this file as JSON documents mapping a step
// name to its template, and are embedded at compile time. Each file is
// parsed once and kept in memory.

//go:embed *.json
var promptFS embed.FS

var (
	cacheMu sync.Mutex
	cache   = make(map[string]map[string]string)
)

// Get retrieves a prompt template by filename and key.
// The filename should not include a path (e.g., "enhancement_en.json").
// Returns an error if the file or key is not found.
func Get(filename, key string) (string, error) {
	templates, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	template, exists := templates[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// Format replaces template placeholders in the form {{.Key}} with values
// from data. This is a simple template system for prompt customization.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

func loadFile(filename string) (map[string]string, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if templates, exists := cache[filename]; exists {
		return templates, nil
	}

	data, err := promptFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var templates map[string]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cache[filename] = templates
	return templates, nil
}

// ClearCache drops the parsed prompt files. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = make(map[string]map[string]string)
}
