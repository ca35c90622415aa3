// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-enhancer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// DocumentSummary describes one input document after text extraction.
type DocumentSummary struct {
	Filename string
	Chars    int
	Skipped  bool
	Reason   string
}

// PrintExtraction outputs a summary of which documents contributed text to
// the consolidated input.
func (p *Printer) PrintExtraction(docs []DocumentSummary, freeTextChars int) {
	var sb strings.Builder

	for _, doc := range docs {
		if doc.Skipped {
			sb.WriteString(fmt.Sprintf("✗ %s (%s)\n", doc.Filename, doc.Reason))
			continue
		}
		sb.WriteString(fmt.Sprintf("✓ %s (%d chars)\n", doc.Filename, doc.Chars))
	}
	if freeTextChars > 0 {
		sb.WriteString(fmt.Sprintf("✓ free text (%d chars)\n", freeTextChars))
	}
	if sb.Len() == 0 {
		sb.WriteString("no input documents\n")
	}

	p.printBox("EXTRACTED DOCUMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecord outputs a human-readable summary of a normalized CV record.
func (p *Printer) PrintRecord(title string, record *types.CVRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:   %s\n", record.PersonalInfo.Name))
	sb.WriteString(fmt.Sprintf("Title:  %s\n", record.PersonalInfo.Title))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Jobs:      %d\n", len(record.WorkExperience)))
	sb.WriteString(fmt.Sprintf("Education: %d\n", len(record.Education)))
	sb.WriteString(fmt.Sprintf("Languages: %d\n", len(record.Languages)))
	sb.WriteString(fmt.Sprintf("Hobbies:   %d\n", len(record.Hobbies)))

	if len(record.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(record.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", record.Skills[i]))
		}
		if len(record.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Skills)-maxItemsToShow))
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStep outputs a short single-line progress marker.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStep(format string, args ...any) {
	fmt.Fprintf(p.out, "→ "+format+"\n", args...)
}
