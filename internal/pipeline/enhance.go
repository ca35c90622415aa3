// Package pipeline provides the high-level orchestration for the CV
// enhancement process: document extraction, consolidation, the two model
// calls, and normalization.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/jonathan/cv-enhancer/internal/db"
	"github.com/jonathan/cv-enhancer/internal/decode"
	"github.com/jonathan/cv-enhancer/internal/extraction"
	"github.com/jonathan/cv-enhancer/internal/fetch"
	"github.com/jonathan/cv-enhancer/internal/llm"
	"github.com/jonathan/cv-enhancer/internal/observability"
	"github.com/jonathan/cv-enhancer/internal/prompts"
	"github.com/jonathan/cv-enhancer/internal/schema"
	"github.com/jonathan/cv-enhancer/internal/schemas"
	"github.com/jonathan/cv-enhancer/internal/types"
)

// Document is one uploaded input file.
type Document struct {
	Filename string
	Data     []byte
}

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for one enhancement run
type Options struct {
	Documents []Document
	FreeText  string
	JobURL    string

	Language prompts.Language
	Tone     prompts.Tone
	Schema   schema.Schema

	Client     llm.Client // required
	Database   *db.DB     // optional run history
	UseBrowser bool
	Verbose    bool
	Out        io.Writer // verbose output destination, defaults to stdout
	OnProgress ProgressCallback
}

// Result carries the intermediate and final artifacts of a run.
type Result struct {
	RunID        *uuid.UUID
	Consolidated string
	Extracted    *types.CVRecord
	Record       *types.CVRecord
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, runID uuid.UUID, step, message string) {
	if opts.OnProgress == nil {
		return
	}
	event := ProgressEvent{Step: step, Message: message}
	if runID != uuid.Nil {
		event.RunID = runID.String()
	}
	opts.OnProgress(event)
}

// Enhance runs the full enhancement pipeline and returns the normalized
// record ready for editing. Individual documents that cannot be read are
// skipped; the run only fails when no input text remains, a model call
// fails, or its output contains no JSON object.
func Enhance(ctx context.Context, opts Options) (*Result, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("pipeline: no LLM client configured")
	}
	if opts.Language == "" {
		opts.Language = prompts.English
	}
	if opts.Tone == "" {
		opts.Tone = prompts.ToneGeneral
	}
	if opts.Schema.Version == "" {
		opts.Schema = schema.Default()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	printer := observability.NewPrinter(opts.Out)
	result := &Result{}

	// Step 1: extract text from every input document. A file that cannot
	// be read is reported and skipped, it must not sink the whole run.
	fmt.Fprintf(opts.Out, "Step 1/4: Extracting text from %d document(s)...\n", len(opts.Documents))
	texts := make([]string, 0, len(opts.Documents)+1)
	summaries := make([]observability.DocumentSummary, 0, len(opts.Documents))
	for _, doc := range opts.Documents {
		text, err := extraction.ExtractText(doc.Filename, extraction.MimeTypeOf(doc.Filename), doc.Data)
		if err != nil {
			fmt.Fprintf(opts.Out, "Warning: skipping %s: %v\n", doc.Filename, err)
			summaries = append(summaries, observability.DocumentSummary{
				Filename: doc.Filename, Skipped: true, Reason: "extraction failed",
			})
			continue
		}
		texts = append(texts, text)
		summaries = append(summaries, observability.DocumentSummary{Filename: doc.Filename, Chars: len(text)})
	}

	if opts.JobURL != "" {
		fetchOpts := fetch.DefaultOptions()
		fetchOpts.DisableBrowser = !opts.UseBrowser
		posting, err := fetch.JobPostingText(ctx, opts.JobURL, fetchOpts)
		if err != nil {
			fmt.Fprintf(opts.Out, "Warning: failed to fetch job posting %s: %v\n", opts.JobURL, err)
		} else {
			texts = append(texts, posting)
			summaries = append(summaries, observability.DocumentSummary{Filename: opts.JobURL, Chars: len(posting)})
		}
	}

	if opts.Verbose {
		printer.PrintExtraction(summaries, len(opts.FreeText))
	}

	consolidated, err := extraction.Consolidate(texts, opts.FreeText)
	if err != nil {
		return nil, err
	}
	result.Consolidated = consolidated
	emitProgress(&opts, uuid.Nil, db.StepConsolidatedText,
		fmt.Sprintf("Consolidated %d character(s) of input text", len(consolidated)))

	// Run history is best effort: a failed insert degrades to a run
	// without persistence, never to a failed run.
	var runID uuid.UUID
	if opts.Database != nil {
		runID, err = opts.Database.CreateRun(ctx, "", string(opts.Language), string(opts.Tone))
		if err != nil {
			fmt.Fprintf(opts.Out, "Warning: failed to create database run: %v\n", err)
			runID = uuid.Nil
		} else {
			result.RunID = &runID
			_ = opts.Database.SaveTextArtifact(ctx, runID, db.StepConsolidatedText, consolidated)
		}
	}

	failRun := func(cause error) (*Result, error) {
		if opts.Database != nil && runID != uuid.Nil {
			_ = opts.Database.CompleteRun(ctx, runID, db.StatusFailed, "")
		}
		return nil, cause
	}

	// Step 2: first model call, raw data extraction.
	fmt.Fprintf(opts.Out, "Step 2/4: Extracting raw CV data...\n")
	extractionPrompt, err := prompts.ExtractionPrompt(opts.Language, consolidated)
	if err != nil {
		return failRun(err)
	}
	extractedText, err := opts.Client.GenerateContent(ctx, extractionPrompt, llm.TierStandard)
	if err != nil {
		return failRun(fmt.Errorf("extraction call failed: %w", err))
	}
	extractedRaw, err := decode.Decode(extractedText)
	if err != nil {
		return failRun(fmt.Errorf("extraction output: %w", err))
	}
	result.Extracted = opts.Schema.Normalize(extractedRaw)
	if opts.Verbose {
		printer.PrintRecord("EXTRACTED RECORD", result.Extracted)
	}
	emitProgress(&opts, runID, db.StepExtracted, "Extracted raw CV data")
	if opts.Database != nil && runID != uuid.Nil {
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepExtracted, result.Extracted)
	}

	// Step 3: second model call, tone-driven rewrite.
	fmt.Fprintf(opts.Out, "Step 3/4: Rewriting content for a '%s' role...\n", opts.Tone)
	extractedJSON, err := json.MarshalIndent(extractedRaw, "", "  ")
	if err != nil {
		return failRun(fmt.Errorf("failed to serialize extracted data: %w", err))
	}
	rewritePrompt, err := prompts.RewritePrompt(opts.Language, opts.Tone, string(extractedJSON), consolidated)
	if err != nil {
		return failRun(err)
	}
	rewrittenText, err := opts.Client.GenerateContent(ctx, rewritePrompt, llm.TierAdvanced)
	if err != nil {
		return failRun(fmt.Errorf("rewrite call failed: %w", err))
	}
	rewrittenRaw, err := decode.Decode(rewrittenText)
	if err != nil {
		return failRun(fmt.Errorf("rewrite output: %w", err))
	}

	// Step 4: normalize onto the canonical record shape.
	fmt.Fprintf(opts.Out, "Step 4/4: Normalizing record...\n")
	result.Record = opts.Schema.Normalize(rewrittenRaw)
	if opts.Verbose {
		printer.PrintRecord("REWRITTEN RECORD", result.Record)
		if err := schemas.ValidateRecord(result.Record); err != nil {
			fmt.Fprintf(opts.Out, "Warning: normalized record failed schema validation: %v\n", err)
		}
	}
	emitProgress(&opts, runID, db.StepRecord, "Normalized rewritten record")

	if opts.Database != nil && runID != uuid.Nil {
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepRewritten, rewrittenRaw)
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepRecord, result.Record)
		_ = opts.Database.CompleteRun(ctx, runID, db.StatusCompleted, result.Record.PersonalInfo.Name)
	}

	return result, nil
}
