package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-enhancer/internal/config"
	"github.com/jonathan/cv-enhancer/internal/db"
	"github.com/jonathan/cv-enhancer/internal/llm"
	"github.com/jonathan/cv-enhancer/internal/pipeline"
	"github.com/jonathan/cv-enhancer/internal/prompts"
	"github.com/jonathan/cv-enhancer/internal/schema"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full CV enhancement pipeline end-to-end",
	Long: `Extracts text from the given documents, consolidates it with any free text
and job posting, enhances it through the model, and renders the result into
the Word template.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath    string
	runFiles         []string
	runFreeText      string
	runJobURL        string
	runLanguage      string
	runTone          string
	runTemplate      string
	runOutput        string
	runSchemaVersion string
	runAPIKey        string
	runTimeoutSecs   int
	runUseBrowser    bool
	runVerbose       bool
	runDatabaseURL   string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringArrayVarP(&runFiles, "file", "f", nil, "CV document to read (.pdf or .docx), repeatable")
	runCommand.Flags().StringVar(&runFreeText, "free-text", "", "Additional notes consolidated with the documents")
	runCommand.Flags().StringVar(&runJobURL, "job-url", "", "Job posting URL whose text joins the input")
	runCommand.Flags().StringVarP(&runLanguage, "language", "l", "english", "Output language (english or german)")
	runCommand.Flags().StringVar(&runTone, "tone", string(prompts.ToneGeneral), "Rewrite tone, one of: "+toneList())
	runCommand.Flags().StringVarP(&runTemplate, "template", "t", "", "Path to the Word template for the chosen language")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Output path for the rendered document (defaults to the generated filename)")
	runCommand.Flags().StringVar(&runSchemaVersion, "schema-version", "", "Normalization schema revision (v1 or v2, default v2)")
	runCommand.Flags().IntVar(&runTimeoutSecs, "timeout", 0, "Per-call model timeout in seconds (default 90)")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA job postings (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed step information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for run history persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func toneList() string {
	list := ""
	for i, t := range prompts.Tones {
		if i > 0 {
			list += ", "
		}
		list += string(t)
	}
	return list
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if runVerbose {
			fmt.Printf("Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("schema-version") {
		cfg.SchemaVersion = runSchemaVersion
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSecs = runTimeoutSecs
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	// Step 3: Fill remaining gaps from the environment and defaults
	cfg.FromEnv()
	cfg = cfg.MergeWithDefaults(config.Config{
		SchemaVersion: string(schema.V2),
		TimeoutSecs:   int(llm.DefaultTimeout / time.Second),
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 4: Validate required inputs
	lang, err := parseLanguage(runLanguage)
	if err != nil {
		return err
	}
	tone, err := parseTone(runTone)
	if err != nil {
		return err
	}
	if len(runFiles) == 0 && runFreeText == "" {
		return fmt.Errorf("at least one --file or --free-text is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	templatePath := runTemplate
	if templatePath == "" {
		templatePath = templateFor(cfg, lang)
	}
	if templatePath == "" {
		return fmt.Errorf("--template or a template path in the config file is required")
	}

	documents, err := readDocuments(runFiles)
	if err != nil {
		return err
	}

	// Step 5: Build the gateway client
	llmConfig := llm.DefaultConfig().WithTimeout(time.Duration(cfg.TimeoutSecs) * time.Second)
	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	// Step 6: Optional run history
	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
	}

	// Step 7: Enhance and render
	result, err := pipeline.Enhance(ctx, pipeline.Options{
		Documents:  documents,
		FreeText:   runFreeText,
		JobURL:     runJobURL,
		Language:   lang,
		Tone:       tone,
		Schema:     schema.ForVersion(schema.Version(cfg.SchemaVersion)),
		Client:     client,
		Database:   database,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		return err
	}

	docxBytes, filename, err := pipeline.Render(result.Record, nil,
		schema.ForVersion(schema.Version(cfg.SchemaVersion)), lang, templatePath)
	if err != nil {
		return err
	}

	outputPath := runOutput
	if outputPath == "" {
		outputPath = filename
	}
	if err := os.WriteFile(outputPath, docxBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output document: %w", err)
	}

	fmt.Printf("Saved enhanced CV to %s\n", outputPath)
	return nil
}

// readDocuments loads the given files into memory for the pipeline.
func readDocuments(paths []string) ([]pipeline.Document, error) {
	documents := make([]pipeline.Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		documents = append(documents, pipeline.Document{Filename: path, Data: data})
	}
	return documents, nil
}

func parseLanguage(value string) (prompts.Language, error) {
	switch prompts.Language(value) {
	case prompts.English, "":
		return prompts.English, nil
	case prompts.German:
		return prompts.German, nil
	default:
		return "", fmt.Errorf("unknown language %q (expected english or german)", value)
	}
}

func parseTone(value string) (prompts.Tone, error) {
	if value == "" {
		return prompts.ToneGeneral, nil
	}
	for _, t := range prompts.Tones {
		if string(t) == value {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tone %q (expected one of: %s)", value, toneList())
}

// templateFor selects the configured template for a language.
func templateFor(cfg config.Config, lang prompts.Language) string {
	if lang == prompts.German {
		return cfg.TemplateDE
	}
	return cfg.TemplateEN
}
