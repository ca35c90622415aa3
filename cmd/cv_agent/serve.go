package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-enhancer/internal/config"
	"github.com/jonathan/cv-enhancer/internal/llm"
	"github.com/jonathan/cv-enhancer/internal/schema"
	"github.com/jonathan/cv-enhancer/internal/server"
)

var (
	serveConfigPath string
	serveAddr       string
	serveTemplateEN string
	serveTemplateDE string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for enhancing and rendering CVs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", `Listen address (default ":8080")`)
	serveCmd.Flags().StringVar(&serveTemplateEN, "template-en", "", "Path to the English Word template")
	serveCmd.Flags().StringVar(&serveTemplateDE, "template-de", "", "Path to the German Word template")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loadedCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	}
	if cmd.Flags().Changed("template-en") {
		cfg.TemplateEN = serveTemplateEN
	}
	if cmd.Flags().Changed("template-de") {
		cfg.TemplateDE = serveTemplateDE
	}

	cfg.FromEnv()
	cfg = cfg.MergeWithDefaults(config.Config{
		Addr:          ":8080",
		SchemaVersion: string(schema.V2),
		TimeoutSecs:   int(llm.DefaultTimeout / time.Second),
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.PasswordHash == "" {
		return fmt.Errorf("CV_PASSWORD_HASH environment variable or password_hash config value is required")
	}
	if cfg.TemplateEN == "" && cfg.TemplateDE == "" {
		return fmt.Errorf("at least one Word template must be configured")
	}

	llmConfig := llm.DefaultConfig().WithTimeout(time.Duration(cfg.TimeoutSecs) * time.Second)
	client, err := llm.NewClient(context.Background(), llmConfig, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	srv, err := server.New(&cfg, client)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
