// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-enhancer/internal/schema"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults, CLI flags,
// or environment variables.
type Config struct {
	// Templates
	TemplateEN string `json:"template_en,omitempty"` // Path to the English Word template
	TemplateDE string `json:"template_de,omitempty"` // Path to the German Word template

	// Behavior
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key
	SchemaVersion string `json:"schema_version,omitempty"` // Normalization schema revision (v1, v2)
	TimeoutSecs   int    `json:"timeout_secs,omitempty"`   // Per-call LLM timeout in seconds
	UseBrowser    bool   `json:"use_browser,omitempty"`    // Headless browser fallback for job posting URLs
	Verbose       bool   `json:"verbose,omitempty"`        // Print detailed step information

	// Server
	Addr         string `json:"addr,omitempty"`          // Listen address, e.g. ":8080"
	PasswordHash string `json:"password_hash,omitempty"` // bcrypt hash of the access password
	DatabaseURL  string `json:"database_url,omitempty"`  // PostgreSQL connection URL for run history
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills empty fields from environment variables. Values already set
// (from a config file or flags) win over the environment.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.PasswordHash == "" {
		c.PasswordHash = os.Getenv("CV_PASSWORD_HASH")
	}
}

// Validate checks that the configuration has valid values.
// Required fields are not checked here; flag validation after merging owns
// that.
func (c *Config) Validate() error {
	if c.TimeoutSecs < 0 {
		return fmt.Errorf("config error: 'timeout_secs' must be non-negative")
	}

	if c.SchemaVersion != "" {
		switch schema.Version(c.SchemaVersion) {
		case schema.V1, schema.V2:
		default:
			return fmt.Errorf("config error: unknown schema_version %q", c.SchemaVersion)
		}
	}

	for _, template := range []string{c.TemplateEN, c.TemplateDE} {
		if template == "" {
			continue
		}
		if _, err := os.Stat(template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.TemplateEN == "" {
		result.TemplateEN = defaults.TemplateEN
	}
	if result.TemplateDE == "" {
		result.TemplateDE = defaults.TemplateDE
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SchemaVersion == "" {
		result.SchemaVersion = defaults.SchemaVersion
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.PasswordHash == "" {
		result.PasswordHash = defaults.PasswordHash
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.TimeoutSecs == 0 {
		result.TimeoutSecs = defaults.TimeoutSecs
	}

	// Bool fields: unset and false are indistinguishable, so CLI flags
	// always win for those.

	return result
}
