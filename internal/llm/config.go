// Package llm provides centralized LLM configuration and client abstractions
// for the AI gateway.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short summaries.
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction from consolidated documents.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for the rewrite pass, which needs sustained reasoning.
	TierAdvanced ModelTier = "advanced"
)

// DefaultTimeout bounds a single generation call. The upstream service gives
// no latency guarantee, so without a deadline a slow call hangs the whole
// user action.
const DefaultTimeout = 90 * time.Second

// Config holds the model configuration for the gateway.
type Config struct {
	Models  map[ModelTier]string
	Timeout time.Duration
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Timeout: DefaultTimeout,
	}
}

// GetModel returns the model name for a tier, falling back to standard and
// then lite when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with a specific model for a tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := c.clone()
	out.Models[tier] = model
	return out
}

// WithTimeout returns a copy of the config with the given per-call timeout.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	out := c.clone()
	out.Timeout = timeout
	return out
}

func (c *Config) clone() *Config {
	out := &Config{
		Models:  make(map[ModelTier]string, len(c.Models)),
		Timeout: c.Timeout,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	return out
}
