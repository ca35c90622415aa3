package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetModelFallbackChain(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{TierStandard: "standard-model"}}

	assert.Equal(t, "standard-model", cfg.GetModel(TierStandard))
	// Unconfigured tiers fall back to standard.
	assert.Equal(t, "standard-model", cfg.GetModel(TierAdvanced))

	liteOnly := &Config{Models: map[ModelTier]string{TierLite: "lite-model"}}
	assert.Equal(t, "lite-model", liteOnly.GetModel(TierAdvanced))

	empty := &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierStandard))
}

func TestWithModelDoesNotMutateOriginal(t *testing.T) {
	original := DefaultConfig()
	originalAdvanced := original.GetModel(TierAdvanced)

	modified := original.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "custom-model", modified.GetModel(TierAdvanced))
	assert.Equal(t, originalAdvanced, original.GetModel(TierAdvanced))
}

func TestWithTimeout(t *testing.T) {
	cfg := DefaultConfig().WithTimeout(5 * time.Second)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, DefaultTimeout, DefaultConfig().Timeout)
}
