package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{
		StepConsolidatedText,
		StepExtracted,
		StepRewritten,
		StepRecord,
	}

	seen := make(map[string]bool, len(steps))
	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
		assert.False(t, seen[step], "step constant %q duplicated", step)
		seen[step] = true
	}
}

func TestRunType(t *testing.T) {
	run := Run{
		CandidateName: "Jane Doe",
		Language:      "english",
		Tone:          "General Professional",
		Status:        StatusRunning,
	}

	assert.Equal(t, "Jane Doe", run.CandidateName)
	assert.Equal(t, StatusRunning, run.Status)
	assert.Nil(t, run.CompletedAt)
}
