package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/cv-enhancer/internal/decode"
	"github.com/jonathan/cv-enhancer/internal/extraction"
	"github.com/jonathan/cv-enhancer/internal/llm"
	"github.com/jonathan/cv-enhancer/internal/rendering"
	"github.com/jonathan/cv-enhancer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"validation", &ErrValidation{Field: "tone", Message: "unknown"}, http.StatusBadRequest},
		{"edit error", &types.EditError{Message: "index out of range"}, http.StatusBadRequest},
		{"empty input", extraction.ErrEmptyInput, http.StatusBadRequest},
		{"wrapped empty input", fmt.Errorf("consolidate: %w", extraction.ErrEmptyInput), http.StatusBadRequest},
		{"gateway error", &llm.GatewayError{Message: "boom"}, http.StatusBadGateway},
		{"gateway timeout", &llm.GatewayTimeout{Model: "gemini-2.5-pro"}, http.StatusGatewayTimeout},
		{"no JSON object", &decode.NoJSONObjectError{Raw: "sorry"}, http.StatusBadGateway},
		{"malformed JSON", &decode.MalformedJSONError{Raw: "{"}, http.StatusBadGateway},
		{"wrapped gateway error", fmt.Errorf("extraction call: %w", &llm.GatewayError{Message: "x"}), http.StatusBadGateway},
		{"render error", &rendering.TemplateRenderError{Message: "missing template"}, http.StatusInternalServerError},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
