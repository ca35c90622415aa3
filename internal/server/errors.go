// Package server provides the HTTP REST API for the CV enhancer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-enhancer/internal/decode"
	"github.com/jonathan/cv-enhancer/internal/extraction"
	"github.com/jonathan/cv-enhancer/internal/llm"
	"github.com/jonathan/cv-enhancer/internal/rendering"
	"github.com/jonathan/cv-enhancer/internal/types"
)

// ErrInvalidCredentials indicates a wrong access password.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus maps an error from the pipeline or auth layer to an HTTP
// status code. Model failures surface as gateway errors so clients can
// distinguish them from bugs in this service.
func HTTPStatus(err error) int {
	var (
		invalidCreds   *ErrInvalidCredentials
		validation     *ErrValidation
		editErr        *types.EditError
		extractionErr  *extraction.ExtractionError
		gatewayTimeout *llm.GatewayTimeout
		gatewayErr     *llm.GatewayError
		noJSON         *decode.NoJSONObjectError
		malformed      *decode.MalformedJSONError
		renderErr      *rendering.TemplateRenderError
	)

	switch {
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &validation), errors.As(err, &editErr), errors.As(err, &extractionErr):
		return http.StatusBadRequest
	case errors.Is(err, extraction.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.As(err, &gatewayTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &gatewayErr), errors.As(err, &noJSON), errors.As(err, &malformed):
		return http.StatusBadGateway
	case errors.As(err, &renderErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
