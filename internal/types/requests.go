package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// LoginRequest represents the login request against the shared access
// password that gates the service.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token issued on a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// EnhanceRequest holds the non-file fields of an enhancement request. Files
// arrive as multipart uploads alongside it.
type EnhanceRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=english german"`
	Tone     string `json:"tone,omitempty"`
	FreeText string `json:"free_text,omitempty"`
	JobURL   string `json:"job_url,omitempty" validate:"omitempty,url"`
}

// EnhanceResponse returns the normalized record ready for editing, plus the
// run ID when history persistence is enabled.
type EnhanceResponse struct {
	RunID  *uuid.UUID `json:"run_id,omitempty"`
	Record *CVRecord  `json:"record"`
}

// RenderRequest asks for a record, with optional field edits applied, to be
// filled into the Word template for the given language.
type RenderRequest struct {
	Language string    `json:"language" validate:"omitempty,oneof=english german"`
	Record   *CVRecord `json:"record" validate:"required"`
	Edits    []Edit    `json:"edits,omitempty"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the EnhanceRequest using the validator.
func (r *EnhanceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RenderRequest using the validator.
func (r *RenderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
