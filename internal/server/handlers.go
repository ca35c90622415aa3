package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/cv-enhancer/internal/db"
	"github.com/jonathan/cv-enhancer/internal/pipeline"
	"github.com/jonathan/cv-enhancer/internal/prompts"
	"github.com/jonathan/cv-enhancer/internal/types"
)

// maxUploadBytes bounds the total size of one multipart enhancement request.
const maxUploadBytes = 32 << 20

// handleLogin checks the shared access password and issues a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "password is required")
		return
	}

	if !s.passwordConfig.VerifyPassword(req.Password, s.passwordHash) {
		err := &ErrInvalidCredentials{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(uuid.New())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to issue token: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.LoginResponse{Token: token})
}

// handleEnhance runs the full enhancement pipeline on the uploaded documents
// and returns the normalized record.
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	req := types.EnhanceRequest{
		Language: r.FormValue("language"),
		Tone:     r.FormValue("tone"),
		FreeText: r.FormValue("free_text"),
		JobURL:   r.FormValue("job_url"),
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	tone, err := parseTone(req.Tone)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	documents, err := readUploads(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(documents) == 0 && req.FreeText == "" {
		s.errorResponse(w, http.StatusBadRequest, "At least one document or free_text is required")
		return
	}

	out := io.Discard
	if s.verbose {
		out = os.Stdout
	}

	result, err := pipeline.Enhance(r.Context(), pipeline.Options{
		Documents:  documents,
		FreeText:   req.FreeText,
		JobURL:     req.JobURL,
		Language:   prompts.Language(req.Language),
		Tone:       tone,
		Schema:     s.schema,
		Client:     s.client,
		Database:   s.db,
		UseBrowser: s.useBrowser,
		Verbose:    s.verbose,
		Out:        out,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.EnhanceResponse{
		RunID:  result.RunID,
		Record: result.Record,
	})
}

// handleRender applies edits to a record and fills it into the Word template
// for the requested language.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req types.RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	lang := prompts.Language(req.Language)
	if lang == "" {
		lang = prompts.English
	}

	templatePath := s.templates[lang]
	if templatePath == "" {
		s.errorResponse(w, http.StatusInternalServerError,
			fmt.Sprintf("No template configured for language %q", lang))
		return
	}

	docxBytes, filename, err := pipeline.Render(req.Record, req.Edits, s.schema, lang, templatePath)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(docxBytes)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(docxBytes); err != nil {
		// Headers are already sent, nothing left to do but log.
		fmt.Fprintf(os.Stderr, "failed to write document response: %v\n", err)
	}
}

// handleListRuns returns past enhancement runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history is not enabled")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	runs, err := s.db.ListRuns(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs})
}

// RunDetailResponse carries a run's metadata together with the artifacts
// the pipeline stored for it, keyed by step name.
type RunDetailResponse struct {
	Run       *db.Run                    `json:"run"`
	Artifacts map[string]json.RawMessage `json:"artifacts,omitempty"`
}

// handleGetRun returns a single run by ID, including its stored artifacts
// (consolidated input text, both raw gateway outputs, the final record).
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history is not enabled")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}

	consolidated, err := s.db.GetTextArtifact(r.Context(), runID, db.StepConsolidatedText)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	jsonSteps := make(map[string][]byte, 3)
	for _, step := range []string{db.StepExtracted, db.StepRewritten, db.StepRecord} {
		content, err := s.db.GetArtifact(r.Context(), runID, step)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		jsonSteps[step] = content
	}

	s.jsonResponse(w, http.StatusOK, RunDetailResponse{
		Run:       run,
		Artifacts: artifactPayload(consolidated, jsonSteps),
	})
}

// artifactPayload assembles the artifacts map for a run detail response.
// Steps the pipeline never reached are simply absent; a run with no stored
// artifacts gets no artifacts field at all.
func artifactPayload(consolidated string, jsonSteps map[string][]byte) map[string]json.RawMessage {
	artifacts := make(map[string]json.RawMessage, len(jsonSteps)+1)
	if consolidated != "" {
		encoded, err := json.Marshal(consolidated)
		if err == nil {
			artifacts[db.StepConsolidatedText] = encoded
		}
	}
	for step, content := range jsonSteps {
		if len(content) > 0 {
			artifacts[step] = json.RawMessage(content)
		}
	}
	if len(artifacts) == 0 {
		return nil
	}
	return artifacts
}

// handleDeleteRun deletes a run and its stored artifacts.
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history is not enabled")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	if err := s.db.DeleteRun(r.Context(), runID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseTone maps the tone field onto a known tone label. An empty value
// selects the general tone.
func parseTone(value string) (prompts.Tone, error) {
	if value == "" {
		return prompts.ToneGeneral, nil
	}
	for _, t := range prompts.Tones {
		if string(t) == value {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tone %q", value)
}

// readUploads collects the uploaded files from a multipart request.
func readUploads(r *http.Request) ([]pipeline.Document, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var documents []pipeline.Document
	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read upload %s: %w", header.Filename, err)
		}
		documents = append(documents, pipeline.Document{
			Filename: header.Filename,
			Data:     data,
		})
	}
	return documents, nil
}
