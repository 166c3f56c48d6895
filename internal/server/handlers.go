package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/vendor-profiler/internal/db"
	"github.com/jonathan/vendor-profiler/internal/pipeline"
)

// Runner executes vendor analysis runs. *pipeline.Orchestrator satisfies it;
// tests substitute stubs.
type Runner interface {
	Run(ctx context.Context, url string) (map[string]any, error)
	RunStream(ctx context.Context, url string, onProgress pipeline.ProgressCallback) (map[string]any, error)
}

// AnalyzeRequest represents the request body for /analyze and /analyze/stream
type AnalyzeRequest struct {
	URL string `json:"url" validate:"required,http_url"`
}

// AnalyzeResponse represents the response for /analyze
type AnalyzeResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// RunStatusResponse represents the response for /runs/{id}
type RunStatusResponse struct {
	RunID       string `json:"run_id"`
	WebsiteURL  string `json:"website_url"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// decodeAnalyzeRequest parses and validates the analyze request body, writing
// the error response itself when the request is unusable.
func (s *Server) decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (AnalyzeRequest, bool) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return req, false
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "url must be a valid http(s) URL")
		return req, false
	}
	return req, true
}

// handleAnalyze runs a full analysis synchronously and returns the profile
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	log.Printf("Starting analysis for %s", req.URL)

	profile, err := s.runner.Run(r.Context(), req.URL)
	if err != nil {
		// Content retrieval is the only fatal failure; everything downstream
		// degrades to empty sections instead of erroring.
		s.jsonResponse(w, http.StatusBadGateway, AnalyzeResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		Success: true,
		Data:    profile,
	})
}

// handleAnalyzeStream runs an analysis and streams progress via SSE
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming analysis for %s", req.URL)

	// The orchestrator emits the whole event sequence including the terminal
	// event, so the handler only forwards frames.
	_, err = s.runner.RunStream(r.Context(), req.URL, func(event pipeline.ProgressEvent) {
		if writeErr := sse.WriteEvent(event); writeErr != nil {
			log.Printf("Failed to write SSE event: %v", writeErr)
		}
	})
	if err != nil {
		log.Printf("Streaming analysis failed: %v", err)
	}
}

// handleIntegrations returns the canonical integration catalog
func (s *Server) handleIntegrations(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.ListIntegrations(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"integrations": records})
}

// handleGetRun returns the status of an analysis run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	runID, err := uuid.Parse(idStr)
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

	s.jsonResponse(w, http.StatusOK, runStatusResponse(run))
}

// handleListRuns returns recent analysis runs, newest first
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.db.ListRuns(r.Context(), defaultRunListLimit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	resp := make([]RunStatusResponse, 0, len(runs))
	for i := range runs {
		resp = append(resp, runStatusResponse(&runs[i]))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": resp})
}

// handleGetArtifact returns one stored artifact of an analysis run as raw JSON
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}
	step := r.PathValue("step")

	content, err := s.db.GetArtifact(r.Context(), runID, step)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "Artifact not found")
		return
	}

	// Artifacts are stored as JSON; pass them through untouched.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		log.Printf("Error writing artifact response: %v", err)
	}
}

// handleGetProfile returns the stored vendor profile for a website URL
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	websiteURL := r.URL.Query().Get("url")
	if websiteURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	profile, err := s.db.GetVendorProfile(r.Context(), websiteURL)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// defaultRunListLimit caps the /runs listing.
const defaultRunListLimit = 50

func runStatusResponse(run *db.Run) RunStatusResponse {
	resp := RunStatusResponse{
		RunID:      run.ID.String(),
		WebsiteURL: run.WebsiteURL,
		Status:     run.Status,
		CreatedAt:  run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if run.CompletedAt != nil {
		resp.CompletedAt = run.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}
