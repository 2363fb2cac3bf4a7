package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/raaihank/datascrub/internal/history"
	"github.com/raaihank/datascrub/internal/pii"
	"github.com/raaihank/datascrub/internal/replace"
	"github.com/raaihank/datascrub/internal/sanitize"
	"github.com/raaihank/datascrub/internal/ws"
)

// Version is the service version reported by /info.
const Version = "0.1.0"

// sanitizeResponse is the body returned by POST /api/sanitize.
type sanitizeResponse struct {
	RunID            string          `json:"run_id"`
	Success          bool            `json:"success"`
	RecordsProcessed int             `json:"records_processed"`
	FieldsDetected   int             `json:"pii_fields_detected"`
	ReplacementsMade int             `json:"pii_replacements_made"`
	ErrorMessage     string          `json:"error_message,omitempty"`
	Sanitized        json.RawMessage `json:"sanitized,omitempty"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
}

// handleInfo handles info requests
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":            "datascrub",
		"version":         Version,
		"detectors":       s.config.Sanitizer.Detectors,
		"cache_enabled":   s.config.Cache.Enabled,
		"storage_enabled": s.config.Storage.Enabled,
		"ws_clients":      s.wsHub.ClientCount(),
	})
}

// handleSanitize accepts a JSON upload (raw body or multipart "file"
// field), sanitizes it with a fresh replacement cache, and returns the
// run summary with the sanitized records inline. Each upload gets its
// own replacer so fake values never leak between tenants.
func (s *Server) handleSanitize(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	log := s.logger.WithRun(runID)

	data, filename, err := s.readUpload(r)
	if err != nil {
		log.Warn("Rejected upload", zap.Error(err))
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sanitizer := sanitize.New(s.detectors, replace.New(s.config.Sanitizer.Seed), log.Logger)

	start := time.Now()
	out, result := sanitizer.SanitizeData(data)
	duration := time.Since(start)

	s.metrics.ObserveRun(result)
	s.recordRun(r, runID, filename, result, duration, out)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}

	s.writeJSON(w, status, sanitizeResponse{
		RunID:            runID,
		Success:          result.Success,
		RecordsProcessed: result.RecordsProcessed,
		FieldsDetected:   result.FieldsDetected,
		ReplacementsMade: result.ReplacementsMade,
		ErrorMessage:     result.ErrorMessage,
		Sanitized:        out,
	})

	log.Info("Upload sanitized",
		zap.String("filename", filename),
		zap.Bool("success", result.Success),
		zap.Int("records", result.RecordsProcessed),
		zap.Int("replacements", result.ReplacementsMade),
		zap.Duration("duration", duration),
	)
}

// readUpload extracts the JSON payload from either a multipart form or
// the raw request body, capped at the configured upload size.
func (s *Server) readUpload(r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.config.Sanitizer.MaxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("missing 'file' form field: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read upload: %w", err)
		}
		return data, header.Filename, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read request body: %w", err)
	}
	return data, "", nil
}

// recordRun fans a finished run out to the optional result cache, the
// run history store, and WebSocket subscribers.
func (s *Server) recordRun(r *http.Request, runID, filename string, result pii.Result, duration time.Duration, out []byte) {
	ctx := r.Context()

	if s.results != nil && result.Success {
		if err := s.results.Put(ctx, runID, out); err != nil {
			s.logger.Warn("Failed to stage run output", zap.String("run_id", runID), zap.Error(err))
		}
	}

	if s.runs != nil {
		run := &history.Run{
			ID:               runID,
			Filename:         filename,
			Success:          result.Success,
			RecordsProcessed: result.RecordsProcessed,
			FieldsDetected:   result.FieldsDetected,
			ReplacementsMade: result.ReplacementsMade,
			ErrorMessage:     result.ErrorMessage,
			Duration:         duration,
		}
		if err := s.runs.Insert(ctx, run); err != nil {
			s.logger.Warn("Failed to persist run", zap.String("run_id", runID), zap.Error(err))
		}
	}

	s.wsHub.BroadcastEvent(ws.Event{
		Type:      ws.EventTypeRun,
		Timestamp: time.Now(),
		RunID:     runID,
		Data: ws.RunEvent{
			RunID:            runID,
			Filename:         filename,
			Success:          result.Success,
			RecordsProcessed: result.RecordsProcessed,
			FieldsDetected:   result.FieldsDetected,
			ReplacementsMade: result.ReplacementsMade,
			ErrorMessage:     result.ErrorMessage,
			Duration:         duration,
		},
	})

	if result.ReplacementsMade > 0 {
		s.wsHub.BroadcastEvent(ws.Event{
			Type:      ws.EventTypeDetection,
			Timestamp: time.Now(),
			RunID:     runID,
			Data: ws.DetectionEvent{
				RunID:          runID,
				FieldsDetected: result.FieldsDetected,
				Replacements:   result.ReplacementsMade,
			},
		})
	}
}

// handleListRuns returns recent run summaries from the history store.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		s.writeError(w, http.StatusNotImplemented, "run history storage is disabled")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := s.runs.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to list runs", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

// handleGetRun returns one run summary by ID.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		s.writeError(w, http.StatusNotImplemented, "run history storage is disabled")
		return
	}

	id := mux.Vars(r)["id"]
	run, err := s.runs.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("run %s not found", id))
		return
	}

	s.writeJSON(w, http.StatusOK, run)
}

// handleDownload streams the staged sanitized output for a run.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		s.writeError(w, http.StatusNotImplemented, "result staging is disabled")
		return
	}

	id := mux.Vars(r)["id"]
	data, ok, err := s.results.Get(r.Context(), id)
	if err != nil {
		s.logger.Error("Failed to fetch staged output", zap.String("run_id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to fetch run output")
		return
	}
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("no staged output for run %s", id))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="sanitized_%s.json"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
