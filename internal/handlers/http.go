package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/spacesedan/feedback-sentiment/internal/clients"
	"github.com/spacesedan/feedback-sentiment/internal/models"
)

// Analyzer classifies a single comment.
type Analyzer interface {
	Analyze(ctx context.Context, comment string) (models.SentimentResult, error)
}

type HTTPHandler struct {
	analyzer        Analyzer
	upstreamHealthy *atomic.Bool
}

// NewHTTPHandler wires the comment endpoint. upstreamHealthy may be nil when
// health polling is disabled.
func NewHTTPHandler(a Analyzer, upstreamHealthy *atomic.Bool) *HTTPHandler {
	return &HTTPHandler{analyzer: a, upstreamHealthy: upstreamHealthy}
}

// Routes returns the full handler tree with CORS and access logging applied.
func (h *HTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /comment", h.HandleComment)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
	return accessLog(newCORS().Handler(mux))
}

func (h *HTTPHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	var payload models.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Detail: "invalid request body: " + err.Error()})
		return
	}
	if payload.Comment == nil {
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Detail: "field required: comment"})
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), *payload.Comment)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Detail: errorDetail(err)})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	upstream := "unknown"
	if h.upstreamHealthy != nil {
		upstream = "unhealthy"
		if h.upstreamHealthy.Load() {
			upstream = "healthy"
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "upstream": upstream})
}

// errorDetail returns the upstream error text without our wrapping.
func errorDetail(err error) string {
	var ue *clients.UpstreamError
	if errors.As(err, &ue) {
		return ue.Error()
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("[HTTP] Failed to write response", slog.String("error", err.Error()))
	}
}
