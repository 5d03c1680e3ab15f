// Package server exposes the ingestion pipeline over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vocabforge/vocabforge-server/internal/common"
	"github.com/vocabforge/vocabforge-server/internal/pipeline"
	"github.com/vocabforge/vocabforge-server/internal/store"
)

type Server struct {
	pipeline       *pipeline.Pipeline
	store          *store.FileStore
	logger         *slog.Logger
	maxUploadBytes int64
}

func New(p *pipeline.Pipeline, st *store.FileStore, logger *slog.Logger, maxUploadMB int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadMB <= 0 {
		maxUploadMB = 32
	}
	return &Server{
		pipeline:       p,
		store:          st,
		logger:         logger,
		maxUploadBytes: int64(maxUploadMB) << 20,
	}
}

// Routes builds the router. CORS allows any origin; the browser client is
// served from a different host than the API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(cors)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	})

	r.Get("/healthz", s.handleHealthz)
	r.Post("/api/extract", s.handleExtract)
	r.Post("/api/vocabulary/import", s.handleImport)
	r.Get("/api/vocabulary", s.handleListVocabulary)
	return r
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := uuid.New().String()
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("http.request",
			"req_id", rid,
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "service": "vocabforge"})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a pipeline error to its status class and a JSON envelope.
// No error crashes the process; the caller always receives JSON.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := common.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("http.error", "path", r.URL.Path, "status", status, "error", err)
	} else {
		s.logger.Warn("http.client_error", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
