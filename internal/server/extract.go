package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vocabforge/vocabforge-server/constants"
	"github.com/vocabforge/vocabforge-server/internal/common"
	"github.com/vocabforge/vocabforge-server/internal/llm"
	"github.com/vocabforge/vocabforge-server/internal/pipeline"
)

// handleExtract runs one document through the ingestion pipeline and returns
// the sanitized candidate items. The response array may legitimately be
// empty; only empty *input text* is a caller error.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	upload, err := s.readUpload(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items, err := s.pipeline.Run(r.Context(), upload)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) readUpload(r *http.Request) (pipeline.Upload, error) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		return pipeline.Upload{}, fmt.Errorf("%w: %v", common.ErrNoFileUploaded, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return pipeline.Upload{}, common.ErrNoFileUploaded
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return pipeline.Upload{}, fmt.Errorf("read upload: %w", err)
	}

	return pipeline.Upload{
		Content:     content,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Mode:        constants.NormalizeParseMode(r.FormValue("parseMode")),
	}, nil
}

type importResponse struct {
	Inserted int `json:"inserted"`
	Total    int `json:"total"`
}

// handleImport sanitizes a JSON array of candidate items and merges it into
// the vocabulary store. Re-importing the same payload inserts nothing.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var raw []any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "request body must be a JSON array of vocabulary items"})
		return
	}

	items := llm.Sanitize(raw)
	inserted, err := s.store.Merge(r.Context(), items)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	stored, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Inserted: inserted, Total: len(stored)})
}

// handleListVocabulary returns the stored collection, the shape the quiz
// engine consumes.
func (s *Server) handleListVocabulary(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
