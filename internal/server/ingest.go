package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hrdesk/hrdesk-go/internal/assistant"
	"github.com/hrdesk/hrdesk-go/internal/corpus"
	"github.com/hrdesk/hrdesk-go/internal/logging"
)

// handleIngest handles POST /api/ingest by rebuilding the corpus snapshot and
// similarity index. In-flight chat requests keep answering from the previous
// snapshot while the rebuild runs; a second concurrent rebuild is refused
// with 409.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	var src corpus.Source
	if req.Path != "" {
		src = corpus.NewCSVSource(req.Path)
	}

	log := logging.FromContext(r.Context())
	count, err := s.searcher.RebuildFrom(r.Context(), src)
	switch {
	case errors.Is(err, assistant.ErrRebuildInProgress):
		writeJSON(w, http.StatusConflict, ingestResponse{
			Status:  "error",
			Message: "another rebuild is already running",
		})
		return
	case err != nil:
		log.Error("ingest failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, ingestResponse{
			Status:  "error",
			Message: "rebuild failed: " + err.Error(),
		})
		return
	}

	log.Info("ingest complete", slog.Int("records", count))
	writeJSON(w, http.StatusOK, ingestResponse{
		Status:  "ok",
		Records: count,
		Message: fmt.Sprintf("loaded %d records", count),
	})
}
