package api

import (
	"net/http"
)

// handleHistory returns the most recent operations, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.recorder.Recent(r.Context())
	if err != nil {
		s.metrics.historyReadFailures.Inc()
		s.logger.Error("reading history failed",
			"request_id", requestIDFrom(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, ErrCodeStorageUnavailable, "Failed to retrieve history.")
		return
	}

	writeJSON(w, http.StatusOK, records)
}
