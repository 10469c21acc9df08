package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
)

type errorBody struct {
	Error   string `json:"error"`
	MatchID string `json:"matchId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error kind to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrConflict), errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError writes the error response for err.
// Client errors carry the error text; server errors carry failureMessage and are logged.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, failureMessage string) {
	status := statusFor(err)

	if id, ok := model.ConflictMatchID(err); ok {
		writeJSON(w, status, errorBody{Error: "Match already exists", MatchID: id})
		return
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(failureMessage,
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSON(w, status, errorBody{Error: failureMessage})
		return
	}

	writeJSON(w, status, errorBody{Error: err.Error()})
}
