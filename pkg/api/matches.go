package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/core/services"
)

type createMatchRequest struct {
	VolunteerID string `json:"volunteerId" validate:"required"`
	EventID     string `json:"eventId" validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// decode reads a JSON body into v and validates its struct tags
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("malformed request body: %w", model.ErrInvalidInput)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), model.ErrInvalidInput)
	}
	return nil
}

// listMatches handles GET /matches
func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := services.ListMatches(r.Context(), s.store)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch matches")
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// getMatch handles GET /matches/{id}
func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	match, err := services.GetMatch(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch match")
		return
	}
	writeJSON(w, http.StatusOK, match)
}

// createMatch handles POST /matches
func (s *Server) createMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err, "Failed to create match")
		return
	}

	match, err := services.CreateMatch(r.Context(), s.store, s.notifier, s.logger, req.VolunteerID, req.EventID)
	if err != nil {
		s.writeError(w, r, err, "Failed to create match")
		return
	}
	writeJSON(w, http.StatusCreated, match)
}

// updateMatchStatus handles PUT /matches/{id}/status
func (s *Server) updateMatchStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err, "Failed to update match status")
		return
	}

	match, err := services.UpdateMatchStatus(r.Context(), s.store, s.notifier, s.logger, chi.URLParam(r, "id"), model.MatchStatus(req.Status))
	if err != nil {
		s.writeError(w, r, err, "Failed to update match status")
		return
	}
	writeJSON(w, http.StatusOK, match)
}

// deleteMatch handles DELETE /matches/{id}
func (s *Server) deleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteMatch(r.Context(), s.store, s.notifier, s.logger, chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err, "Failed to delete match")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Match deleted successfully"})
}

// recommendVolunteers handles GET /matches/recommendations/event/{eventId}
func (s *Server) recommendVolunteers(w http.ResponseWriter, r *http.Request) {
	recs, err := services.RecommendVolunteers(r.Context(), s.store, s.logger, chi.URLParam(r, "eventId"))
	if err != nil {
		s.writeError(w, r, err, "Failed to get volunteer recommendations")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// recommendEvents handles GET /matches/recommendations/volunteer/{volunteerId}
func (s *Server) recommendEvents(w http.ResponseWriter, r *http.Request) {
	recs, err := services.RecommendEvents(r.Context(), s.store, s.logger, chi.URLParam(r, "volunteerId"))
	if err != nil {
		s.writeError(w, r, err, "Failed to get event recommendations")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// calculateScore handles GET /matches/score?volunteerId=&eventId=
func (s *Server) calculateScore(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := services.CalculateScore(r.Context(), s.store, s.logger, query.Get("volunteerId"), query.Get("eventId"))
	if err != nil {
		s.writeError(w, r, err, "Failed to calculate match score")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// getMatchHistory handles GET /matches/history/all.
// No history is an empty list, not an error.
func (s *Server) getMatchHistory(w http.ResponseWriter, r *http.Request) {
	history, err := services.GetMatchHistory(r.Context(), s.store, s.logger)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch match history")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// autoMatch handles POST /matches/auto
func (s *Server) autoMatch(w http.ResponseWriter, r *http.Request) {
	created, err := services.AutoMatchAll(r.Context(), s.store, s.notifier, s.logger)
	if err != nil {
		s.writeError(w, r, err, "Failed to auto-match volunteers")
		return
	}
	writeJSON(w, http.StatusOK, created)
}
