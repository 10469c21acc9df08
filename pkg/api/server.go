// Package api exposes the matching engine over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/db"
	"github.com/jakechorley/volunteer-matching/pkg/notify"
)

// Pinger is implemented by stores that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies shared by every handler
type Server struct {
	store    db.MatchingStore
	notifier notify.Notifier
	logger   *zap.Logger
	validate *validator.Validate
}

func NewServer(store db.MatchingStore, notifier notify.Notifier, logger *zap.Logger) *Server {
	return &Server{
		store:    store,
		notifier: notifier,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes builds the router. An empty jwtSecret disables bearer authentication on /matches.
func (s *Server) Routes(jwtSecret string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(NewZapLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.health)

	r.Route("/matches", func(r chi.Router) {
		if jwtSecret != "" {
			r.Use(RequireBearerToken([]byte(jwtSecret)))
		}

		// Fixed paths are registered before /{id}
		r.Get("/history/all", s.getMatchHistory)
		r.Get("/recommendations/event/{eventId}", s.recommendVolunteers)
		r.Get("/recommendations/volunteer/{volunteerId}", s.recommendEvents)
		r.Get("/score", s.calculateScore)
		r.Post("/auto", s.autoMatch)

		r.Get("/", s.listMatches)
		r.Post("/", s.createMatch)
		r.Get("/{id}", s.getMatch)
		r.Put("/{id}/status", s.updateMatchStatus)
		r.Delete("/{id}", s.deleteMatch)
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.store.(Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.logger.Warn("Health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "store unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
