// Package api serves a small read-only HTTP API for operators.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"croulette/application"
	"croulette/models"
	"croulette/settings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// PlayerReader loads player summaries
type PlayerReader interface {
	Summary(ctx context.Context, scope models.Scope, userID int64, recent int) (*application.PlayerSummary, error)
}

// Server holds the API handlers and their dependencies
type Server struct {
	settings  settings.GameCommandConfig
	players   PlayerReader
	validator *validator.Validate
	started   time.Time
}

// NewServer creates an API server for the given settings. players may be
// nil, in which case player endpoints answer 503.
func NewServer(cfg settings.GameCommandConfig, players PlayerReader) *Server {
	return &Server{
		settings:  cfg,
		players:   players,
		validator: validator.New(),
		started:   time.Now(),
	}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(10 * time.Second))

	router.Get("/health", s.health)
	router.Get("/settings", s.getSettings)
	router.Post("/settings/validate", s.validateSettings)
	router.Get("/wheel", s.getWheel)
	router.Get("/odds", s.getOdds)
	router.Post("/payout", s.payout)
	router.Get("/scopes/{platform}/{scopeID}/users/{userID}/stats", s.playerStats)

	return router
}

// ListenAndServe serves on addr until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("HTTP API shutdown failed")
		}
	}()

	log.WithField("addr", addr).Info("HTTP API listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
