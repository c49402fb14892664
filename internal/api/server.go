// Package api provides the HTTP API server for the ShelfSync sync service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shelfsyncapp/shelfsync-server/internal/store"
	"github.com/shelfsyncapp/shelfsync-server/internal/syncer"
)

// SyncTrigger queues a sync pass with the scheduler.
type SyncTrigger interface {
	Trigger(force bool) bool
}

// PassReporter exposes the outcome of the most recent sync pass.
type PassReporter interface {
	LastSummary() *syncer.Summary
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	trigger  SyncTrigger
	reporter PassReporter
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, trigger SyncTrigger, reporter PassReporter, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	humaConfig := huma.DefaultConfig("ShelfSync API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s := &Server{
		store:    st,
		trigger:  trigger,
		reporter: reporter,
		router:   router,
		api:      humachi.New(router, humaConfig),
		logger:   logger,
	}

	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerSyncRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
