// Package server provides the HTTP surface: the sync trigger, the
// email membership validator, and role management.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/dwellingconnect/society-sync/internal/config"
	"github.com/dwellingconnect/society-sync/internal/interfaces"
	"github.com/dwellingconnect/society-sync/internal/roles"
	"github.com/dwellingconnect/society-sync/internal/validate"
)

// Server is the HTTP server. The roles service is optional and the
// endpoint answers 503 when the role store is not configured.
type Server struct {
	engine    interfaces.SyncEngine
	validator *validate.Validator
	roles     *roles.Service
	verifier  interfaces.Verifier

	allowedOrigins []string
	router         *chi.Mux
	server         *http.Server
}

// NewServer wires the handlers onto a chi router.
func NewServer(cfg config.HTTPConfig, engine interfaces.SyncEngine, validator *validate.Validator, rolesSvc *roles.Service, verifier interfaces.Verifier) *Server {
	s := &Server{
		engine:         engine,
		validator:      validator,
		roles:          rolesSvc,
		verifier:       verifier,
		allowedOrigins: cfg.AllowedOrigins,
		router:         chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(s.cors)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/functions", func(r chi.Router) {
		r.Post("/sheet-sync", s.handleSheetSync)
		r.Post("/validate-member", s.handleValidateMember)
		r.Post("/manage-roles", s.handleManageRoles)
	})
}

// Start runs the server until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	logrus.WithField("addr", s.server.Addr).Info("🌐 HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
