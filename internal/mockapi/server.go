// Package mockapi is an in-memory stand-in for the HRMS backend. It serves
// the same routes and error shapes as the real API under /api, so the client
// and CLI can be exercised without one.
package mockapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dvcrn/hrms-api-client/internal/hr"
	"github.com/dvcrn/hrms-api-client/internal/logger"
)

// Server is the mock backend.
type Server struct {
	store    *Store
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	router   chi.Router
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithStore replaces the seeded store.
func WithStore(st *Store) ServerOption {
	return func(s *Server) { s.store = st }
}

// WithTokenTTL sets how long issued tokens are valid.
func WithTokenTTL(d time.Duration) ServerOption {
	return func(s *Server) { s.tokenTTL = d }
}

// WithClock sets the time source used to issue and validate tokens.
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) { s.now = now }
}

// NewServer creates a mock backend signing tokens with secret.
func NewServer(secret string, opts ...ServerOption) (*Server, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must not be empty")
	}

	s := &Server{
		store:    NewSeededStore(),
		secret:   []byte(secret),
		tokenTTL: DefaultTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves the mock backend on addr.
func (s *Server) Start(addr string) error {
	logger.Get().Info().Msgf("Starting mock HRMS API on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(echoRequestID)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireToken)

			r.Get("/auth/me", s.handleMe)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", s.handleListEmployees)
				r.Post("/", s.handleCreateEmployee)
				r.Get("/{id}", s.handleGetEmployee)
				r.Put("/{id}", s.handleReplaceEmployee)
				r.Patch("/{id}", s.handlePatchEmployee)
				r.Delete("/{id}", s.handleDeleteEmployee)
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", s.handleListDepartments)
				r.With(requireAdmin).Post("/", s.handleCreateDepartment)
				r.With(requireAdmin).Delete("/{id}", s.handleDeleteDepartment)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", s.handleListLeaves)
				r.Post("/", s.handleCreateLeave)
				r.With(requireAdmin).Patch("/{id}/approve", s.handleDecideLeave(hr.LeaveApproved))
				r.With(requireAdmin).Patch("/{id}/reject", s.handleDecideLeave(hr.LeaveRejected))
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, codeNotFound, "Route not found.", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed.", nil)
	})

	s.router = r
}
