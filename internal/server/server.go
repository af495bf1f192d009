package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/iajcodes/HireC/internal/auth"
	"github.com/iajcodes/HireC/internal/config"
	"github.com/iajcodes/HireC/internal/ingestion"
	"github.com/iajcodes/HireC/internal/roster"
	"github.com/iajcodes/HireC/internal/store"
)

// Server represents the HTTP server for the resume intake API.
type Server struct {
	httpServer *http.Server
	store      *store.Store
	gate       *auth.Gate
	extractor  ingestion.Extractor
	tokens     *TokenService
	rosters    *cache.Cache
	validator  *validator.Validate
	logger     *zap.Logger
}

// Config holds server configuration.
type Config struct {
	Port      int
	Store     *store.Store
	Gate      *auth.Gate
	Extractor ingestion.Extractor
	JWT       *config.JWTConfig
	Logger    *zap.Logger
}

// New creates a new server instance.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Gate == nil {
		return nil, fmt.Errorf("auth gate is required")
	}
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if cfg.JWT == nil {
		return nil, fmt.Errorf("JWT config is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Server{
		store:     cfg.Store,
		gate:      cfg.Gate,
		extractor: cfg.Extractor,
		tokens:    NewTokenService(cfg.JWT),
		rosters:   cache.New(1*time.Hour, 10*time.Minute),
		validator: validator.New(),
		logger:    cfg.Logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)
	mux.HandleFunc("GET /auth/session", s.handleSession)

	mux.HandleFunc("POST /candidates", s.requireAuth(s.handleUpload))
	mux.HandleFunc("GET /candidates", s.requireAuth(s.handleListCandidates))
	mux.HandleFunc("GET /candidates/{id}", s.requireAuth(s.handleGetCandidate))
	mux.HandleFunc("DELETE /candidates/selection", s.requireAuth(s.handleCloseSelection))

	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for extraction calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// rosterFor returns the cached roster for email, loading it from the store
// on a cache miss. The store remains the source of truth across logins.
func (s *Server) rosterFor(ctx context.Context, email string) (*roster.Roster, error) {
	if cached, found := s.rosters.Get(email); found {
		return cached.(*roster.Roster), nil
	}

	r := roster.New(email, s.store)
	if err := r.Load(ctx); err != nil {
		return nil, err
	}
	s.rosters.Set(email, r, cache.DefaultExpiration)
	return r, nil
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
