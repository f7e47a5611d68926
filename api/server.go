// Package api - Thin HTTP layer over the quote engine.
// The API is ONLY responsible for: input decoding, engine calls, output serialization.
// The API NEVER performs pricing logic.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/gedeza/business-consulting/adapters/storage"
	"github.com/gedeza/business-consulting/core/catalog"
	"github.com/gedeza/business-consulting/core/clients"
	"github.com/gedeza/business-consulting/core/engine"
	"github.com/gedeza/business-consulting/core/ports"
	"github.com/gedeza/business-consulting/core/templates"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
	"github.com/gedeza/business-consulting/internal/logging"
)

// Dependencies are the collaborators the server delegates to.
// Clients, Rates and Quotes are optional.
type Dependencies struct {
	Engine    *engine.Engine
	Catalog   *catalog.Catalog
	Clients   *clients.Registry
	Templates *templates.Registry
	Rates     ports.RateSource
	Quotes    *storage.QuoteStore
}

// Server is the API server
type Server struct {
	deps    Dependencies
	router  chi.Router
	version string
	log     *zap.Logger
}

// NewServer creates a new API server
func NewServer(version string, deps Dependencies) *Server {
	if deps.Templates == nil {
		deps.Templates = templates.Default()
	}
	s := &Server{
		deps:    deps,
		router:  chi.NewRouter(),
		version: version,
		log:     logging.Named("api"),
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Core endpoints
	r.Post("/quotes", s.handleGenerate)
	r.Post("/quotes/recalculate", s.handleRecalculate)
	r.Get("/quotes/{id}", s.handleGetQuote)

	r.Route("/services", func(r chi.Router) {
		r.Get("/", s.handleListServices)
		r.Get("/{name}", s.handleGetService)
		r.Put("/{name}", s.handlePutService)
		r.Delete("/{name}", s.handleDeleteService)
	})

	r.Get("/clients", s.handleListClients)
	r.Post("/clients", s.handleSaveClient)

	r.Get("/templates/{service}", s.handleTemplates)

	// Supporting endpoints
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Time:    time.Now().UTC(),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": s.version,
	}, http.StatusOK)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, "INVALID_REQUEST", "malformed JSON body: "+err.Error(), "", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("response encode failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message, field string, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorBody{
		Code:    code,
		Message: message,
		Field:   field,
	}}, status)
}

// writeDomainError maps a typed error to its HTTP status
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var e *qerrors.Error
	if !stderrors.As(err, &e) {
		s.log.Error("unexpected error", zap.Error(err))
		s.writeError(w, string(qerrors.TypeInternal), err.Error(), "", http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch e.Type {
	case qerrors.TypeValidation, qerrors.TypeInvalidService:
		status = http.StatusBadRequest
	case qerrors.TypeNotFound, qerrors.TypeServiceNotFound:
		status = http.StatusNotFound
	default:
		s.log.Error("request failed", zap.Error(err))
	}
	s.writeError(w, string(e.Type), e.Message, e.Field, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
