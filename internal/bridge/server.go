// Package bridge exposes the cross-context HTTP surface of the prompt
// library: the capture endpoint the injected page widget posts to, the
// one-way backup trigger, and a read-only library snapshot. The bridge is a
// second writer to the shared store and goes through exactly the same
// controller validation and normalization as the main library, so the two
// paths can never drift apart.
package bridge

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mesh-intelligence/satchel/internal/backup"
	"github.com/mesh-intelligence/satchel/internal/library"
	"github.com/mesh-intelligence/satchel/internal/logger"
	"github.com/mesh-intelligence/satchel/internal/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Deps carries the bridge's collaborators.
type Deps struct {
	Store  store.Store
	Log    logger.Logger
	Clock  types.Clock
	Backup *backup.Writer

	// Library is the long-lived read controller backing the snapshot
	// endpoint. The serve loop refreshes it when the store changes.
	Library *library.Controller
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http *http.Server
	log  logger.Logger
}

// New builds the bridge server: router, middlewares, routes.
func New(addr string, d Deps) *Server {
	r := chi.NewRouter()
	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(accessLog(d.Log))

	r.Get("/healthz", handleHealthz())
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/prompts/capture", handleCapture(d))
		r.Post("/backup", handleBackup(d))
		r.Get("/library", handleLibrary(d))
	})

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		log: d.Log,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start runs the HTTP server and blocks until error or shutdown.
func (s *Server) Start() error {
	s.log.Infof("bridge listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("bridge shutting down")
	return s.http.Shutdown(ctx)
}
