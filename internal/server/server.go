// Package server implements the ringlet HTTP editing server.
//
// The server exposes a browser editor for a single diagram per session, a
// JSON API mirroring the editing operations, export endpoints, and a saved
// diagram collection backed by the store package. Sessions are identified by
// a UUID cookie and each owns one live config; see the session package.
//
// # Routes
//
//	GET  /                      editor page
//	GET  /view                  interactive diagram (inline HTML)
//	GET  /render.svg            static SVG of the current diagram
//	GET  /diagram.json          config export (attachment)
//	GET  /diagram.html          interactive HTML export (attachment)
//	*    /api/...               editing and collection API
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ringlet/pkg/config"
	"github.com/matzehuels/ringlet/pkg/pipeline"
	"github.com/matzehuels/ringlet/pkg/session"
	"github.com/matzehuels/ringlet/pkg/store"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second

	// cleanupInterval is how often expired sessions are swept. Only the
	// memory backend does real work here.
	cleanupInterval = 15 * time.Minute
)

// Server holds the shared state for all handlers.
type Server struct {
	cfg      config.Config
	sessions session.Store
	diagrams store.Store
	runner   *pipeline.Runner
	logger   *log.Logger
}

// New creates a server. The runner may carry a cache; a nil logger falls back
// to the package default.
func New(cfg config.Config, sessions session.Store, diagrams store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		diagrams: diagrams,
		runner:   runner,
		logger:   logger,
	}
}

// Router builds the chi router with all routes and middleware registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/", s.handleEditor)
		r.Get("/view", s.handleView)
		r.Get("/render.svg", s.handleRenderSVG)
		r.Get("/diagram.json", s.handleExportJSON)
		r.Get("/diagram.html", s.handleExportHTML)

		r.Route("/api", func(r chi.Router) {
			r.Get("/diagram", s.handleGetDiagram)
			r.Put("/diagram", s.handleImportDiagram)
			r.Post("/diagram/reset", s.handleReset)
			r.Post("/diagram/inner/nodes", s.handleSetNodes(true))
			r.Post("/diagram/outer/nodes", s.handleSetNodes(false))
			r.Post("/diagram/inner/label", s.handleSetLabel(true))
			r.Post("/diagram/outer/label", s.handleSetLabel(false))
			r.Post("/diagram/inner/edge", s.handleSetEdgeLabel(true))
			r.Post("/diagram/outer/edge", s.handleSetEdgeLabel(false))
			r.Post("/diagram/cross-links", s.handleSetCrossLinks)
			r.Post("/diagram/options", s.handleSetOptions)

			r.Get("/diagrams", s.handleListDiagrams)
			r.Put("/diagrams/{name}", s.handleSaveDiagram)
			r.Post("/diagrams/{name}/load", s.handleLoadDiagram)
			r.Delete("/diagrams/{name}", s.handleDeleteDiagram)
		})
	})

	r.Get("/healthz", s.handleHealth)

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully. A
// background ticker sweeps expired sessions.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go s.cleanupLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Listening on %s", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.sessions.Cleanup(ctx); err != nil {
				s.logger.Warnf("Session cleanup failed: %v", err)
			}
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debugf("%s %s %d %dB (%s)",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(),
			time.Since(start).Round(time.Millisecond))
	})
}
