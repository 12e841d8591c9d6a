// Package server exposes the explorer over HTTP: configuration, entity
// detail proxying, search, and neighborhood subgraphs as JSON.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/polynav/polynav/pkg/config"
	"github.com/polynav/polynav/pkg/foundation"
	"github.com/polynav/polynav/pkg/icd"
)

// EntityFetcher is the upstream surface the server needs. *icd.Client
// satisfies it; tests substitute a fake.
type EntityFetcher interface {
	Entity(ctx context.Context, id string) (*icd.Entity, error)
	Search(ctx context.Context, query string) ([]icd.SearchHit, error)
	MMSEntity(ctx context.Context, id string) (json.RawMessage, error)
	CodeInfo(ctx context.Context, code string) (json.RawMessage, error)
}

var _ EntityFetcher = (*icd.Client)(nil)

// Server is the HTTP API over a loaded foundation graph and an upstream
// entity fetcher.
type Server struct {
	cfg     config.Config
	graph   *foundation.Graph
	fetcher EntityFetcher
	logger  *log.Logger
}

// New creates a Server. The graph may be nil when no dataset has been
// crawled yet; graph-backed endpoints then answer 503.
func New(cfg config.Config, g *foundation.Graph, fetcher EntityFetcher, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, graph: g, fetcher: fetcher, logger: logger}
}

// Handler assembles the chi router with middleware and all API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleConfig)
		r.Get("/entity/{id}", s.handleEntity)
		r.Get("/mms/{id}", s.handleMMS)
		r.Get("/code/{code}", s.handleCode)
		r.Get("/search", s.handleSearch)
		r.Get("/node/{id}", s.handleNode)
		r.Get("/neighborhood/{id}", s.handleNeighborhood)
		r.Get("/subgraph", s.handleSubgraph)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
