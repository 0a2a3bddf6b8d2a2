// Package api implements the qsketch HTTP API.
//
// The API exposes the rendering pipeline over HTTP and a small CRUD
// surface for stored circuit documents:
//
//	POST   /api/render                 render an inline circuit document
//	POST   /api/circuits               store a circuit document
//	GET    /api/circuits               list stored circuits
//	GET    /api/circuits/{id}          fetch a stored circuit
//	DELETE /api/circuits/{id}          delete a stored circuit
//	POST   /api/circuits/{id}/render   render a stored circuit
//	GET    /healthz                    liveness probe
//
// Storage and caching are pluggable: the server works with any
// store.Store (in-memory or MongoDB) and any cache.Cache (in-memory,
// file, or Redis).
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/qsketch/qsketch/pkg/pipeline"
	"github.com/qsketch/qsketch/pkg/store"
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	Store  store.Store
	Runner *pipeline.Runner
	Logger *log.Logger
}

// NewServer creates a server. If store is nil an in-memory store is used;
// if runner is nil a cacheless runner is used.
func NewServer(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{
		Store:  st,
		Runner: runner,
		Logger: logger,
	}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)

		r.Route("/circuits", func(r chi.Router) {
			r.Post("/", s.handleCreateCircuit)
			r.Get("/", s.handleListCircuits)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetCircuit)
				r.Delete("/", s.handleDeleteCircuit)
				r.Post("/render", s.handleRenderStored)
			})
		})
	})

	return r
}

// requestLogger logs each request with method, path, status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
