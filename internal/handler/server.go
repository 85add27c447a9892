// Package handler implements the HTTP handlers for the medidas API.
// All handlers are methods on Server. Router assembly lives in NewRouter so
// production wiring and handler tests go through the same code path.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rfcoelho/medidas/internal/domain"
)

// DocumentStore defines the persistence operations the handlers depend on.
// The interface lives here, in the consumer package, so handler tests can
// inject a mock without touching a real file or database.
type DocumentStore interface {
	Load(ctx context.Context) (domain.Document, error)
	Save(ctx context.Context, doc domain.Document) (domain.Document, error)
}

// Server holds the handler dependencies.
type Server struct {
	docs DocumentStore
}

// NewServer constructs the Server with all its dependencies.
func NewServer(docs DocumentStore) *Server {
	return &Server{docs: docs}
}

// NewRouter registers every API route on a fresh chi router.
// Middleware (request id, logging, CORS, body limits) is applied by the
// caller so tests can exercise the bare routes.
func NewRouter(s *Server) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/medidas", s.GetDocument)
	r.Post("/api/medidas", s.SaveDocument)
	return r
}
