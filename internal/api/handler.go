// Package api exposes the lineage platform over HTTP with JSON payloads.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"mesh-demo/internal/domain"
)

// graphService defines the graph mutations and reads used by the handler.
type graphService interface {
	CreateNode(ctx context.Context, node *domain.Node) error
	GetNode(ctx context.Context, nodeID string) (*domain.Node, error)
	ListNodes(ctx context.Context, page domain.PageRequest) ([]domain.Node, int64, error)
	DeleteNode(ctx context.Context, nodeID string) error
	CreateRelationship(ctx context.Context, rel *domain.Relationship) (*domain.Relationship, error)
	ListRelationships(ctx context.Context, page domain.PageRequest) ([]domain.Relationship, int64, error)
	DeleteRelationship(ctx context.Context, id string) error
	ReplaceColumnRelationships(ctx context.Context, rels []domain.ColumnRelationship) error
}

// lineageService defines the lineage queries used by the handler.
type lineageService interface {
	PortLineage(ctx context.Context, portID string) (domain.CompleteLineage, error)
	NodeLineage(ctx context.Context, nodeID string) (domain.NodeLineageResult, error)
	ColumnLineage(ctx context.Context, columnID string) (domain.CompleteColumnLineage, error)
}

// Handler serves the v1 API.
type Handler struct {
	graph   graphService
	lineage lineageService
	log     *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(graph graphService, lineage lineageService, log *slog.Logger) *Handler {
	return &Handler{graph: graph, lineage: lineage, log: log}
}

// Routes mounts the API on a fresh chi router. Cross-cutting middleware
// (request ID, rate limiting, CORS) is attached by the caller.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/healthz", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/nodes", func(r chi.Router) {
			r.Get("/", h.ListNodes)
			r.Post("/", h.CreateNode)
			r.Get("/{nodeID}", h.GetNode)
			r.Delete("/{nodeID}", h.DeleteNode)
		})
		r.Route("/relationships", func(r chi.Router) {
			r.Get("/", h.ListRelationships)
			r.Post("/", h.CreateRelationship)
			r.Delete("/{relID}", h.DeleteRelationship)
		})
		r.Put("/column-relationships", h.ReplaceColumnRelationships)
		r.Route("/lineage", func(r chi.Router) {
			r.Get("/ports/{portID}", h.PortLineage)
			r.Get("/nodes/{nodeID}", h.NodeLineage)
			r.Get("/columns/{columnID}", h.ColumnLineage)
		})
	})

	return r
}

// Health responds 200 as long as the process is serving.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
