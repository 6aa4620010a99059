package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mesh-demo/internal/domain"
)

// ListNodes returns a page of nodes.
func (h *Handler) ListNodes(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r.URL.Query())

	nodes, total, err := h.graph.ListNodes(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := NodeListResponse{Data: make([]NodePayload, 0, len(nodes)), TotalCount: total}
	for _, n := range nodes {
		resp.Data = append(resp.Data, nodeToAPI(n))
	}
	resp.NextPageToken = domain.NextPageToken(page.Offset(), page.Limit(), total)

	writeJSON(w, http.StatusOK, resp)
}

// CreateNode registers a node with its ports and columns.
func (h *Handler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var payload NodePayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	node := nodeFromAPI(payload)
	if err := h.graph.CreateNode(r.Context(), &node); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, nodeToAPI(node))
}

// GetNode returns a single node by ID.
func (h *Handler) GetNode(w http.ResponseWriter, r *http.Request) {
	node, err := h.graph.GetNode(r.Context(), chi.URLParam(r, "nodeID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nodeToAPI(*node))
}

// DeleteNode removes a node and its ports, columns and related-port
// declarations.
func (h *Handler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	if err := h.graph.DeleteNode(r.Context(), chi.URLParam(r, "nodeID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRelationships returns a page of relationships.
func (h *Handler) ListRelationships(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r.URL.Query())

	rels, total, err := h.graph.ListRelationships(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := RelationshipListResponse{Data: make([]RelationshipPayload, 0, len(rels)), TotalCount: total}
	for _, rel := range rels {
		resp.Data = append(resp.Data, relationshipToAPI(rel))
	}
	resp.NextPageToken = domain.NextPageToken(page.Offset(), page.Limit(), total)

	writeJSON(w, http.StatusOK, resp)
}

// CreateRelationship registers an edge between two nodes or ports.
func (h *Handler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	var payload RelationshipPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	rel := relationshipFromAPI(payload)
	stored, err := h.graph.CreateRelationship(r.Context(), &rel)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, relationshipToAPI(*stored))
}

// DeleteRelationship removes an edge by ID.
func (h *Handler) DeleteRelationship(w http.ResponseWriter, r *http.Request) {
	if err := h.graph.DeleteRelationship(r.Context(), chi.URLParam(r, "relID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReplaceColumnRelationships swaps the full set of column-level edges.
func (h *Handler) ReplaceColumnRelationships(w http.ResponseWriter, r *http.Request) {
	var payload []ColumnRelationshipPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	rels := make([]domain.ColumnRelationship, 0, len(payload))
	for _, p := range payload {
		rels = append(rels, domain.ColumnRelationship{
			SourceColumnID: p.SourceColumnID,
			TargetColumnID: p.TargetColumnID,
		})
	}

	if err := h.graph.ReplaceColumnRelationships(r.Context(), rels); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
