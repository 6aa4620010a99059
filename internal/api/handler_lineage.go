package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PortLineage returns the complete lineage reachable from a port, with
// the upstream and downstream halves broken out.
func (h *Handler) PortLineage(w http.ResponseWriter, r *http.Request) {
	res, err := h.lineage.PortLineage(r.Context(), chi.URLParam(r, "portID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// NodeLineage returns every node connected to the start node through
// direct relationships, in either direction.
func (h *Handler) NodeLineage(w http.ResponseWriter, r *http.Request) {
	res, err := h.lineage.NodeLineage(r.Context(), chi.URLParam(r, "nodeID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// ColumnLineage returns the column-level lineage for a column, scoped
// to the ports reachable from the column's owning port.
func (h *Handler) ColumnLineage(w http.ResponseWriter, r *http.Request) {
	res, err := h.lineage.ColumnLineage(r.Context(), chi.URLParam(r, "columnID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
