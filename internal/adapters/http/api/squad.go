package api

import "net/http"

// SquadHandler serves engine state reads.
type SquadHandler struct {
	deps Dependencies
}

// NewSquadHandler creates a new squad handler.
func NewSquadHandler(deps Dependencies) *SquadHandler {
	return &SquadHandler{deps: deps}
}

// HandleGetSquad handles GET /squad requests.
func (h *SquadHandler) HandleGetSquad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Snapshot(r.Context()))
}

// HandleGetStats handles GET /squad/stats requests.
func (h *SquadHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.SquadStats(r.Context()))
}
