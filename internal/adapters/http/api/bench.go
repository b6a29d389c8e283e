package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// BenchHandler manages the substitutes list.
type BenchHandler struct {
	deps Dependencies
}

// NewBenchHandler creates a new bench handler.
func NewBenchHandler(deps Dependencies) *BenchHandler {
	return &BenchHandler{deps: deps}
}

type substituteRequest struct {
	PlayerID int `json:"player_id"`
}

// HandleSubstitutes handles POST (add) and DELETE (remove) on
// /squad/substitutes.
func (h *BenchHandler) HandleSubstitutes(w http.ResponseWriter, r *http.Request) {
	var req substituteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.PlayerID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing player_id"))
		return
	}

	switch r.Method {
	case http.MethodPost:
		verdictJSON(w, h.deps.AddSubstitute(r.Context(), req.PlayerID))
	case http.MethodDelete:
		removed := h.deps.RemoveSubstitute(r.Context(), req.PlayerID)
		writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
	default:
		http.NotFound(w, r)
	}
}
