package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	service "github.com/okian/gaffer/internal/app"
)

// SnapshotHandler saves and restores team-keyed squad snapshots.
type SnapshotHandler struct {
	deps Dependencies
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(deps Dependencies) *SnapshotHandler {
	return &SnapshotHandler{deps: deps}
}

type persistRequest struct {
	Team string `json:"team,omitempty"`
}

// HandleSave handles POST /squad/save requests. The team defaults to the
// currently selected one.
func (h *SnapshotHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req persistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	snap, err := h.deps.SaveSquad(r.Context(), req.Team)
	if err != nil {
		if errors.Is(err, service.ErrNoTeam) {
			writeError(w, http.StatusBadRequest, "no_team", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "persist_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleLoad handles POST /squad/load requests. A team with no saved squad
// is a normal outcome reported as found=false, never an error.
func (h *SnapshotHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req persistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	found, err := h.deps.LoadSquad(r.Context(), req.Team)
	if err != nil {
		if errors.Is(err, service.ErrNoTeam) {
			writeError(w, http.StatusBadRequest, "no_team", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "load_failed", err)
		return
	}
	resp := map[string]interface{}{"found": found}
	if found {
		resp["squad"] = h.deps.Snapshot(r.Context())
	}
	writeJSON(w, http.StatusOK, resp)
}
