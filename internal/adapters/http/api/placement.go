package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/gaffer/internal/domain/formation"
)

// PlacementHandler translates placement intents into engine operations.
type PlacementHandler struct {
	deps Dependencies
}

// NewPlacementHandler creates a new placement handler.
func NewPlacementHandler(deps Dependencies) *PlacementHandler {
	return &PlacementHandler{deps: deps}
}

type placeRequest struct {
	Slot     string `json:"slot"`
	PlayerID int    `json:"player_id"`
}

func (req placeRequest) validate() error {
	switch {
	case strings.TrimSpace(req.Slot) == "":
		return errors.New("missing slot")
	case req.PlayerID <= 0:
		return errors.New("missing player_id")
	}
	return nil
}

// HandlePlace handles POST /squad/place requests. Engine rejections ride a
// 200 with accepted=false: the UI simply does not complete the drop.
func (h *PlacementHandler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	verdictJSON(w, h.deps.Place(r.Context(), req.Slot, req.PlayerID))
}

type removeRequest struct {
	Slot string `json:"slot"`
}

// HandleRemove handles POST /squad/remove requests. Removing an empty slot
// is a no-op, reported as removed=false.
func (h *PlacementHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req removeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.Slot) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing slot"))
		return
	}
	removed := h.deps.Remove(r.Context(), req.Slot)
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

// HandleAutoFill handles POST /squad/autofill requests.
func (h *PlacementHandler) HandleAutoFill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.AutoFill(r.Context())
	writeJSON(w, http.StatusOK, h.deps.Snapshot(r.Context()))
}

// HandleReset handles POST /squad/reset requests.
func (h *PlacementHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.ResetSquad(r.Context())
	writeJSON(w, http.StatusOK, h.deps.Snapshot(r.Context()))
}

type changeFormationRequest struct {
	Key string `json:"key"`
}

// HandleFormation handles POST /squad/formation requests. An unknown key is
// fatal to this operation: the current formation is kept and a 404 returned
// so the client can fall back to the default.
func (h *PlacementHandler) HandleFormation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req changeFormationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.Key) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing key"))
		return
	}
	if err := h.deps.ChangeFormation(r.Context(), req.Key); err != nil {
		if errors.Is(err, formation.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Snapshot(r.Context()))
}

type dragRequest struct {
	PlayerID int `json:"player_id"`
}

// HandleDrag handles POST /squad/drag requests (drag start).
func (h *PlacementHandler) HandleDrag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.PlayerID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing player_id"))
		return
	}
	h.deps.BeginDrag(r.Context(), req.PlayerID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "dragging"})
}

// HandleDragEnd handles POST /squad/drag/end requests. This fires on the
// surface's drag-end signal whether or not a drop happened, so an abandoned
// drag never leaves a stuck selection.
func (h *PlacementHandler) HandleDragEnd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.EndDrag(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "idle"})
}

type dropRequest struct {
	Slot string `json:"slot"`
}

// HandleDrop handles POST /squad/drop requests (drop on a slot).
func (h *PlacementHandler) HandleDrop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.Slot) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing slot"))
		return
	}
	verdictJSON(w, h.deps.DropOn(r.Context(), req.Slot))
}
