package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// RosterHandler handles team selection and roster reads.
type RosterHandler struct {
	deps Dependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps Dependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleGetRoster handles GET /roster requests.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"team":    h.deps.Team(),
		"players": h.deps.Roster(r.Context()),
	})
}

type selectTeamRequest struct {
	Team string `json:"team"`
}

func (req selectTeamRequest) validate() error {
	if strings.TrimSpace(req.Team) == "" {
		return errors.New("missing team")
	}
	return nil
}

// HandleSelectTeam handles POST /squad/roster requests: it fetches the
// team's roster from the backend and resets the engine for the new team.
func (h *RosterHandler) HandleSelectTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req selectTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.deps.SelectTeam(r.Context(), req.Team); err != nil {
		writeError(w, http.StatusBadGateway, "roster_unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"team":    req.Team,
		"players": h.deps.Roster(r.Context()),
	})
}
