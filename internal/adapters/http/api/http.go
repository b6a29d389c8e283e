// Package api declares HTTP contracts and route registration helpers for
// the squad builder.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/gaffer/internal/adapters/store"
	"github.com/okian/gaffer/internal/domain/model"
	"github.com/okian/gaffer/internal/domain/rating"
	"github.com/okian/gaffer/internal/domain/squad"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Team selection and roster reads.
	SelectTeam(ctx context.Context, teamKey string) error
	Team() string
	Roster(ctx context.Context) []model.Player

	// Engine reads.
	Snapshot(ctx context.Context) squad.Snapshot
	SquadStats(ctx context.Context) rating.SquadStats

	// Placement intents. Rejections come back as verdicts, not errors.
	Place(ctx context.Context, slotKey string, playerID int) squad.Verdict
	Remove(ctx context.Context, slotKey string) bool
	AutoFill(ctx context.Context)
	ResetSquad(ctx context.Context)
	ChangeFormation(ctx context.Context, key string) error

	// Drag lifecycle.
	BeginDrag(ctx context.Context, playerID int)
	EndDrag(ctx context.Context)
	DropOn(ctx context.Context, slotKey string) squad.Verdict

	// Bench.
	AddSubstitute(ctx context.Context, playerID int) squad.Verdict
	RemoveSubstitute(ctx context.Context, playerID int) bool

	// Persistence.
	SaveSquad(ctx context.Context, teamKey string) (store.Snapshot, error)
	LoadSquad(ctx context.Context, teamKey string) (bool, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	formationsHandler *FormationsHandler
	rosterHandler     *RosterHandler
	squadHandler      *SquadHandler
	placementHandler  *PlacementHandler
	benchHandler      *BenchHandler
	snapshotHandler   *SnapshotHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		formationsHandler: NewFormationsHandler(),
		rosterHandler:     NewRosterHandler(deps),
		squadHandler:      NewSquadHandler(deps),
		placementHandler:  NewPlacementHandler(deps),
		benchHandler:      NewBenchHandler(deps),
		snapshotHandler:   NewSnapshotHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/formations", MetricsMiddleware(s.formationsHandler.HandleList, "formations"))
	mux.HandleFunc("/formations/", MetricsMiddleware(s.formationsHandler.HandleDetail, "formation"))
	mux.HandleFunc("/roster", MetricsMiddleware(s.rosterHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("/squad", MetricsMiddleware(s.squadHandler.HandleGetSquad, "squad"))
	mux.HandleFunc("/squad/stats", MetricsMiddleware(s.squadHandler.HandleGetStats, "squad_stats"))
	mux.HandleFunc("/squad/roster", MetricsMiddleware(s.rosterHandler.HandleSelectTeam, "select_team"))
	mux.HandleFunc("/squad/place", MetricsMiddleware(s.placementHandler.HandlePlace, "place"))
	mux.HandleFunc("/squad/remove", MetricsMiddleware(s.placementHandler.HandleRemove, "remove"))
	mux.HandleFunc("/squad/autofill", MetricsMiddleware(s.placementHandler.HandleAutoFill, "autofill"))
	mux.HandleFunc("/squad/reset", MetricsMiddleware(s.placementHandler.HandleReset, "reset"))
	mux.HandleFunc("/squad/formation", MetricsMiddleware(s.placementHandler.HandleFormation, "change_formation"))
	mux.HandleFunc("/squad/drag", MetricsMiddleware(s.placementHandler.HandleDrag, "drag"))
	mux.HandleFunc("/squad/drag/end", MetricsMiddleware(s.placementHandler.HandleDragEnd, "drag_end"))
	mux.HandleFunc("/squad/drop", MetricsMiddleware(s.placementHandler.HandleDrop, "drop"))
	mux.HandleFunc("/squad/substitutes", MetricsMiddleware(s.benchHandler.HandleSubstitutes, "substitutes"))
	mux.HandleFunc("/squad/save", MetricsMiddleware(s.snapshotHandler.HandleSave, "save"))
	mux.HandleFunc("/squad/load", MetricsMiddleware(s.snapshotHandler.HandleLoad, "load"))
}

// verdictResponse reports a placement intent outcome. Rejections are
// expected outcomes of direct-manipulation UI logic, so they ride a 200,
// not an error status.
type verdictResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

func verdictJSON(w http.ResponseWriter, v squad.Verdict) {
	resp := verdictResponse{Accepted: v.OK()}
	if !v.OK() {
		resp.Reason = v.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
