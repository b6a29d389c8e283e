package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/internal/domain/pitch"
	"github.com/okian/gaffer/internal/domain/role"
)

// FormationsHandler serves the static formation catalog, optionally
// projecting slots onto a measured pitch rectangle for the client.
type FormationsHandler struct{}

// NewFormationsHandler creates a new formations handler.
func NewFormationsHandler() *FormationsHandler {
	return &FormationsHandler{}
}

// formationSummary is the list shape.
type formationSummary struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// slotView is a slot with its resolved role and, when the client supplied
// its measured rectangle, the projected pixel position.
type slotView struct {
	Key   string       `json:"key"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	Role  role.Role    `json:"role"`
	Pixel *pitch.Point `json:"pixel,omitempty"`
}

type formationDetail struct {
	Key   string     `json:"key"`
	Name  string     `json:"name"`
	Slots []slotView `json:"slots"`
}

// HandleList handles GET /formations requests.
func (h *FormationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	keys := formation.Keys()
	out := make([]formationSummary, 0, len(keys))
	for _, key := range keys {
		f, err := formation.Get(key)
		if err != nil {
			continue
		}
		out = append(out, formationSummary{Key: f.Key, Name: f.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleDetail handles GET /formations/{key} requests. Optional query
// params w, h (pixel rectangle), marker (marker size in pixels) and
// offset_x, offset_y (recentering offsets in meters) project each slot to
// its on-screen position; without a measured rectangle the pixel field is
// omitted.
func (h *FormationsHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/formations/")
	if key == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	f, err := formation.Get(key)
	if err != nil {
		if errors.Is(err, formation.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}

	rect := pitch.Rect{
		W: queryFloat(r, "w"),
		H: queryFloat(r, "h"),
	}
	marker := queryFloat(r, "marker")
	offsetX := queryFloat(r, "offset_x")
	offsetY := queryFloat(r, "offset_y")

	detail := formationDetail{Key: f.Key, Name: f.Name, Slots: make([]slotView, 0, len(f.Slots))}
	for _, slot := range f.Slots {
		view := slotView{Key: slot.Key, X: slot.X, Y: slot.Y, Role: role.FromSlot(slot.Key)}
		if p := pitch.ToPixelOffset(slot.X, slot.Y, rect, marker, offsetX, offsetY); p.Valid {
			view.Pixel = &p
		}
		detail.Slots = append(detail.Slots, view)
	}
	writeJSON(w, http.StatusOK, detail)
}

func queryFloat(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0
	}
	return v
}
