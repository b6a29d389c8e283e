package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gaffer/internal/adapters/http/api"
	"github.com/okian/gaffer/internal/adapters/store"
	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/internal/domain/model"
	"github.com/okian/gaffer/internal/domain/rating"
	"github.com/okian/gaffer/internal/domain/squad"
)

// stubDeps is a scriptable Dependencies implementation recording the last
// intent each handler forwarded.
type stubDeps struct {
	team        string
	roster      []model.Player
	snap        squad.Snapshot
	stats       rating.SquadStats
	verdict     squad.Verdict
	removed     bool
	selectErr   error
	formErr     error
	saveSnap    store.Snapshot
	saveErr     error
	loadFound   bool
	loadErr     error
	lastSlot    string
	lastPlayer  int
	lastTeam    string
	lastFormKey string
	dragBegun   bool
	dragEnded   bool
	autoFilled  bool
	resetCalled bool
}

func (s *stubDeps) SelectTeam(_ context.Context, teamKey string) error {
	s.lastTeam = teamKey
	return s.selectErr
}
func (s *stubDeps) Team() string                                { return s.team }
func (s *stubDeps) Roster(context.Context) []model.Player       { return s.roster }
func (s *stubDeps) Snapshot(context.Context) squad.Snapshot     { return s.snap }
func (s *stubDeps) SquadStats(context.Context) rating.SquadStats { return s.stats }

func (s *stubDeps) Place(_ context.Context, slotKey string, playerID int) squad.Verdict {
	s.lastSlot, s.lastPlayer = slotKey, playerID
	return s.verdict
}
func (s *stubDeps) Remove(_ context.Context, slotKey string) bool {
	s.lastSlot = slotKey
	return s.removed
}
func (s *stubDeps) AutoFill(context.Context)   { s.autoFilled = true }
func (s *stubDeps) ResetSquad(context.Context) { s.resetCalled = true }
func (s *stubDeps) ChangeFormation(_ context.Context, key string) error {
	s.lastFormKey = key
	return s.formErr
}

func (s *stubDeps) BeginDrag(_ context.Context, playerID int) {
	s.dragBegun, s.lastPlayer = true, playerID
}
func (s *stubDeps) EndDrag(context.Context) { s.dragEnded = true }
func (s *stubDeps) DropOn(_ context.Context, slotKey string) squad.Verdict {
	s.lastSlot = slotKey
	return s.verdict
}

func (s *stubDeps) AddSubstitute(_ context.Context, playerID int) squad.Verdict {
	s.lastPlayer = playerID
	return s.verdict
}
func (s *stubDeps) RemoveSubstitute(_ context.Context, playerID int) bool {
	s.lastPlayer = playerID
	return s.removed
}

func (s *stubDeps) SaveSquad(_ context.Context, teamKey string) (store.Snapshot, error) {
	s.lastTeam = teamKey
	return s.saveSnap, s.saveErr
}
func (s *stubDeps) LoadSquad(_ context.Context, teamKey string) (bool, error) {
	s.lastTeam = teamKey
	return s.loadFound, s.loadErr
}

func (s *stubDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"team": s.team}
}

func newTestServer(deps *stubDeps) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, deps).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func postJSON(url string, body string) (*http.Response, error) {
	return http.Post(url, "application/json", bytes.NewBufferString(body))
}

func decodeBody(resp *http.Response, v any) {
	defer resp.Body.Close() //nolint:errcheck
	So(json.NewDecoder(resp.Body).Decode(v), ShouldBeNil)
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given a running API server", t, func() {
		deps := &stubDeps{team: "arsenal"}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When hitting /healthz", func() {
			resp, err := http.Get(srv.URL + "/healthz")

			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(resp.Header.Get("X-Request-Id"), ShouldNotBeEmpty)
			resp.Body.Close() //nolint:errcheck
		})

		Convey("When hitting /stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)

			var got map[string]interface{}
			decodeBody(resp, &got)
			So(got["team"], ShouldEqual, "arsenal")
		})
	})
}

func TestFormationRoutes(t *testing.T) {
	Convey("Given a running API server", t, func() {
		srv := newTestServer(&stubDeps{})
		defer srv.Close()

		Convey("When listing formations", func() {
			resp, err := http.Get(srv.URL + "/formations")
			So(err, ShouldBeNil)

			var got []map[string]string
			decodeBody(resp, &got)
			So(len(got), ShouldBeGreaterThanOrEqualTo, 20)
			So(got[0]["key"], ShouldEqual, formation.DefaultKey)
		})

		Convey("When fetching a formation without a measured rectangle", func() {
			resp, err := http.Get(srv.URL + "/formations/4-4-2")
			So(err, ShouldBeNil)

			var got struct {
				Key   string `json:"key"`
				Slots []struct {
					Key   string           `json:"key"`
					Role  string           `json:"role"`
					Pixel *json.RawMessage `json:"pixel"`
				} `json:"slots"`
			}
			decodeBody(resp, &got)
			So(got.Key, ShouldEqual, "4-4-2")
			So(got.Slots, ShouldHaveLength, 11)

			Convey("Then roles are resolved and pixels omitted", func() {
				So(got.Slots[0].Role, ShouldEqual, "GK")
				So(got.Slots[0].Pixel, ShouldBeNil)
			})
		})

		Convey("When fetching with a measured rectangle", func() {
			resp, err := http.Get(srv.URL + "/formations/4-4-2?w=680&h=1050&marker=40")
			So(err, ShouldBeNil)

			var got struct {
				Slots []struct {
					Pixel *struct {
						X     float64 `json:"x"`
						Y     float64 `json:"y"`
						Valid bool    `json:"valid"`
					} `json:"pixel"`
				} `json:"slots"`
			}
			decodeBody(resp, &got)

			Convey("Then every slot carries a valid projection", func() {
				for _, s := range got.Slots {
					So(s.Pixel, ShouldNotBeNil)
					So(s.Pixel.Valid, ShouldBeTrue)
					So(s.Pixel.X, ShouldBeBetweenOrEqual, 0, 680-40)
					So(s.Pixel.Y, ShouldBeBetweenOrEqual, 0, 1050-40)
				}
			})
		})

		Convey("When fetching an unknown formation", func() {
			resp, err := http.Get(srv.URL + "/formations/9-9-9")

			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			resp.Body.Close() //nolint:errcheck
		})
	})
}

func TestPlacementRoutes(t *testing.T) {
	Convey("Given a running API server", t, func() {
		deps := &stubDeps{verdict: squad.VerdictAccepted}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When placing a player", func() {
			resp, err := postJSON(srv.URL+"/squad/place", `{"slot": "ST", "player_id": 7}`)
			So(err, ShouldBeNil)

			var got struct {
				Accepted bool   `json:"accepted"`
				Reason   string `json:"reason"`
			}
			decodeBody(resp, &got)
			So(got.Accepted, ShouldBeTrue)
			So(deps.lastSlot, ShouldEqual, "ST")
			So(deps.lastPlayer, ShouldEqual, 7)
		})

		Convey("When the engine rejects the placement", func() {
			deps.verdict = squad.VerdictRoleMismatch
			resp, err := postJSON(srv.URL+"/squad/place", `{"slot": "LW", "player_id": 7}`)
			So(err, ShouldBeNil)

			Convey("Then the rejection rides a 200 with a reason", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var got struct {
					Accepted bool   `json:"accepted"`
					Reason   string `json:"reason"`
				}
				decodeBody(resp, &got)
				So(got.Accepted, ShouldBeFalse)
				So(got.Reason, ShouldEqual, "role_mismatch")
			})
		})

		Convey("When the request body is malformed", func() {
			resp, err := postJSON(srv.URL+"/squad/place", `{"slot": }`)

			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			resp.Body.Close() //nolint:errcheck
		})

		Convey("When the slot is missing", func() {
			resp, err := postJSON(srv.URL+"/squad/place", `{"player_id": 7}`)

			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			resp.Body.Close() //nolint:errcheck
		})

		Convey("When auto-filling and resetting", func() {
			resp, err := postJSON(srv.URL+"/squad/autofill", `{}`)
			So(err, ShouldBeNil)
			resp.Body.Close() //nolint:errcheck
			So(deps.autoFilled, ShouldBeTrue)

			resp, err = postJSON(srv.URL+"/squad/reset", `{}`)
			So(err, ShouldBeNil)
			resp.Body.Close() //nolint:errcheck
			So(deps.resetCalled, ShouldBeTrue)
		})

		Convey("When changing to an unknown formation", func() {
			deps.formErr = formation.ErrNotFound
			resp, err := postJSON(srv.URL+"/squad/formation", `{"key": "9-9-9"}`)

			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			resp.Body.Close() //nolint:errcheck
		})

		Convey("When running the drag lifecycle", func() {
			resp, err := postJSON(srv.URL+"/squad/drag", `{"player_id": 7}`)
			So(err, ShouldBeNil)
			resp.Body.Close() //nolint:errcheck
			So(deps.dragBegun, ShouldBeTrue)

			resp, err = postJSON(srv.URL+"/squad/drop", `{"slot": "ST"}`)
			So(err, ShouldBeNil)
			var got struct {
				Accepted bool `json:"accepted"`
			}
			decodeBody(resp, &got)
			So(got.Accepted, ShouldBeTrue)
			So(deps.lastSlot, ShouldEqual, "ST")

			resp, err = postJSON(srv.URL+"/squad/drag/end", `{}`)
			So(err, ShouldBeNil)
			resp.Body.Close() //nolint:errcheck
			So(deps.dragEnded, ShouldBeTrue)
		})
	})
}

func TestRosterRoutes(t *testing.T) {
	Convey("Given a running API server", t, func() {
		deps := &stubDeps{
			team:   "arsenal",
			roster: []model.Player{{ID: 7, Name: "Target", Position: "Striker"}},
		}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When reading the roster", func() {
			resp, err := http.Get(srv.URL + "/roster")
			So(err, ShouldBeNil)

			var got struct {
				Team    string         `json:"team"`
				Players []model.Player `json:"players"`
			}
			decodeBody(resp, &got)
			So(got.Team, ShouldEqual, "arsenal")
			So(got.Players, ShouldHaveLength, 1)
		})

		Convey("When selecting a team", func() {
			resp, err := postJSON(srv.URL+"/squad/roster", `{"team": "chelsea"}`)

			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close() //nolint:errcheck
			So(deps.lastTeam, ShouldEqual, "chelsea")
		})

		Convey("When the roster backend is down", func() {
			deps.selectErr = errors.New("connection refused")
			resp, err := postJSON(srv.URL+"/squad/roster", `{"team": "chelsea"}`)

			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadGateway)
			resp.Body.Close() //nolint:errcheck
		})

		Convey("When the team is missing", func() {
			resp, err := postJSON(srv.URL+"/squad/roster", `{}`)

			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			resp.Body.Close() //nolint:errcheck
		})
	})
}

func TestPersistenceRoutes(t *testing.T) {
	Convey("Given a running API server", t, func() {
		deps := &stubDeps{
			saveSnap:  store.Snapshot{ID: "snap-1", Formation: "4-3-3"},
			loadFound: true,
		}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When saving with an empty body", func() {
			resp, err := postJSON(srv.URL+"/squad/save", "")
			So(err, ShouldBeNil)

			Convey("Then the save targets the selected team", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var got store.Snapshot
				decodeBody(resp, &got)
				So(got.ID, ShouldEqual, "snap-1")
				So(deps.lastTeam, ShouldBeEmpty)
			})
		})

		Convey("When saving for an explicit team", func() {
			resp, err := postJSON(srv.URL+"/squad/save", `{"team": "chelsea"}`)

			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close() //nolint:errcheck
			So(deps.lastTeam, ShouldEqual, "chelsea")
		})

		Convey("When loading an existing squad", func() {
			resp, err := postJSON(srv.URL+"/squad/load", `{"team": "chelsea"}`)
			So(err, ShouldBeNil)

			var got struct {
				Found bool `json:"found"`
			}
			decodeBody(resp, &got)
			So(got.Found, ShouldBeTrue)
		})

		Convey("When loading a team with no saved squad", func() {
			deps.loadFound = false
			resp, err := postJSON(srv.URL+"/squad/load", `{"team": "chelsea"}`)
			So(err, ShouldBeNil)

			Convey("Then the miss is a normal 200 outcome", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var got map[string]interface{}
				decodeBody(resp, &got)
				So(got["found"], ShouldEqual, false)
				So(got, ShouldNotContainKey, "squad")
			})
		})
	})
}

func TestBenchRoutes(t *testing.T) {
	Convey("Given a running API server", t, func() {
		deps := &stubDeps{verdict: squad.VerdictAccepted, removed: true}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When adding a substitute", func() {
			resp, err := postJSON(srv.URL+"/squad/substitutes", `{"player_id": 9}`)
			So(err, ShouldBeNil)

			var got struct {
				Accepted bool `json:"accepted"`
			}
			decodeBody(resp, &got)
			So(got.Accepted, ShouldBeTrue)
			So(deps.lastPlayer, ShouldEqual, 9)
		})

		Convey("When removing a substitute", func() {
			req, err := http.NewRequest(http.MethodDelete, srv.URL+"/squad/substitutes", bytes.NewBufferString(`{"player_id": 9}`))
			So(err, ShouldBeNil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)

			var got map[string]bool
			decodeBody(resp, &got)
			So(got["removed"], ShouldBeTrue)
		})
	})
}
