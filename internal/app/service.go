// Package service provides the core business service that implements the
// dependencies required by the HTTP API: it owns the placement engine and
// translates between the adapters and the domain.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gaffer/internal/adapters/roster"
	"github.com/okian/gaffer/internal/adapters/store"
	"github.com/okian/gaffer/internal/adapters/ws"
	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/internal/domain/model"
	"github.com/okian/gaffer/internal/domain/rating"
	"github.com/okian/gaffer/internal/domain/squad"
	"github.com/okian/gaffer/pkg/logger"
	"github.com/okian/gaffer/pkg/metrics"
)

// RosterFetcher abstracts the roster backend client.
type RosterFetcher interface {
	Fetch(ctx context.Context, teamKey string) ([]model.Player, error)
}

// Broadcaster abstracts the websocket hub.
type Broadcaster interface {
	Broadcast(ctx context.Context, v interface{})
	ClientCount() int
	Close()
}

// Service implements the API dependencies for the squad builder.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine       *squad.Engine
	aggregator   *rating.Aggregator
	squadStore   store.SquadStore
	ratingSource store.RatingSource
	rosterClient RosterFetcher
	hub          Broadcaster

	// Configuration
	dataDir          string
	defaultFormation string
	rosterBaseURL    string
	rosterTimeout    time.Duration
	maxSubstitutes   int
	formGoalWeight   float64
	formAssistWeight float64
	formMinutesFull  float64

	// State
	team    string
	started bool

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDataDir sets the directory for squad snapshots and rating documents.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithDefaultFormation sets the formation used at startup and as the
// fallback for unknown persisted keys.
func WithDefaultFormation(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.defaultFormation = key
		}
	}
}

// WithRosterBaseURL points the service at the roster backend.
func WithRosterBaseURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.rosterBaseURL = u
		}
	}
}

// WithRosterTimeout bounds a single roster fetch.
func WithRosterTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.rosterTimeout = d
		}
	}
}

// WithMaxSubstitutes caps the bench size.
func WithMaxSubstitutes(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxSubstitutes = n
		}
	}
}

// WithFormWeights sets the chemistry heuristic weights.
func WithFormWeights(goal, assist, minutesFull float64) Option {
	return func(s *Service) {
		s.formGoalWeight = goal
		s.formAssistWeight = assist
		s.formMinutesFull = minutesFull
	}
}

// WithSquadStore injects a snapshot store (used by tests).
func WithSquadStore(st store.SquadStore) Option {
	return func(s *Service) {
		if st != nil {
			s.squadStore = st
		}
	}
}

// WithRatingSource injects a rating source (used by tests).
func WithRatingSource(rs store.RatingSource) Option {
	return func(s *Service) {
		if rs != nil {
			s.ratingSource = rs
		}
	}
}

// WithRosterClient injects a roster client (used by tests).
func WithRosterClient(c RosterFetcher) Option {
	return func(s *Service) {
		if c != nil {
			s.rosterClient = c
		}
	}
}

// WithHub injects a broadcaster (used by tests).
func WithHub(h Broadcaster) Option {
	return func(s *Service) {
		if h != nil {
			s.hub = h
		}
	}
}

// Default service configuration.
const (
	defaultDataDir        = "data"
	defaultRosterTimeout  = 5 * time.Second
	defaultMaxSubstitutes = 7
)

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:          defaultDataDir,
		defaultFormation: formation.DefaultKey,
		rosterBaseURL:    "http://localhost:8000",
		rosterTimeout:    defaultRosterTimeout,
		maxSubstitutes:   defaultMaxSubstitutes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.log == nil {
		s.log = logger.Get()
	}

	s.log.Info(ctx, "starting squad service...")

	if s.squadStore == nil {
		fs, err := store.NewFileStore(s.dataDir)
		if err != nil {
			return fmt.Errorf("init squad store: %w", err)
		}
		s.squadStore = fs
	}
	if s.ratingSource == nil {
		s.ratingSource = store.NewFileRatings(filepath.Join(s.dataDir, "ratings.json"))
	}
	if s.rosterClient == nil {
		s.rosterClient = roster.New(s.rosterBaseURL, roster.WithTimeout(s.rosterTimeout))
	}
	if s.hub == nil {
		s.hub = ws.NewHub(ws.WithLogger(s.log.Named("ws")))
	}

	aggOpts := []rating.Option{}
	if s.formGoalWeight > 0 && s.formAssistWeight > 0 {
		aggOpts = append(aggOpts, rating.WithFormWeights(s.formGoalWeight, s.formAssistWeight))
	}
	if s.formMinutesFull > 0 {
		aggOpts = append(aggOpts, rating.WithMinutesFull(s.formMinutesFull))
	}
	s.aggregator = rating.New(aggOpts...)

	startFormation := formation.Default()
	if f, err := formation.Get(s.defaultFormation); err == nil {
		startFormation = f
	} else {
		s.log.Warn(ctx, "unknown default formation; falling back",
			logger.String("formation", s.defaultFormation),
			logger.String("fallback", formation.DefaultKey),
		)
	}
	s.engine = squad.New(
		squad.WithFormation(startFormation),
		squad.WithMaxSubstitutes(s.maxSubstitutes),
	)
	s.engine.Subscribe(s.onSnapshot)

	s.started = true
	s.log.Info(ctx, "squad service started",
		logger.String("formation", startFormation.Key),
		logger.String("dataDir", s.dataDir),
		logger.Int("maxSubstitutes", s.maxSubstitutes),
	)
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.hub != nil {
		s.hub.Close()
	}
	s.started = false
	s.log.Info(context.Background(), "squad service stopped")
}

// onSnapshot reacts to committed engine mutations: it refreshes gauges and
// pushes the new state to websocket subscribers.
func (s *Service) onSnapshot(snap squad.Snapshot) {
	ctx := context.Background()
	stats := s.aggregator.SquadStats(snap.Starters, s.engine.Players(), s.engine.Ratings())
	metrics.UpdateAssignedStarters(len(snap.Starters))
	metrics.UpdateSquadOverall(stats.Overall)
	s.hub.Broadcast(ctx, map[string]interface{}{
		"type":     "squad",
		"snapshot": snap,
		"stats":    stats,
	})
}

// SelectTeam fetches the team's roster, aggregates ratings for it and
// resets the engine to an empty assignment for the new team.
func (s *Service) SelectTeam(ctx context.Context, teamKey string) error {
	players, err := s.rosterClient.Fetch(ctx, teamKey)
	if err != nil {
		metrics.RecordRosterFetch("error")
		return err
	}
	metrics.RecordRosterFetch("ok")

	ratings := make(map[int]float64)
	all := s.ratingSource.All(ctx)
	for i, p := range players {
		attrs, ok := all[p.ID]
		if !ok {
			continue
		}
		avg := rating.AttributeAverage(attrs)
		ratings[p.ID] = avg
		players[i].Rating = avg
	}

	s.engine.SetRoster(ctx, players)
	s.engine.SetRatings(ratings)

	s.mu.Lock()
	s.team = teamKey
	s.mu.Unlock()

	metrics.UpdateRosterSize(len(players))
	s.log.Info(ctx, "team selected",
		logger.String("team", teamKey),
		logger.Int("players", len(players)),
		logger.Int("rated", len(ratings)),
	)
	return nil
}

// Team returns the currently selected team key.
func (s *Service) Team() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.team
}

// Roster returns the current roster in backend order.
func (s *Service) Roster(ctx context.Context) []model.Player {
	return s.engine.Roster()
}

// Snapshot returns the current engine state.
func (s *Service) Snapshot(ctx context.Context) squad.Snapshot {
	return s.engine.Snapshot()
}

// SquadStats aggregates the currently assigned squad.
func (s *Service) SquadStats(ctx context.Context) rating.SquadStats {
	snap := s.engine.Snapshot()
	return s.aggregator.SquadStats(snap.Starters, s.engine.Players(), s.engine.Ratings())
}

// Place submits a placement intent.
func (s *Service) Place(ctx context.Context, slotKey string, playerID int) squad.Verdict {
	v := s.engine.Place(ctx, slotKey, playerID)
	s.recordVerdict(ctx, v, slotKey, playerID)
	return v
}

// BeginDrag records the dragged player.
func (s *Service) BeginDrag(ctx context.Context, playerID int) {
	s.engine.BeginDrag(ctx, playerID)
}

// EndDrag clears the transient drag selection.
func (s *Service) EndDrag(ctx context.Context) {
	s.engine.EndDrag(ctx)
}

// DropOn places the dragged player on a slot.
func (s *Service) DropOn(ctx context.Context, slotKey string) squad.Verdict {
	v := s.engine.DropOn(ctx, slotKey)
	s.recordVerdict(ctx, v, slotKey, 0)
	return v
}

func (s *Service) recordVerdict(ctx context.Context, v squad.Verdict, slotKey string, playerID int) {
	if v.OK() {
		metrics.RecordPlacementAccepted()
		return
	}
	metrics.RecordPlacementRejected(v.String())
	s.log.Debug(ctx, "placement rejected",
		logger.String("slot", slotKey),
		logger.Int("player", playerID),
		logger.String("reason", v.String()),
	)
}

// Remove clears a slot.
func (s *Service) Remove(ctx context.Context, slotKey string) bool {
	ok := s.engine.Remove(ctx, slotKey)
	if ok {
		metrics.RecordRemoval()
	}
	return ok
}

// AutoFill greedily fills every slot with the best compatible player.
func (s *Service) AutoFill(ctx context.Context) {
	start := time.Now()
	s.engine.AutoFill(ctx)
	metrics.RecordAutofillDuration(float64(time.Since(start).Microseconds()) / 1e3)
}

// ResetSquad clears the assignment and bench.
func (s *Service) ResetSquad(ctx context.Context) {
	s.engine.Reset(ctx)
}

// ChangeFormation switches to a cataloged formation. Unknown keys are fatal
// to this operation: the current formation is kept and ErrNotFound returned.
func (s *Service) ChangeFormation(ctx context.Context, key string) error {
	f, err := formation.Get(key)
	if err != nil {
		return err
	}
	s.engine.ChangeFormation(ctx, f)
	metrics.RecordFormationChange()
	return nil
}

// AddSubstitute appends a player to the bench.
func (s *Service) AddSubstitute(ctx context.Context, playerID int) squad.Verdict {
	return s.engine.AddSubstitute(ctx, playerID)
}

// RemoveSubstitute drops a player from the bench.
func (s *Service) RemoveSubstitute(ctx context.Context, playerID int) bool {
	return s.engine.RemoveSubstitute(ctx, playerID)
}

// SaveSquad snapshots the engine state for the given team (defaulting to
// the selected one).
func (s *Service) SaveSquad(ctx context.Context, teamKey string) (store.Snapshot, error) {
	if teamKey == "" {
		teamKey = s.Team()
	}
	if teamKey == "" {
		return store.Snapshot{}, ErrNoTeam
	}
	snap := s.engine.Snapshot()
	persisted := store.Snapshot{
		ID:          uuid.New().String(),
		Formation:   snap.Formation,
		Starters:    snap.Starters,
		Substitutes: snap.Substitutes,
		SavedAt:     time.Now().UTC(),
	}
	if err := s.squadStore.Save(ctx, teamKey, persisted); err != nil {
		return store.Snapshot{}, err
	}
	metrics.RecordSnapshotSave()
	s.log.Info(ctx, "squad saved",
		logger.String("team", teamKey),
		logger.String("snapshot", persisted.ID),
	)
	return persisted, nil
}

// LoadSquad restores a previously saved squad for the team. A team with no
// saved squad is a normal outcome reported as found=false, never an error;
// a corrupt snapshot is logged and treated the same way.
func (s *Service) LoadSquad(ctx context.Context, teamKey string) (bool, error) {
	if teamKey == "" {
		teamKey = s.Team()
	}
	if teamKey == "" {
		return false, ErrNoTeam
	}
	snap, err := s.squadStore.Load(ctx, teamKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.RecordSnapshotLoadMiss()
			s.log.Debug(ctx, "no saved squad", logger.String("team", teamKey), logger.Error(err))
			return false, nil
		}
		return false, err
	}

	f, ferr := formation.Get(snap.Formation)
	if ferr != nil {
		s.log.Warn(ctx, "saved squad references unknown formation; falling back",
			logger.String("formation", snap.Formation),
			logger.String("fallback", formation.DefaultKey),
		)
		f = formation.Default()
	}
	s.engine.Restore(ctx, f, snap.Starters, snap.Substitutes)
	metrics.RecordSnapshotLoad()
	return true, nil
}

// GetStats returns service statistics for /stats and the metrics updaters.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	ready := s.started
	s.mu.RUnlock()
	if !ready {
		return map[string]interface{}{}
	}
	snap := s.engine.Snapshot()
	return map[string]interface{}{
		"team":        s.Team(),
		"formation":   snap.Formation,
		"assigned":    len(snap.Starters),
		"substitutes": len(snap.Substitutes),
		"rosterSize":  len(s.engine.Roster()),
		"wsClients":   s.hub.ClientCount(),
	}
}
