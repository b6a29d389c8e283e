// Package store persists squad snapshots keyed by team and reads the
// externally-owned per-player rating documents.
package store

import (
	"context"
	"time"
)

// Snapshot is the persisted squad state for one team.
type Snapshot struct {
	ID          string         `json:"id,omitempty"`
	Formation   string         `json:"formation"`
	Starters    map[string]int `json:"starters"`
	Substitutes []int          `json:"substitutes"`
	SavedAt     time.Time      `json:"savedAt"`
}

// SquadStore provides team-keyed snapshot persistence. A team that was
// never saved is a normal, expected state reported via ErrNotFound, not a
// failure.
type SquadStore interface {
	// Save persists the snapshot for teamKey, replacing any previous one.
	Save(ctx context.Context, teamKey string, snap Snapshot) error

	// Load returns the stored snapshot for teamKey.
	// Returns ErrNotFound when nothing (readable) was stored.
	Load(ctx context.Context, teamKey string) (Snapshot, error)
}

// RatingSource reads per-player attribute maps. Keys prefixed with "_" are
// metadata and must be excluded from numeric aggregation by the consumer.
type RatingSource interface {
	// Attributes returns the attribute map for one player; ok is false
	// when the player has no recorded ratings.
	Attributes(ctx context.Context, playerID int) (map[string]interface{}, bool)

	// All returns every recorded attribute map keyed by player id.
	All(ctx context.Context) map[int]map[string]interface{}
}
