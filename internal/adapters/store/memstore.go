package store

import (
	"context"
	"sync"
)

// MemStore is an in-memory SquadStore used in tests and as a fallback when
// no data directory is configured.
type MemStore struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{snaps: make(map[string]Snapshot)}
}

// Save stores the snapshot for teamKey.
func (s *MemStore) Save(ctx context.Context, teamKey string, snap Snapshot) error {
	s.mu.Lock()
	s.snaps[sanitizeKey(teamKey)] = snap
	s.mu.Unlock()
	return nil
}

// Load returns the stored snapshot for teamKey, or ErrNotFound.
func (s *MemStore) Load(ctx context.Context, teamKey string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[sanitizeKey(teamKey)]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}
