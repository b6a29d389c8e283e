package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileStore keeps one JSON snapshot file per team under a data directory.
// This mirrors the client-local storage model: small, team-keyed documents
// with no cross-team queries.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return &FileStore{dir: dir}, nil
}

// Save persists the snapshot for teamKey, replacing any previous one.
// The write goes through a temp file and rename so a crash mid-write never
// leaves a truncated snapshot.
func (s *FileStore) Save(ctx context.Context, teamKey string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	path := s.path(teamKey)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Load returns the stored snapshot for teamKey. A missing file and a
// corrupt file both report ErrNotFound: the caller treats either as "no
// saved state" and may log the wrapped cause.
func (s *FileStore) Load(ctx context.Context, teamKey string) (Snapshot, error) {
	data, err := os.ReadFile(s.path(teamKey))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: corrupt snapshot: %w", ErrNotFound, err)
	}
	return snap, nil
}

func (s *FileStore) path(teamKey string) string {
	return filepath.Join(s.dir, sanitizeKey(teamKey)+".json")
}

// sanitizeKey turns a free-text team name into a safe filename.
func sanitizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "default"
	}
	return b.String()
}
