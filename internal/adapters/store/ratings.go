package store

import (
	"context"
	"os"
	"strconv"
	"sync"

	"github.com/tidwall/gjson"
)

// FileRatings reads the externally-owned rating document: a single JSON
// object keyed by player id, each value an attribute map that may mix
// numeric scores with underscore-prefixed metadata such as a stored
// sub-position or comment. The document is re-read on each call because
// the rating editor owns and rewrites it; gjson keeps the read tolerant of
// whatever shape the editor produced.
type FileRatings struct {
	path string
}

// NewFileRatings creates a FileRatings over the given document path.
func NewFileRatings(path string) *FileRatings {
	return &FileRatings{path: path}
}

// Attributes returns one player's attribute map.
func (s *FileRatings) Attributes(ctx context.Context, playerID int) (map[string]interface{}, bool) {
	attrs, ok := s.All(ctx)[playerID]
	return attrs, ok
}

// All returns every recorded attribute map keyed by player id. A missing or
// unparseable document yields an empty map: missing rating data is never an
// error.
func (s *FileRatings) All(ctx context.Context) map[int]map[string]interface{} {
	out := make(map[int]map[string]interface{})
	data, err := os.ReadFile(s.path)
	if err != nil || !gjson.ValidBytes(data) {
		return out
	}
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		id, err := strconv.Atoi(key.String())
		if err != nil || !value.IsObject() {
			return true
		}
		attrs := make(map[string]interface{})
		value.ForEach(func(ak, av gjson.Result) bool {
			if av.Type == gjson.Number {
				attrs[ak.String()] = av.Float()
			} else {
				attrs[ak.String()] = av.String()
			}
			return true
		})
		out[id] = attrs
		return true
	})
	return out
}

// MemRatings is an in-memory RatingSource for tests.
type MemRatings struct {
	mu    sync.RWMutex
	attrs map[int]map[string]interface{}
}

// NewMemRatings creates a MemRatings seeded with the given attribute maps.
func NewMemRatings(attrs map[int]map[string]interface{}) *MemRatings {
	if attrs == nil {
		attrs = make(map[int]map[string]interface{})
	}
	return &MemRatings{attrs: attrs}
}

// Set replaces one player's attribute map.
func (s *MemRatings) Set(playerID int, attrs map[string]interface{}) {
	s.mu.Lock()
	s.attrs[playerID] = attrs
	s.mu.Unlock()
}

// Attributes returns one player's attribute map.
func (s *MemRatings) Attributes(ctx context.Context, playerID int) (map[string]interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attrs, ok := s.attrs[playerID]
	return attrs, ok
}

// All returns every recorded attribute map keyed by player id.
func (s *MemRatings) All(ctx context.Context) map[int]map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int]map[string]interface{}, len(s.attrs))
	for id, attrs := range s.attrs {
		out[id] = attrs
	}
	return out
}
