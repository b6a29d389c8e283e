// Package formation holds the static catalog of tactical formations.
// A formation is an ordered set of named slots, each carrying real-world
// pitch coordinates in meters on a FIFA-standard 105x68 pitch. The catalog
// is a compile-time table and is never mutated at runtime.
package formation

// Slot is a named position within a formation. X runs across the pitch
// (0..68m, left to right from the defending team's view) and Y runs along
// it (0..105m, own goal line to opposing goal line).
type Slot struct {
	Key string  `json:"key"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

// Formation is an immutable catalog entry.
type Formation struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

// SlotKeys returns the slot keys in catalog order.
func (f Formation) SlotKeys() []string {
	keys := make([]string, len(f.Slots))
	for i, s := range f.Slots {
		keys[i] = s.Key
	}
	return keys
}

// Slot returns the slot with the given key, if present.
func (f Formation) Slot(key string) (Slot, bool) {
	for _, s := range f.Slots {
		if s.Key == key {
			return s, true
		}
	}
	return Slot{}, false
}

// DefaultKey is the fallback formation used when a requested key is unknown.
const DefaultKey = "4-3-3"

// Get returns the formation for key, or ErrNotFound for an unknown key.
// Callers must treat an unknown key as fatal to that operation and fall
// back to Default().
func Get(key string) (Formation, error) {
	f, ok := catalog[key]
	if !ok {
		return Formation{}, ErrNotFound
	}
	return f, nil
}

// Default returns the default formation.
func Default() Formation {
	return catalog[DefaultKey]
}

// Keys lists the catalog keys in display order.
func Keys() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}
