// Package squad implements the stateful placement engine behind the squad
// builder: the current formation, the slot-to-player assignment, the bench,
// and the transient drag selection. All mutations go through the named
// operations; every committed mutation notifies registered listeners with a
// fresh snapshot so the view layer can subscribe instead of sharing state.
package squad

import (
	"context"
	"sync"

	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/internal/domain/model"
	"github.com/okian/gaffer/internal/domain/role"
)

// Snapshot is an immutable copy of the engine state handed to listeners
// and the persistence layer.
type Snapshot struct {
	Formation   string         `json:"formation"`
	Starters    map[string]int `json:"starters"`
	Substitutes []int          `json:"substitutes"`
}

// Listener receives a snapshot after each committed mutation.
type Listener func(Snapshot)

// Engine holds the mutable squad state. A single mutex serializes intents;
// the engine itself never spawns goroutines.
type Engine struct {
	mu sync.RWMutex

	form       formation.Formation
	assignment map[string]int // slot key -> player id
	occupied   map[int]string // player id -> slot key, the duplicate guard
	subs       []int
	maxSubs    int

	roster      map[int]model.Player
	rosterOrder []int           // preserves backend ordering for stable ties
	ratings     map[int]float64 // rated players only; absence means unrated

	dragID     int
	dragActive bool

	listeners []Listener
}

// Default bench size.
const defaultMaxSubstitutes = 7

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithFormation sets the initial formation.
func WithFormation(f formation.Formation) Option {
	return func(e *Engine) {
		if f.Key != "" {
			e.form = f
		}
	}
}

// WithMaxSubstitutes caps the bench size.
func WithMaxSubstitutes(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxSubs = n
		}
	}
}

// WithListener registers a snapshot listener at construction time.
func WithListener(l Listener) Option {
	return func(e *Engine) {
		if l != nil {
			e.listeners = append(e.listeners, l)
		}
	}
}

// New constructs an Engine with an empty assignment on the default formation.
func New(opts ...Option) *Engine {
	e := &Engine{
		form:       formation.Default(),
		assignment: make(map[string]int),
		occupied:   make(map[int]string),
		roster:     make(map[int]model.Player),
		ratings:    make(map[int]float64),
		maxSubs:    defaultMaxSubstitutes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers a listener for committed mutations.
func (e *Engine) Subscribe(l Listener) {
	if l == nil {
		return
	}
	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()
}

// SetRoster replaces the player roster, clearing the assignment and bench
// (a team switch starts from an empty squad). An in-flight drag is kept:
// if it references a player absent from the new roster it simply fails
// validation on drop.
func (e *Engine) SetRoster(ctx context.Context, players []model.Player) {
	e.mu.Lock()
	e.roster = make(map[int]model.Player, len(players))
	e.rosterOrder = make([]int, 0, len(players))
	for _, p := range players {
		if _, dup := e.roster[p.ID]; dup {
			continue
		}
		e.roster[p.ID] = p
		e.rosterOrder = append(e.rosterOrder, p.ID)
	}
	e.assignment = make(map[string]int)
	e.occupied = make(map[int]string)
	e.subs = nil
	e.ratings = make(map[int]float64)
	e.mu.Unlock()
	e.notify()
}

// SetRatings replaces the skill scalars for rated players. Players absent
// from the map are treated as unrated.
func (e *Engine) SetRatings(ratings map[int]float64) {
	e.mu.Lock()
	e.ratings = make(map[int]float64, len(ratings))
	for id, r := range ratings {
		e.ratings[id] = r
	}
	e.mu.Unlock()
}

// Place assigns a player to a slot. The intent is rejected, leaving state
// unchanged, when the slot or player is unknown, the player's role does not
// match the slot's role, or the player already occupies another slot.
func (e *Engine) Place(ctx context.Context, slotKey string, playerID int) Verdict {
	e.mu.Lock()
	v := e.place(slotKey, playerID)
	e.mu.Unlock()
	if v.OK() {
		e.notify()
	}
	return v
}

// place requires e.mu held.
func (e *Engine) place(slotKey string, playerID int) Verdict {
	if _, ok := e.form.Slot(slotKey); !ok {
		return VerdictUnknownSlot
	}
	p, ok := e.roster[playerID]
	if !ok {
		return VerdictUnknownPlayer
	}
	if role.FromSlot(slotKey) != role.FromPosition(p.Position) {
		return VerdictRoleMismatch
	}
	if cur, taken := e.occupied[playerID]; taken && cur != slotKey {
		return VerdictDuplicate
	}
	if prev, filled := e.assignment[slotKey]; filled {
		delete(e.occupied, prev)
	}
	e.assignment[slotKey] = playerID
	e.occupied[playerID] = slotKey
	return VerdictAccepted
}

// Remove clears a slot. Removing an empty or unknown slot is a no-op.
func (e *Engine) Remove(ctx context.Context, slotKey string) bool {
	e.mu.Lock()
	id, ok := e.assignment[slotKey]
	if ok {
		delete(e.assignment, slotKey)
		delete(e.occupied, id)
	}
	e.mu.Unlock()
	if ok {
		e.notify()
	}
	return ok
}

// AutoFill rebuilds the whole assignment in one atomic step: for every slot
// in formation order it picks the highest-rated unassigned player whose
// role matches the slot's role. Unrated players sort last rather than being
// excluded; ties keep roster order. Slots with no compatible player remain
// unfilled.
func (e *Engine) AutoFill(ctx context.Context) {
	e.mu.Lock()
	next := make(map[string]int, len(e.form.Slots))
	nextOccupied := make(map[int]string, len(e.form.Slots))

	for _, slot := range e.form.Slots {
		want := role.FromSlot(slot.Key)
		var bestID int
		var bestRating float64
		found, bestRated := false, false

		for _, id := range e.rosterOrder {
			if _, used := nextOccupied[id]; used {
				continue
			}
			if role.FromPosition(e.roster[id].Position) != want {
				continue
			}
			r, rated := e.ratings[id]
			switch {
			case !found:
			case rated && !bestRated:
			case rated == bestRated && r > bestRating:
			default:
				continue
			}
			found, bestID, bestRated, bestRating = true, id, rated, r
		}
		if found {
			next[slot.Key] = bestID
			nextOccupied[bestID] = slot.Key
		}
	}

	e.assignment = next
	e.occupied = nextOccupied
	e.dropPromotedSubs()
	e.mu.Unlock()
	e.notify()
}

// dropPromotedSubs removes bench entries that became starters. Requires
// e.mu held.
func (e *Engine) dropPromotedSubs() {
	kept := e.subs[:0]
	for _, id := range e.subs {
		if _, starter := e.occupied[id]; !starter {
			kept = append(kept, id)
		}
	}
	e.subs = kept
}

// Reset clears the assignment and the bench.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	e.assignment = make(map[string]int)
	e.occupied = make(map[int]string)
	e.subs = nil
	e.mu.Unlock()
	e.notify()
}

// ChangeFormation replaces the formation. Assignments for slot keys that do
// not exist in the new formation vanish from the mapping; surviving keys
// keep their players. The vanish-not-remap behavior is deliberate and
// pinned by tests.
func (e *Engine) ChangeFormation(ctx context.Context, f formation.Formation) {
	e.mu.Lock()
	e.form = f
	for slotKey, id := range e.assignment {
		if _, ok := f.Slot(slotKey); !ok {
			delete(e.assignment, slotKey)
			delete(e.occupied, id)
		}
	}
	e.mu.Unlock()
	e.notify()
}

// BeginDrag records the dragged player. The id is not validated here: the
// roster may be replaced before the drop, in which case the drop fails
// validation instead of crashing.
func (e *Engine) BeginDrag(ctx context.Context, playerID int) {
	e.mu.Lock()
	e.dragID = playerID
	e.dragActive = true
	e.mu.Unlock()
}

// EndDrag clears the transient drag selection. It must be called on the
// hosting surface's drag-end signal even when no drop occurred, so an
// abandoned drag never leaves a stuck selection.
func (e *Engine) EndDrag(ctx context.Context) {
	e.mu.Lock()
	e.dragID = 0
	e.dragActive = false
	e.mu.Unlock()
}

// DropOn attempts to place the dragged player on a slot and always clears
// the drag selection afterwards.
func (e *Engine) DropOn(ctx context.Context, slotKey string) Verdict {
	e.mu.Lock()
	if !e.dragActive {
		e.mu.Unlock()
		return VerdictNoSelection
	}
	id := e.dragID
	e.dragID = 0
	e.dragActive = false
	v := e.place(slotKey, id)
	e.mu.Unlock()
	if v.OK() {
		e.notify()
	}
	return v
}

// AddSubstitute appends a known, non-starting player to the bench.
func (e *Engine) AddSubstitute(ctx context.Context, playerID int) Verdict {
	e.mu.Lock()
	v := e.addSubstitute(playerID)
	e.mu.Unlock()
	if v.OK() {
		e.notify()
	}
	return v
}

// addSubstitute requires e.mu held.
func (e *Engine) addSubstitute(playerID int) Verdict {
	if _, ok := e.roster[playerID]; !ok {
		return VerdictUnknownPlayer
	}
	if _, starter := e.occupied[playerID]; starter {
		return VerdictDuplicate
	}
	for _, id := range e.subs {
		if id == playerID {
			return VerdictDuplicate
		}
	}
	if len(e.subs) >= e.maxSubs {
		return VerdictNoSelection
	}
	e.subs = append(e.subs, playerID)
	return VerdictAccepted
}

// RemoveSubstitute drops a player from the bench; no-op when absent.
func (e *Engine) RemoveSubstitute(ctx context.Context, playerID int) bool {
	e.mu.Lock()
	removed := false
	for i, id := range e.subs {
		if id == playerID {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			removed = true
			break
		}
	}
	e.mu.Unlock()
	if removed {
		e.notify()
	}
	return removed
}

// Restore replaces the engine state from a persisted snapshot, applying
// each starter through the normal placement checks so stale player ids or
// slot keys are silently dropped rather than resurrected.
func (e *Engine) Restore(ctx context.Context, f formation.Formation, starters map[string]int, subs []int) {
	e.mu.Lock()
	e.form = f
	e.assignment = make(map[string]int, len(starters))
	e.occupied = make(map[int]string, len(starters))
	e.subs = nil
	for _, slot := range f.Slots {
		if id, ok := starters[slot.Key]; ok {
			_ = e.place(slot.Key, id)
		}
	}
	for _, id := range subs {
		_ = e.addSubstitute(id)
	}
	e.mu.Unlock()
	e.notify()
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot()
}

// snapshot requires e.mu held (read or write).
func (e *Engine) snapshot() Snapshot {
	starters := make(map[string]int, len(e.assignment))
	for k, v := range e.assignment {
		starters[k] = v
	}
	subs := make([]int, len(e.subs))
	copy(subs, e.subs)
	return Snapshot{
		Formation:   e.form.Key,
		Starters:    starters,
		Substitutes: subs,
	}
}

// notify hands a fresh snapshot to every listener. Called without the lock
// held so listeners may query the engine.
func (e *Engine) notify() {
	e.mu.RLock()
	snap := e.snapshot()
	listeners := make([]Listener, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.RUnlock()
	for _, l := range listeners {
		l(snap)
	}
}

// Formation returns the current formation.
func (e *Engine) Formation() formation.Formation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.form
}

// Assignment returns a copy of the slot-to-player mapping.
func (e *Engine) Assignment() map[string]int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]int, len(e.assignment))
	for k, v := range e.assignment {
		out[k] = v
	}
	return out
}

// Substitutes returns a copy of the bench.
func (e *Engine) Substitutes() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]int, len(e.subs))
	copy(out, e.subs)
	return out
}

// Player looks up a roster entry.
func (e *Engine) Player(id int) (model.Player, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p, ok := e.roster[id]
	return p, ok
}

// Roster returns the roster in backend order.
func (e *Engine) Roster() []model.Player {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.Player, 0, len(e.rosterOrder))
	for _, id := range e.rosterOrder {
		out = append(out, e.roster[id])
	}
	return out
}

// Players returns the roster keyed by id.
func (e *Engine) Players() map[int]model.Player {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[int]model.Player, len(e.roster))
	for id, p := range e.roster {
		out[id] = p
	}
	return out
}

// Ratings returns a copy of the rated-player scalars.
func (e *Engine) Ratings() map[int]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[int]float64, len(e.ratings))
	for id, r := range e.ratings {
		out[id] = r
	}
	return out
}

// AssignedCount reports the number of filled slots.
func (e *Engine) AssignedCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.assignment)
}
