// Package rating aggregates per-attribute player ratings into scalar scores
// and squad-wide composite statistics.
package rating

import (
	"encoding/json"
	"strings"

	"github.com/okian/gaffer/internal/domain/model"
	"github.com/okian/gaffer/internal/domain/role"
)

// Unrated is the sentinel scalar for a player with no recorded attribute
// ratings. It marks "unrated", not "average skill".
const Unrated = 2.5

// MetadataPrefix marks rating-store keys that are metadata (a stored
// sub-position, a free-text comment) rather than attribute scores.
const MetadataPrefix = "_"

// Rating bounds for the 0-5 scale.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// AttributeAverage computes the arithmetic mean of the numeric values in a
// player's attribute map. Metadata keys and non-numeric values are ignored.
// An empty (or all-metadata) map yields the Unrated sentinel.
func AttributeAverage(attrs map[string]interface{}) float64 {
	var sum float64
	var n int
	for k, v := range attrs {
		if strings.HasPrefix(k, MetadataPrefix) {
			continue
		}
		f, ok := toFloat(v)
		if !ok {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return Unrated
	}
	return sum / float64(n)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Default form heuristic weights.
const (
	defaultGoalWeight   = 0.35
	defaultAssistWeight = 0.2
	defaultMinutesFull  = 3_000
	formBase            = 2.0
)

// Aggregator computes squad statistics. The form weights are configurable
// because they are product-tuned, not derived.
type Aggregator struct {
	goalWeight   float64
	assistWeight float64
	minutesFull  float64
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithFormWeights sets the goal and assist contributions to the form score.
func WithFormWeights(goal, assist float64) Option {
	return func(a *Aggregator) {
		if goal > 0 {
			a.goalWeight = goal
		}
		if assist > 0 {
			a.assistWeight = assist
		}
	}
}

// WithMinutesFull sets the minutes count treated as a full season's worth.
func WithMinutesFull(minutes float64) Option {
	return func(a *Aggregator) {
		if minutes > 0 {
			a.minutesFull = minutes
		}
	}
}

// New creates an Aggregator with default weights.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		goalWeight:   defaultGoalWeight,
		assistWeight: defaultAssistWeight,
		minutesFull:  defaultMinutesFull,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Form derives a 0-5 form score from the roster feed's goals, assists and
// minutes. It is deliberately separate from the user-rated skill scale.
func (a *Aggregator) Form(p model.Player) float64 {
	played := float64(p.Minutes) / a.minutesFull
	if played > 1 {
		played = 1
	}
	f := formBase + float64(p.Goals)*a.goalWeight + float64(p.Assists)*a.assistWeight + played
	if f < MinRating {
		return MinRating
	}
	if f > MaxRating {
		return MaxRating
	}
	return f
}

// SquadStats is the composite view of an assigned squad.
type SquadStats struct {
	Overall   float64 `json:"overall"`
	Attack    float64 `json:"attack"`
	Midfield  float64 `json:"midfield"`
	Defense   float64 `json:"defense"`
	Chemistry float64 `json:"chemistry"`
}

// SquadStats aggregates the assigned starters. ratings holds the skill
// scalar for rated players only; unrated starters are excluded from the
// skill means rather than counted as zero. Chemistry is the mean form score
// of all assigned starters. An empty starter set yields all-zero stats.
func (a *Aggregator) SquadStats(assignment map[string]int, players map[int]model.Player, ratings map[int]float64) SquadStats {
	var stats SquadStats
	var total mean
	var byLine [3]mean
	var chem mean

	for _, id := range assignment {
		p, ok := players[id]
		if !ok {
			// Stale id after a roster swap; skip rather than fail.
			continue
		}
		chem.add(a.Form(p))

		r, rated := ratings[id]
		if !rated {
			continue
		}
		total.add(r)
		byLine[role.FromPosition(p.Position).Line()].add(r)
	}

	stats.Overall = total.value()
	stats.Defense = byLine[role.LineDefense].value()
	stats.Midfield = byLine[role.LineMidfield].value()
	stats.Attack = byLine[role.LineAttack].value()
	stats.Chemistry = chem.value()
	return stats
}

// mean accumulates a running arithmetic mean.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

func (m *mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}
