// Package role reduces free-text player positions and formation slot keys
// into a closed set of eight canonical tactical roles. Role equality is the
// sole compatibility test used by the placement engine, so both resolvers
// share the same codomain and both are total.
package role

import "strings"

// Role is one of the eight canonical tactical roles.
type Role string

// Canonical roles.
const (
	GK  Role = "GK"  // goalkeeper
	CB  Role = "CB"  // centre back
	FB  Role = "FB"  // fullback (wing-backs collapse here)
	DM  Role = "DM"  // defensive midfielder
	CM  Role = "CM"  // central midfielder
	CAM Role = "CAM" // attacking midfielder
	WG  Role = "WG"  // winger
	ST  Role = "ST"  // striker
)

// All returns the canonical roles in tactical order.
func All() []Role {
	return []Role{GK, CB, FB, DM, CM, CAM, WG, ST}
}

// Line groups roles into the bands used by squad statistics.
type Line int

// Tactical lines.
const (
	LineDefense Line = iota
	LineMidfield
	LineAttack
)

// Line returns the band a role contributes to: attack {ST, WG, CAM},
// midfield {CM, DM}, defense {CB, FB, GK}.
func (r Role) Line() Line {
	switch r {
	case ST, WG, CAM:
		return LineAttack
	case CM, DM:
		return LineMidfield
	default:
		return LineDefense
	}
}

func (r Role) String() string { return string(r) }

// slotRule matches a slot key fragment to a role. Rules are applied in
// order; the first hit wins.
type slotRule struct {
	contains string
	exact    string
	prefix   string
	role     Role
}

// Ordering matters: WB must be tested before the bare W winger rule, and AM
// before CM so "CAM2" does not fall through.
var slotRules = []slotRule{
	{contains: "GK", role: GK},
	{contains: "CB", role: CB},
	{contains: "WB", role: FB},
	{exact: "LB", role: FB},
	{exact: "RB", role: FB},
	{prefix: "FB", role: FB},
	{contains: "DM", role: DM},
	{contains: "AM", role: CAM},
	{contains: "CM", role: CM},
	{contains: "W", role: WG},
	{contains: "ST", role: ST},
}

// FromSlot resolves a formation slot key such as "CB1", "LWB" or "ST2" to
// its canonical role. Unmatched keys resolve to CM, never an error.
func FromSlot(slotKey string) Role {
	key := strings.ToUpper(strings.TrimSpace(slotKey))
	for _, r := range slotRules {
		switch {
		case r.exact != "" && key == r.exact:
			return r.role
		case r.prefix != "" && strings.HasPrefix(key, r.prefix):
			return r.role
		case r.contains != "" && strings.Contains(key, r.contains):
			return r.role
		}
	}
	return CM
}

// positionRule matches a lowercase fragment of a free-text position.
type positionRule struct {
	fragment string
	role     Role
}

// Primary vocabulary. "wing back" precedes the winger fragments so
// wing-backs land on FB, and the compound midfielder entries precede the
// generic fallbacks below.
var positionRules = []positionRule{
	{fragment: "goalkeeper", role: GK},
	{fragment: "keeper", role: GK},
	{fragment: "central defender", role: CB},
	{fragment: "centre back", role: CB},
	{fragment: "center back", role: CB},
	{fragment: "centre-back", role: CB},
	{fragment: "wing back", role: FB},
	{fragment: "wing-back", role: FB},
	{fragment: "full back", role: FB},
	{fragment: "fullback", role: FB},
	{fragment: "full-back", role: FB},
	{fragment: "left back", role: FB},
	{fragment: "right back", role: FB},
	{fragment: "defensive midfielder", role: DM},
	{fragment: "holding midfielder", role: DM},
	{fragment: "attacking midfielder", role: CAM},
	{fragment: "playmaker", role: CAM},
	{fragment: "central midfielder", role: CM},
	{fragment: "centre midfielder", role: CM},
	{fragment: "box-to-box", role: CM},
	{fragment: "winger", role: WG},
	{fragment: "wide", role: WG},
	{fragment: "wing", role: WG},
	{fragment: "striker", role: ST},
	{fragment: "forward", role: ST},
}

// Two-tier fallback for generic vocabulary.
var fallbackRules = []positionRule{
	{fragment: "defender", role: CB},
	{fragment: "midfielder", role: CM},
}

// FromPosition resolves a free-text player position to its canonical role.
// Upstream position strings are of uncertain vocabulary, so this is total:
// unmatched input degrades to CM rather than failing.
func FromPosition(position string) Role {
	p := strings.ToLower(strings.TrimSpace(position))
	for _, r := range positionRules {
		if strings.Contains(p, r.fragment) {
			return r.role
		}
	}
	for _, r := range fallbackRules {
		if strings.Contains(p, r.fragment) {
			return r.role
		}
	}
	return CM
}
