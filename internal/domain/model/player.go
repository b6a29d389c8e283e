// Package model contains domain models passed between layers.
package model

// Player represents a roster entry owned by the external backend.
// The engine depends on ID, Name and Position; the remaining fields feed
// the form heuristic.
type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"` // free text, resolved via the role package
	Number   int    `json:"number"`
	Age      int    `json:"age"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
	Minutes  int    `json:"minutes"`
	PhotoRef string `json:"photoRef"`

	// Rating is the aggregated scalar written back by the rating package.
	// Zero means "not yet aggregated"; the sentinel lives in the rating
	// package, not here.
	Rating float64 `json:"rating,omitempty"`
}
