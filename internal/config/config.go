// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir is where squad snapshots and rating files live.
	DataDir string `koanf:"data_dir"`

	// DefaultFormation is used when a requested formation is unknown.
	DefaultFormation string `koanf:"default_formation"`

	// RosterBaseURL points at the backend that owns player rosters.
	RosterBaseURL string `koanf:"roster_base_url"`

	// RosterTimeoutMS bounds a single roster fetch.
	RosterTimeoutMS int `koanf:"roster_timeout_ms"`

	// CORSOrigins lists allowed browser origins for the API.
	CORSOrigins []string `koanf:"cors_origins"`

	// MaxSubstitutes caps the bench size.
	MaxSubstitutes int `koanf:"max_substitutes"`

	// Form heuristic weights feeding the chemistry score.
	FormGoalWeight   float64 `koanf:"form_goal_weight"`
	FormAssistWeight float64 `koanf:"form_assist_weight"`
	FormMinutesFull  float64 `koanf:"form_minutes_full"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9090",
		DataDir:          "data",
		DefaultFormation: "4-3-3",
		RosterBaseURL:    "http://localhost:8000",
		RosterTimeoutMS:  5_000,
		CORSOrigins:      []string{"*"},
		MaxSubstitutes:   7,
		FormGoalWeight:   0.35,
		FormAssistWeight: 0.2,
		FormMinutesFull:  3_000,
	}
}
