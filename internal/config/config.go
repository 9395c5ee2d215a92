// Package config defines console configuration and its loading hooks.
//
// Values are layered: New defaults, then an optional YAML file, then
// TALENTDESK_ environment variables.
package config

import "context"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// NotifyQueueSize bounds the in-memory notification queue.
	NotifyQueueSize int `koanf:"notify_queue_size"`

	// NotifyWorkers sets the number of notification delivery workers.
	NotifyWorkers int `koanf:"notify_workers"`

	// NotifyRatePerSec and NotifyBurst pace outbox delivery.
	NotifyRatePerSec float64 `koanf:"notify_rate_per_sec"`
	NotifyBurst      int     `koanf:"notify_burst"`

	// DedupeSize caps remembered application submission keys.
	DedupeSize int `koanf:"dedupe_size"`

	// WizardSessionsMax bounds open application sessions; the oldest is
	// evicted first. Zero leaves sessions unbounded.
	WizardSessionsMax int `koanf:"wizard_sessions_max"`

	// SimilarLimit is how many similar candidates a ranking returns.
	SimilarLimit int `koanf:"similar_limit"`

	// TopCandidatesMaxLimit caps GET /candidates/top?limit.
	TopCandidatesMaxLimit int `koanf:"top_candidates_max_limit"`

	// SimulatedLatencyMinMS and SimulatedLatencyMaxMS delay similarity
	// rankings to mimic a slow analysis. Zero disables the delay.
	SimulatedLatencyMinMS int `koanf:"simulated_latency_min_ms"`
	SimulatedLatencyMaxMS int `koanf:"simulated_latency_max_ms"`

	// SaveNoticeMS is how long the "settings saved" notice stays up.
	SaveNoticeMS int `koanf:"save_notice_ms"`

	// DefaultLocale is used when a request does not negotiate one.
	DefaultLocale string `koanf:"default_locale"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		NotifyQueueSize:       1_000,
		NotifyWorkers:         2,
		NotifyRatePerSec:      20,
		NotifyBurst:           5,
		DedupeSize:            10_000,
		WizardSessionsMax:     10_000,
		SimilarLimit:          10,
		TopCandidatesMaxLimit: 100,
		SimulatedLatencyMinMS: 0,
		SimulatedLatencyMaxMS: 0,
		SaveNoticeMS:          3_000,
		DefaultLocale:         "en",
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate(_ context.Context) error {
	switch {
	case c.Addr == "":
		return wrapInvalid("addr must not be empty")
	case c.WizardSessionsMax < 0:
		return wrapInvalid("wizard_sessions_max must be >= 0")
	case c.SimilarLimit < 1:
		return wrapInvalid("similar_limit must be >= 1")
	case c.TopCandidatesMaxLimit < 1:
		return wrapInvalid("top_candidates_max_limit must be >= 1")
	case c.SimulatedLatencyMinMS < 0 || c.SimulatedLatencyMaxMS < c.SimulatedLatencyMinMS:
		return wrapInvalid("simulated latency range is inverted or negative")
	case c.SaveNoticeMS < 0:
		return wrapInvalid("save_notice_ms must be >= 0")
	}
	return nil
}
