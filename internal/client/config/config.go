package config

import (
	"time"

	"github.com/akoval/terplink/internal/common"
)

// Config holds runtime settings for the terplink CLI.
//
// Fields:
//   - APIBaseURL: base URL of the scheduling API (e.g. "https://api.terplink.example").
//   - RequestTimeout: per-request deadline applied by the gateway.
//   - OfferPollInterval: how often the background watcher refreshes the
//     available-offers set.
type Config struct {
	APIBaseURL        string
	RequestTimeout    time.Duration
	OfferPollInterval time.Duration
}

// LoadDefaults populates c with sensible defaults. The base URL has no
// default on purpose: a build must be pointed at an environment explicitly.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = ""
	c.RequestTimeout = 5 * time.Second
	c.OfferPollInterval = 30 * time.Second
}

// Validate reports whether the loaded configuration is usable. A missing
// base URL is fatal and surfaced once at startup.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return common.ErrNoBaseURL
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
