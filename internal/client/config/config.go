package config

import "time"

// Config holds runtime settings for the catalog CLI.
//
// Fields:
//   - Endpoint: base URL of the backend HTTP API.
//   - RequestTimeout: per-request deadline for API calls.
//   - StateDBPath: path of the local SQLite state database.
//
// Units: RequestTimeout is a time.Duration (e.g., 10*time.Second).
type Config struct {
	Endpoint       string
	RequestTimeout time.Duration
	StateDBPath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Endpoint = "http://127.0.0.1:1738"
	c.RequestTimeout = 10 * time.Second
	c.StateDBPath = "shopkeeper.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
