package config

import "time"

// Store driver names accepted in StoreDriver.
const (
	StoreDriverFile   = "file"
	StoreDriverSQLite = "sqlite"
)

// Config holds runtime settings for the GiveHub terminal client.
//
// Fields:
//   - APIBaseURL: base URL of the backend API, e.g. https://api.givehub.app.
//   - RequestTimeout: per-request timeout of the HTTP transport.
//   - StoreDriver: durable session store backend, "file" or "sqlite".
//   - StorePath: location of the store (JSON file or sqlite database).
//   - StorePassphrase: when non-empty, the session record is sealed with a
//     key derived from this passphrase before it touches disk.
type Config struct {
	APIBaseURL      string        `env:"GIVEHUB_API_URL"`
	RequestTimeout  time.Duration `env:"GIVEHUB_TIMEOUT"`
	StoreDriver     string        `env:"GIVEHUB_STORE_DRIVER"`
	StorePath       string        `env:"GIVEHUB_STORE_PATH"`
	StorePassphrase string        `env:"GIVEHUB_STORE_PASSPHRASE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8081"
	c.RequestTimeout = 15 * time.Second
	c.StoreDriver = StoreDriverFile
	c.StorePath = "givehub_session.json"
	c.StorePassphrase = ""
}

// Load constructs a Config by applying defaults, then overlaying values from
// a JSON file (if one is named via -c/-config), environment variables, and
// command-line flags. Later sources take precedence over earlier ones.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
