package config

import "github.com/caarlos0/env/v10"

// parseEnv overlays cfg with values from GIVEHUB_* environment variables
// (see the `env` struct tags on Config). Variables that are not set leave
// the current values untouched.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
