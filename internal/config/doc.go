// Package config loads runtime configuration for the GiveHub terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. GIVEHUB_* environment variables (see the `env` tags on Config).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-s string   session store driver: file | sqlite
//	-p string   session store path
//
// # JSON schema
//
// Durations can be strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.givehub.app",
//	  "request_timeout": "15s",
//	  "store_driver": "sqlite",
//	  "store_path": "givehub.db"
//	}
//
// The passphrase for the sealed store is deliberately not a flag; pass it via
// GIVEHUB_STORE_PASSPHRASE or the JSON file so it does not show up in ps
// output.
package config
