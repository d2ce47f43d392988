package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/avezina/givehub/internal/flagx"
)

// duration lets JSON express intervals either as strings like "15s" or as
// integer nanoseconds.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		d.Duration = time.Duration(x)
		return nil
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(data))
	}
}

// jsonConfig is a DTO used exclusively for JSON unmarshalling; values are
// copied into the runtime Config afterwards.
type jsonConfig struct {
	APIBaseURL      *string   `json:"api_base_url"`
	RequestTimeout  *duration `json:"request_timeout"`
	StoreDriver     *string   `json:"store_driver"`
	StorePath       *string   `json:"store_path"`
	StorePassphrase *string   `json:"store_passphrase"`
}

// parseJSON overlays cfg with values from the JSON file named by -c/-config.
// Absent file path means no JSON layer. Fields missing from the file keep
// their current values. Read or unmarshal errors panic; config problems at
// startup are not recoverable.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StoreDriver != nil {
		cfg.StoreDriver = *jc.StoreDriver
	}
	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.StorePassphrase != nil {
		cfg.StorePassphrase = *jc.StorePassphrase
	}
}
