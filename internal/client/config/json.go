package config

import (
	"encoding/json"
	"os"

	"github.com/securelogx/console/internal/flagx"
)

// JsonConfig is a DTO used only for unmarshalling. Pointer fields tell an
// absent key apart from an empty one.
type JsonConfig struct {
	AuthBaseURL *string `json:"auth_base_url"`
	StorePath   *string `json:"store_path"`
	KeyPath     *string `json:"key_path"`
	LogLevel    *string `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config.
// Without the flag nothing happens. Read and unmarshal errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.AuthBaseURL != nil {
		cfg.AuthBaseURL = *jc.AuthBaseURL
	}
	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.KeyPath != nil {
		cfg.KeyPath = *jc.KeyPath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
