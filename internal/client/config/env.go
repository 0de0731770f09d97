package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/securelogx/console/internal/flagx"
)

const (
	EnvAuthBaseURL = "SECURELOGX_AUTH_URL"
	EnvStorePath   = "SECURELOGX_STORE"
	EnvKeyPath     = "SECURELOGX_KEY"
	EnvLogLevel    = "SECURELOGX_LOG_LEVEL"
)

// parseEnv overlays cfg with SECURELOGX_* variables.
//
// A dotenv file named by -e/-env must exist; a read error panics like the
// JSON loader does. Without the flag, ./.env is loaded when it exists.
func parseEnv(cfg *Config, args []string) {
	if path := flagx.EnvFilePath(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	overlay := map[string]*string{
		EnvAuthBaseURL: &cfg.AuthBaseURL,
		EnvStorePath:   &cfg.StorePath,
		EnvKeyPath:     &cfg.KeyPath,
		EnvLogLevel:    &cfg.LogLevel,
	}
	for name, dst := range overlay {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
}
