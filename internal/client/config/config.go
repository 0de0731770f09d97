package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/securelogx/console/internal/common"
)

// Config holds runtime settings for the analyst console.
//
// Fields:
//   - AuthBaseURL: origin of the SecureLogX service, e.g. http://localhost:8080.
//     Every request path (/auth/login, /auth/me, ...) is resolved against it.
//   - StorePath: SQLite file that keeps the service's cookies between runs.
//   - KeyPath: file holding the key that seals cookie values in StorePath.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	AuthBaseURL string
	StorePath   string
	KeyPath     string
	LogLevel    string
}

// LoadDefaults populates c with defaults suitable for a local service.
func (c *Config) LoadDefaults() {
	c.AuthBaseURL = "http://localhost:8080"
	c.StorePath = common.AppName + ".db"
	c.KeyPath = common.AppName + ".key"
	c.LogLevel = "info"
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.AuthBaseURL)
	if err != nil {
		return fmt.Errorf("auth base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("auth base url %q: scheme must be http or https", c.AuthBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("auth base url %q: missing host", c.AuthBaseURL)
	}
	if strings.TrimSpace(c.StorePath) == "" {
		return fmt.Errorf("store path is empty")
	}
	if strings.TrimSpace(c.KeyPath) == "" {
		return fmt.Errorf("key path is empty")
	}
	return nil
}

// LoadConfig constructs a Config from defaults, then overlays the
// environment (optionally seeded from a .env file), a JSON file and finally
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	return loadFrom(os.Args[1:])
}

func loadFrom(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, args)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	cfg.AuthBaseURL = strings.TrimRight(cfg.AuthBaseURL, "/")
	return cfg
}
