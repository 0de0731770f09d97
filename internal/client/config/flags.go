package config

import (
	"flag"

	"github.com/securelogx/console/internal/flagx"
)

// parseFlags populates cfg from the command line.
//
//	-a string   origin of the SecureLogX service
//	-s string   cookie store database path
//	-k string   cookie store key path
//	-l string   log level
//
// Only these flags are looked at (see flagx.FilterArgs); -c and -e belong to
// the JSON and env layers.
func parseFlags(cfg *Config, args []string) {
	filtered := flagx.FilterArgs(args, []string{"-a", "-s", "-k", "-l"})

	fs := flag.NewFlagSet("console", flag.ContinueOnError)
	fs.StringVar(&cfg.AuthBaseURL, "a", cfg.AuthBaseURL, "origin of the SecureLogX service")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "cookie store database path")
	fs.StringVar(&cfg.KeyPath, "k", cfg.KeyPath, "cookie store key path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}
}
