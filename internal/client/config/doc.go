// Package config loads runtime configuration for the SecureLogX analyst console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a dotenv file
//     (-e/-env, or ./.env when present). Variables already set in the
//     process environment are never overwritten by the file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Environment
//
//	SECURELOGX_AUTH_URL    origin of the SecureLogX service
//	SECURELOGX_STORE       cookie store database path
//	SECURELOGX_KEY         cookie store key path
//	SECURELOGX_LOG_LEVEL   debug | info | warn | error
//
// Supported flags
//
//	-a string   origin of the SecureLogX service
//	-s string   cookie store database path
//	-k string   cookie store key path
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "auth_base_url": "http://localhost:8080",
//	  "store_path": "securelogx.db",
//	  "key_path": "securelogx.key",
//	  "log_level": "info"
//	}
//
// Absent JSON keys leave the earlier value in place.
package config
