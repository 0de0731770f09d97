// Package common defines shared constants and sentinel errors used across
// the console layers. Callers should use errors.Is to match these values.
package common

import "errors"

// ErrInvalidKey reports local key material of the wrong size or that
// fails to open sealed data.
var ErrInvalidKey = errors.New("invalid key")
