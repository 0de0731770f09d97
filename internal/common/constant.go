// Package common contains shared constants, sentinel errors and small byte
// helpers used across the SecureLogX console packages.
package common

// RequestIDHeaderName is the HTTP header used to correlate a console request
// with the service logs.
const RequestIDHeaderName = "X-Request-ID"

// AppName is the default file prefix for the local store and key.
const AppName = "securelogx"
