// Package api is the console's client for the SecureLogX HTTP service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     session lifecycle (Login, Signup, Me, Logout) and the incident board
//     (Incidents, Incident, UpdateIncidentStatus).
//  2. A concrete HTTP/JSON implementation (see HTTPClient). Every request is
//     "credentialed": it goes through an http.Client whose cookie jar holds
//     the service's session cookie. The client itself never reads cookies.
//
// # Error Handling
//
// A non-2xx answer becomes a *RejectedError carrying the status code and the
// service's "message" field when there was one. 401 and 403 also match
// ErrUnauthorized with errors.Is. Transport failures match ErrUnavailable,
// malformed success bodies match ErrDecode.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations take a
// context.Context and abort when it is cancelled.
package api
