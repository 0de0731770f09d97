package flows

import "errors"

var (
	// ErrValidation is returned when required input is blank. The status
	// line already names what is missing.
	ErrValidation = errors.New("required input missing")
	// ErrBusy is returned when the control is disabled by a request in flight.
	ErrBusy = errors.New("request already in progress")
	// ErrNotVerified is returned by dashboard commands before the guard succeeded.
	ErrNotVerified = errors.New("session not verified")
	// ErrNoControl is returned when the page does not have the control or
	// element the command needs.
	ErrNoControl = errors.New("control not present on this page")
)
