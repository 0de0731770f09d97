package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable wraps transport failures: the service could not be
	// reached or the answer could not be read.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized matches 401 and 403 rejections, see RejectedError.Is.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDecode wraps a 2xx answer whose envelope or data could not be decoded.
	ErrDecode = errors.New("malformed response")
)

// RejectedError is returned when the service answers with a non-2xx status.
// Message holds the body's "message" field, or "" when the body carried none.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request rejected: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is makes 401 and 403 rejections match ErrUnauthorized.
func (e *RejectedError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// RejectionMessage extracts the service message from err.
// ok is false when err is not a rejection or the rejection had no message.
func RejectionMessage(err error) (msg string, ok bool) {
	var rej *RejectedError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message, true
	}
	return "", false
}
