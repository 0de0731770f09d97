package ui

import "sync"

// StatusClass is the style of the status line.
type StatusClass string

const (
	StatusNormal StatusClass = "normal"
	StatusError  StatusClass = "error"
)

// Status is a single transient message plus its style class.
type Status struct {
	mu      sync.Mutex
	message string
	class   StatusClass
	render  func(message string, class StatusClass)
}

// NewStatus returns an empty status line. render, when not nil, is called
// after every change with the new message and class.
func NewStatus(render func(message string, class StatusClass)) *Status {
	return &Status{class: StatusNormal, render: render}
}

func (s *Status) set(message string, class StatusClass) {
	s.mu.Lock()
	s.message, s.class = message, class
	render := s.render
	s.mu.Unlock()

	if render != nil {
		render(message, class)
	}
}

// Reset clears the message and returns the class to normal.
func (s *Status) Reset() { s.set("", StatusNormal) }

// Info shows message in the normal class.
func (s *Status) Info(message string) { s.set(message, StatusNormal) }

// Error shows message in the error class.
func (s *Status) Error(message string) { s.set(message, StatusError) }

// Snapshot returns the current message and class.
func (s *Status) Snapshot() (string, StatusClass) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message, s.class
}
