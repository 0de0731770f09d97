package ui

import "sync"

// Element is a piece of page content with text and a hidden flag.
type Element struct {
	ID string

	mu     sync.Mutex
	text   string
	hidden bool
}

func (e *Element) SetText(s string) {
	e.mu.Lock()
	e.text = s
	e.mu.Unlock()
}

func (e *Element) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// Hide and Show toggle the element; hidden content must not be rendered.
func (e *Element) Hide() {
	e.mu.Lock()
	e.hidden = true
	e.mu.Unlock()
}

func (e *Element) Show() {
	e.mu.Lock()
	e.hidden = false
	e.mu.Unlock()
}

// Visible reports whether the element may be rendered.
func (e *Element) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.hidden
}
