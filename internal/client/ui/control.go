package ui

import "sync"

// Control is an interactive element (a button) with a disabled flag.
type Control struct {
	ID string

	mu       sync.Mutex
	disabled bool
}

// Disable marks the control disabled. It returns false when the control was
// already disabled, so callers can use it to reject a second submit.
func (c *Control) Disable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return false
	}
	c.disabled = true
	return true
}

// Enable clears the disabled flag.
func (c *Control) Enable() {
	c.mu.Lock()
	c.disabled = false
	c.mu.Unlock()
}

func (c *Control) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}
