package ui

import "sync"

// Page names one of the console pages.
type Page string

const (
	PageLogin     Page = "login"
	PageSignup    Page = "signup"
	PageDashboard Page = "dashboard"
)

// Router is the navigation history of the console "tab".
//
// Navigate pushes a new entry, like assigning location.href. Replace swaps
// the current entry, like location.replace, so Back can never return to the
// page that was replaced.
type Router struct {
	mu       sync.Mutex
	history  []Page
	onChange func(Page)
}

// NewRouter starts the history at start. onChange, when not nil, is called
// with the new current page after every Navigate, Replace or Back.
func NewRouter(start Page, onChange func(Page)) *Router {
	return &Router{history: []Page{start}, onChange: onChange}
}

// Navigate pushes p onto the history and makes it current.
func (r *Router) Navigate(p Page) {
	r.mu.Lock()
	r.history = append(r.history, p)
	r.mu.Unlock()
	r.notify(p)
}

// Replace makes p current in place of the current entry.
func (r *Router) Replace(p Page) {
	r.mu.Lock()
	r.history[len(r.history)-1] = p
	r.mu.Unlock()
	r.notify(p)
}

// Back moves to the previous entry. It returns false at the first entry.
func (r *Router) Back() (Page, bool) {
	r.mu.Lock()
	if len(r.history) < 2 {
		cur := r.history[0]
		r.mu.Unlock()
		return cur, false
	}
	r.history = r.history[:len(r.history)-1]
	cur := r.history[len(r.history)-1]
	r.mu.Unlock()

	r.notify(cur)
	return cur, true
}

// Current returns the page at the top of the history.
func (r *Router) Current() Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

// History returns a copy of the entries, oldest first.
func (r *Router) History() []Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Page(nil), r.history...)
}

func (r *Router) notify(p Page) {
	if r.onChange != nil {
		r.onChange(p)
	}
}
