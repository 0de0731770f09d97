// Package cli is the SecureLogX analyst console: a terminal stand-in for the
// browser that hosts the login, signup and dashboard pages.
//
// App owns the navigation history and opens one page at a time. Opening the
// dashboard runs its session guard, and every navigation a command causes is
// followed until the console settles on a page. Each page has its own
// command set (type "help").
//
// The REPL is started via App.Run(ctx), which blocks until the user exits,
// input ends or ctx is cancelled.
package cli
