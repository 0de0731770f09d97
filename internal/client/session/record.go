package session

import (
	"net/http"
	"net/url"
	"time"
)

// Key identifies a stored cookie: the host that set it plus the cookie's own
// domain, path and name attributes as received.
type Key struct {
	Host   string
	Domain string
	Path   string
	Name   string
}

func keyOf(u *url.URL, c *http.Cookie) Key {
	return Key{Host: u.Host, Domain: c.Domain, Path: c.Path, Name: c.Name}
}

// additionalData binds a sealed value to its key so rows cannot be swapped.
func (k Key) additionalData() []byte {
	return []byte(k.Host + "\x00" + k.Domain + "\x00" + k.Path + "\x00" + k.Name)
}

// Record is one persisted cookie. Value is sealed.
type Record struct {
	Key
	Origin   string
	Value    []byte
	Nonce    []byte
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

func (r *Record) expired(now time.Time) bool {
	return !r.Expires.IsZero() && !r.Expires.After(now)
}

func (r *Record) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     r.Name,
		Value:    value,
		Domain:   r.Domain,
		Path:     r.Path,
		Expires:  r.Expires,
		Secure:   r.Secure,
		HttpOnly: r.HTTPOnly,
		SameSite: r.SameSite,
	}
}

// expiresAt resolves Max-Age and Expires into an absolute time. The zero
// time means a session cookie.
func expiresAt(c *http.Cookie, now time.Time) time.Time {
	if c.MaxAge > 0 {
		return now.Add(time.Duration(c.MaxAge) * time.Second).UTC()
	}
	if !c.Expires.IsZero() {
		return c.Expires.UTC()
	}
	return time.Time{}
}

// deletes reports whether c removes the cookie instead of setting it.
func deletes(c *http.Cookie, now time.Time) bool {
	if c.MaxAge < 0 {
		return true
	}
	return c.MaxAge == 0 && !c.Expires.IsZero() && !c.Expires.After(now)
}

func originOf(u *url.URL) string {
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}).String()
}
