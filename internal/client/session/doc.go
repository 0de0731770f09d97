// Package session is the console's cookie mechanism.
//
// Jar is an http.CookieJar backed by net/http/cookiejar (public suffix
// rules from golang.org/x/net/publicsuffix) that mirrors every cookie the
// auth service sets into a local SQLite database, so a session outlives the
// process the way it outlives a browser tab. Cookie values are sealed with
// the install key before they touch disk.
//
// Nothing outside this package reads cookie values.
package session
